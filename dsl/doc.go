// Package dsl builds goshape leaf descriptors.
//
// Every constructor returns a small value-typed builder; chain methods return
// a modified copy and Build() finalizes it into a goshape.Field. Passing a
// builder without calling Build() into a schema is reported by
// goshape.NewSchema as CodeSchemaNotBuilt.
//
// Entry points
//   - String(), StringShort(), StringMedium(), StringLong(), StringInteger(),
//     StringUUID(): string leaves (max length 100/1000/10000 for the sized
//     presets).
//   - Number(), NumberInRange(min, max), Integer(), IntegerInRange(min, max).
//   - Boolean(), Date(), Function().
//   - Enum[T](values...), Class[T]().
//   - Any(), Null(), EmptyObject().
//   - Optional(next) wraps an object or array declaration; Array(item) makes a
//     single-item array declaration.
//
// Example
//
//	var post = goshape.MustSchema(goshape.Object{
//	    "id":     dsl.StringUUID().Build(),
//	    "title":  dsl.StringShort().NonEmpty().Build(),
//	    "status": dsl.Enum(StatusDraft, StatusPublished).Build(),
//	    "meta": dsl.Optional(goshape.Object{
//	        "views": dsl.Integer().Min(0).Build(),
//	    }).Build(),
//	    "tags": dsl.Array(dsl.String().Build()),
//	})
package dsl
