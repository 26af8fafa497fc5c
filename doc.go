// Package goshape describes the expected shape of runtime values and checks
// values against it.
//
// A schema is declared with plain Go values:
//
//   - leaves are Field descriptors, normally built with the dsl package;
//   - objects are maps with string keys (Object is a shorthand);
//   - arrays are slices holding exactly one item schema;
//   - optional subtrees are Field{Kind: KindOptionalObject, Next: ...}.
//
// NewSchema checks the declaration (returning *SchemaInvalidError) and
// freezes a private copy into a *Validated. A *Validated then:
//
//   - validates values with closed-world objects, reporting the first
//     failure as *ValueInvalidError;
//   - extracts a whitelisted copy of a value that holds only declared fields.
//
// Design policy:
//   - Schema errors are developer data and safe to log. Value errors keep the
//     rejected value behind PotentiallyHarmfulValue and out of Error().
//   - The library never logs. Callers (middleware, cmd/goshape) do.
//   - Reasons come from the i18n catalog.
//
// Typical usage:
//
//	var user = goshape.MustSchema(goshape.Object{
//		"name": dsl.StringShort().NonEmpty().Build(),
//		"age":  dsl.IntegerInRange(0, 150).Build(),
//		"tags": []any{dsl.String().Build()},
//	})
//
//	if err := user.Validate(value); err != nil { ... }
//	clean, err := user.Extract(value)
package goshape
