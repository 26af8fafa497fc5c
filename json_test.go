package goshape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/dsl"
	"github.com/reoring/goshape/source"
)

func orderSchema() *goshape.Validated {
	return goshape.MustSchema(goshape.Object{
		"id":    dsl.StringInteger().Build(),
		"qty":   dsl.IntegerInRange(1, 99).Build(),
		"price": dsl.Number().Min(0).Build(),
		"items": dsl.Array(goshape.Object{"sku": dsl.StringShort().NonEmpty().Build()}),
		"note":  dsl.Optional(goshape.Object{"text": dsl.String().Build()}).Build(),
	})
}

func TestValidateJSON(t *testing.T) {
	s := orderSchema()
	assert.NoError(t, goshape.ValidateJSON(s, []byte(`{"id":"7","qty":2,"price":9.5,"items":[{"sku":"A"}],"note":null}`)))

	err := goshape.ValidateJSON(s, []byte(`{"id":"7","qty":2.5,"price":9.5,"items":[]}`))
	iss, _ := valueIssue(t, err)
	assert.Equal(t, "qty", iss.Path())
	assert.Equal(t, goshape.CodeNotInteger, iss.Code)

	err = goshape.ValidateJSON(s, []byte(`{"id":"7","id":"8"}`))
	var dup *source.DuplicateKeyError
	assert.ErrorAs(t, err, &dup)
}

func TestExtractJSON(t *testing.T) {
	out, err := goshape.ExtractJSON(orderSchema(), []byte(`{
		"id":"7","qty":2,"price":9.50,"admin":true,
		"items":[{"sku":"A","hidden":1},{"sku":{"$ne":""}}],
		"note":{"text":"hi","html":"<b>"}
	}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"7","qty":2,"price":9.50,"items":[{"sku":"A"},{}],"note":{"text":"hi"}}`, string(out))

	_, err = goshape.ExtractJSON(orderSchema(), []byte(`[1]`))
	assert.Error(t, err)

	_, err = goshape.ExtractJSON(orderSchema(), []byte(`{`))
	assert.Error(t, err)
}
