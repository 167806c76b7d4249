package gig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftWithReplacesOneField(t *testing.T) {
	d := Draft{Title: "Logo design", Pricing: "25"}

	next, err := d.With(FieldDescription, "Vector logos")
	require.NoError(t, err)

	assert.Equal(t, "Vector logos", next.Description)
	assert.Equal(t, "Logo design", next.Title)
	assert.Equal(t, "25", next.Pricing)
	assert.Empty(t, d.Description, "original draft must not change")
}

func TestDraftWithUnknownField(t *testing.T) {
	_, err := Draft{}.With(Field(42), "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestDraftEditsCommuteAcrossFields(t *testing.T) {
	type edit struct {
		f Field
		v string
	}
	edits := []edit{
		{FieldTitle, "first"},
		{FieldTags, "a,b"},
		{FieldTitle, "second"},
		{FieldPricing, "10"},
		{FieldDeliveryTime, "3"},
		{FieldTags, "c"},
	}
	apply := func(order []int) Draft {
		d := EmptyDraft()
		for _, i := range order {
			var err error
			d, err = d.With(edits[i].f, edits[i].v)
			require.NoError(t, err)
		}
		return d
	}

	forward := apply([]int{0, 1, 2, 3, 4, 5})
	// interleave differently while keeping per-field order
	shuffled := apply([]int{3, 0, 4, 1, 2, 5})

	assert.Equal(t, forward, shuffled)
	assert.Equal(t, Draft{Title: "second", Tags: "c", Pricing: "10", DeliveryTime: "3"}, forward)
}

func TestParseFieldRoundTrip(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseField("price")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestDraftGetMatchesWith(t *testing.T) {
	d := EmptyDraft()
	for _, f := range Fields {
		var err error
		d, err = d.With(f, "v-"+f.String())
		require.NoError(t, err)
	}
	for _, f := range Fields {
		assert.Equal(t, "v-"+f.String(), d.Get(f))
	}
	assert.False(t, d.IsEmpty())
	assert.True(t, EmptyDraft().IsEmpty())
}

func TestIsCategory(t *testing.T) {
	assert.Len(t, Categories, 7)
	assert.True(t, IsCategory("Video & Animation"))
	assert.False(t, IsCategory("design"))
	assert.False(t, IsCategory(""))
}
