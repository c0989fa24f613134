package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imidok/internal/domain"
	"imidok/internal/normalizer"
)

func TestDispatchAuto(t *testing.T) {
	d := NewDispatcher(normalizer.New())

	rec, err := d.Dispatch(skttSample, domain.LayoutHintAuto)
	require.NoError(t, err)
	assert.Equal(t, domain.LayoutSKTT, rec.Layout())
}

func TestDispatchExplicitHint(t *testing.T) {
	d := NewDispatcher(normalizer.New())

	// The hint is trusted even when the text carries no layout marker, and is
	// case-insensitive.
	rec, err := d.Dispatch("Name : JANE ROE", "evln")
	require.NoError(t, err)
	assert.Equal(t, domain.LayoutEVLN, rec.Layout())

	rec, err = d.Dispatch(decreeSample, "DKPTKA")
	require.NoError(t, err)
	assert.Equal(t, domain.LayoutDKPTKA, rec.Layout())
}

func TestDispatchEmptyText(t *testing.T) {
	d := NewDispatcher(normalizer.New())

	for _, text := range []string{"", "   ", "\n\t\n"} {
		_, err := d.Dispatch(text, domain.LayoutHintAuto)
		assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	}
}

func TestDispatchInvalidHint(t *testing.T) {
	d := NewDispatcher(normalizer.New())

	_, err := d.Dispatch("some text", "PASSPORT")
	assert.ErrorIs(t, err, domain.ErrInvalidLayoutHint)
}

func TestDispatchUnknownLayout(t *testing.T) {
	d := NewDispatcher(normalizer.New())

	rec, err := d.Dispatch("completely unrelated text", domain.LayoutHintAuto)
	assert.Nil(t, rec)
	require.Error(t, err)
	assert.True(t, domain.IsUnsupportedLayout(err))
	assert.Contains(t, err.Error(), "UNKNOWN")
}
