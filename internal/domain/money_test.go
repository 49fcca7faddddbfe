package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFormatter_Grouping(t *testing.T) {
	id, err := NewPriceFormatter("id", "Rp")
	require.NoError(t, err)
	assert.Equal(t, "Rp 1.500.000", id.Format(1500000))
	assert.Equal(t, "Rp 0", id.Format(0))

	en, err := NewPriceFormatter("en-US", "$")
	require.NoError(t, err)
	assert.Equal(t, "$ 275,000", en.Format(275000))
}

func TestPriceFormatter_NoSymbol(t *testing.T) {
	f, err := NewPriceFormatter("", "")
	require.NoError(t, err)
	assert.Equal(t, "12,345", f.Format(12345))
}

func TestPriceFormatter_BadLocale(t *testing.T) {
	_, err := NewPriceFormatter("not a locale!!", "Rp")
	assert.Error(t, err)
}
