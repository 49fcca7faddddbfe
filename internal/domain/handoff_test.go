package domain

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandoff_RoundTrip(t *testing.T) {
	c := NewCart()
	for _, it := range DefaultPriceList()[:4] {
		c.Add(it)
	}
	c.SetQuantity(2, 3)

	encoded, err := EncodeHandoff(c)
	require.NoError(t, err)

	restored := DecodeHandoff(encoded)
	if diff := cmp.Diff(c.Serialize(), restored.Serialize()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}

	again, err := EncodeHandoff(restored)
	require.NoError(t, err)
	assert.Equal(t, encoded, again)
}

func TestHandoff_WireFormat(t *testing.T) {
	c := NewCart()
	c.Add(CatalogItem{ID: 7, Category: "protection", Name: "Ceramic coating", Price: 800000})

	encoded, err := EncodeHandoff(c)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"id":7,"name":"Ceramic coating","price":800000,"description":"","category":"protection","quantity":1}]`,
		encoded)
}

func TestHandoffURL_KeepsExistingQuery(t *testing.T) {
	c := NewCart()
	c.Add(CatalogItem{ID: 1, Name: "A & B", Price: 10})

	raw, err := HandoffURL("/projects/new?ref=price-list", c)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/projects/new", u.Path)
	assert.Equal(t, "price-list", u.Query().Get("ref"))

	got := CartFromQuery(u.Query())
	assert.Equal(t, c.Serialize(), got.Serialize())
}

func TestDecodeHandoff_FailuresYieldEmptyCart(t *testing.T) {
	for _, raw := range []string{"", "   ", "not json", `{"id":1}`, `[{"id":"x"}]`, "null"} {
		c := DecodeHandoff(raw)
		assert.Zero(t, c.Len(), "input %q", raw)
	}
}

func TestEncodeHandoff_EmptyCart(t *testing.T) {
	encoded, err := EncodeHandoff(NewCart())
	require.NoError(t, err)
	assert.Equal(t, "[]", encoded)
}
