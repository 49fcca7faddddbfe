package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id int64, price int64) CatalogItem {
	return CatalogItem{ID: id, Category: "full_body", Name: "item", Price: price}
}

func quantities(c *Cart) map[int64]int {
	out := make(map[int64]int)
	for _, l := range c.Serialize() {
		out[l.ID] = l.Quantity
	}
	return out
}

func TestCart_RepeatedAddKeepsOneLine(t *testing.T) {
	c := NewCart()
	for i := 0; i < 5; i++ {
		c.Add(item(9, 1000))
	}
	assert.Equal(t, 5, c.TotalItems())
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(5000), c.TotalPrice())
}

func TestCart_Scenario(t *testing.T) {
	c := NewCart()
	c.Add(item(1, 100000))
	c.Add(item(2, 50000))
	c.Add(item(1, 100000))

	lines := c.Serialize()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(2), lines[1].ID)
	assert.Equal(t, 1, lines[1].Quantity)
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, int64(250000), c.TotalPrice())
}

func TestCart_TotalPriceIsExact(t *testing.T) {
	c := NewCart()
	c.Add(item(1, 150000))
	c.Add(item(2, 275000))
	c.SetQuantity(1, 2)
	assert.Equal(t, int64(575000), c.TotalPrice())
}

func TestCart_SetQuantityZeroRemoves(t *testing.T) {
	c := NewCart()
	c.Add(item(1, 10))
	c.Add(item(2, 20))

	c.SetQuantity(2, 0)

	assert.False(t, c.Contains(2))
	assert.Equal(t, map[int64]int{1: 1}, quantities(c))
}

func TestCart_SetQuantityUnknownIsNoop(t *testing.T) {
	c := NewCart()
	c.Add(item(1, 10))
	c.Add(item(1, 10))

	c.SetQuantity(2, 5)

	assert.False(t, c.Contains(2))
	assert.Equal(t, map[int64]int{1: 2}, quantities(c))
}

func TestCart_SetQuantityNegativeIgnored(t *testing.T) {
	c := NewCart()
	c.Add(item(1, 10))
	c.SetQuantity(1, -3)
	assert.Equal(t, 1, c.TotalItems())
}

func TestCart_RemoveIsIdempotent(t *testing.T) {
	once := NewCart()
	once.Add(item(1, 10))
	once.Add(item(2, 20))
	once.Remove(1)

	twice := NewCart()
	twice.Add(item(1, 10))
	twice.Add(item(2, 20))
	twice.Remove(1)
	twice.Remove(1)

	if diff := cmp.Diff(once.Serialize(), twice.Serialize()); diff != "" {
		t.Errorf("remove twice differs from once (-once +twice):\n%s", diff)
	}
}

func TestCart_OrderIsFirstAdd(t *testing.T) {
	c := NewCart()
	c.Add(item(3, 1))
	c.Add(item(1, 1))
	c.Add(item(2, 1))
	c.SetQuantity(3, 7)
	c.SetQuantity(1, 4)
	c.Add(item(3, 1))

	var ids []int64
	for _, l := range c.Serialize() {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []int64{3, 1, 2}, ids)
}

func TestCart_ReAddAfterRemoveGoesLast(t *testing.T) {
	c := NewCart()
	c.Add(item(1, 1))
	c.Add(item(2, 1))
	c.Remove(1)
	c.Add(item(1, 1))

	lines := c.Serialize()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(2), lines[0].ID)
	assert.Equal(t, int64(1), lines[1].ID)
}

func TestCart_EmptyTotals(t *testing.T) {
	c := NewCart()
	assert.Zero(t, c.TotalItems())
	assert.Zero(t, c.TotalPrice())
	assert.Empty(t, c.Serialize())
}

func TestCart_SerializeCopiesDisplayFields(t *testing.T) {
	c := NewCart()
	src := CatalogItem{ID: 4, Category: "parts", Name: "Wheel repaint", Price: 600000, Description: "pair"}
	c.Add(src)

	lines := c.Serialize()
	require.Len(t, lines, 1)
	want := CartLine{ID: 4, Name: "Wheel repaint", Price: 600000, Description: "pair", Category: "parts", Quantity: 1}
	assert.Equal(t, want, lines[0])

	lines[0].Quantity = 99
	assert.Equal(t, 1, c.TotalItems(), "serialized lines are copies")
}

func TestRestoreCart_MergesAndDrops(t *testing.T) {
	c := RestoreCart([]CartLine{
		{ID: 1, Price: 10, Quantity: 2},
		{ID: 2, Price: 5, Quantity: 0},
		{ID: 1, Price: 10, Quantity: 1},
		{ID: 3, Price: 1, Quantity: -1},
	})
	assert.Equal(t, map[int64]int{1: 3}, quantities(c))
	assert.Equal(t, int64(30), c.TotalPrice())
}

func TestPriceLines_UsesCatalogPrices(t *testing.T) {
	catalog := DefaultPriceList()
	c, err := PriceLines([]CartLine{
		{ID: 2, Name: "Cheap sport repaint", Price: 1, Quantity: 3},
		{ID: 7, Quantity: 1},
		{ID: 2, Price: 1, Quantity: 1},
		{ID: 99, Quantity: 0},
	}, catalog)
	require.NoError(t, err)

	lines := c.Serialize()
	require.Len(t, lines, 2)
	assert.Equal(t, "Full body repaint (sport)", lines[0].Name)
	assert.Equal(t, int64(2750000), lines[0].Price)
	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, int64(2750000*4+800000), c.TotalPrice())
}

func TestPriceLines_UnknownItem(t *testing.T) {
	_, err := PriceLines([]CartLine{{ID: 42, Price: 10, Quantity: 1}}, DefaultPriceList())
	assert.ErrorIs(t, err, ErrUnknownItem)
}
