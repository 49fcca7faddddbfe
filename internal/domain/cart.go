package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownItem is returned when a line refers to an id missing from the
// price list.
var ErrUnknownItem = errors.New("unknown price list item")

// CartLine is one selected price list item with its quantity. Display fields
// are copied from the catalog when the item is first added.
type CartLine struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
}

// Subtotal is price × quantity for the line.
func (l CartLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart is the visitor's selection on the price list page.
// A stored line never has a quantity below 1.
type Cart struct {
	order []int64
	lines map[int64]*CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{lines: make(map[int64]*CartLine)}
}

// RestoreCart rebuilds a cart from serialized lines. Lines with a quantity
// below 1 are skipped; repeated ids are merged into the first occurrence.
func RestoreCart(lines []CartLine) *Cart {
	c := NewCart()
	for _, l := range lines {
		if l.Quantity < 1 {
			continue
		}
		if existing, ok := c.lines[l.ID]; ok {
			existing.Quantity += l.Quantity
			continue
		}
		line := l
		c.lines[l.ID] = &line
		c.order = append(c.order, l.ID)
	}
	return c
}

// Add puts one more unit of item into the cart.
func (c *Cart) Add(item CatalogItem) {
	if line, ok := c.lines[item.ID]; ok {
		line.Quantity++
		return
	}
	c.lines[item.ID] = &CartLine{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Description: item.Description,
		Category:    item.Category,
		Quantity:    1,
	}
	c.order = append(c.order, item.ID)
}

// SetQuantity changes the quantity of an existing line. Zero removes the
// line; ids that were never added are ignored.
func (c *Cart) SetQuantity(id int64, quantity int) {
	line, ok := c.lines[id]
	if !ok || quantity < 0 {
		return
	}
	if quantity == 0 {
		c.Remove(id)
		return
	}
	line.Quantity = quantity
}

// Remove drops the line for id if present.
func (c *Cart) Remove(id int64) {
	if _, ok := c.lines[id]; !ok {
		return
	}
	delete(c.lines, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Contains reports whether the cart has a line for id.
func (c *Cart) Contains(id int64) bool {
	_, ok := c.lines[id]
	return ok
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.order)
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of price × quantity over all lines.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// Serialize returns a copy of the lines in the order they were first added.
func (c *Cart) Serialize() []CartLine {
	out := make([]CartLine, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.lines[id])
	}
	return out
}

// PriceLines rebuilds handed-off lines against the price list. Only ids and
// quantities are taken from lines; names, prices and descriptions come from
// items.
func PriceLines(lines []CartLine, items []CatalogItem) (*Cart, error) {
	c := NewCart()
	for _, l := range RestoreCart(lines).Serialize() {
		item := FindItem(items, l.ID)
		if item == nil {
			return nil, fmt.Errorf("%w: %d", ErrUnknownItem, l.ID)
		}
		c.Add(*item)
		c.SetQuantity(item.ID, l.Quantity)
	}
	return c, nil
}
