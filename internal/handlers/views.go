package handlers

import (
	"moto-repaint-backend/internal/domain"
)

// priceItemView is one row of the price list.
type priceItemView struct {
	ID          int64  `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	PriceLabel  string `json:"priceLabel"`
	Description string `json:"description"`
	Added       bool   `json:"added"`
}

type priceGroupView struct {
	Key   string          `json:"key"`
	Label string          `json:"label"`
	Items []priceItemView `json:"items"`
}

type cartLineView struct {
	domain.CartLine
	PriceLabel    string `json:"priceLabel"`
	Subtotal      int64  `json:"subtotal"`
	SubtotalLabel string `json:"subtotalLabel"`
}

type cartView struct {
	ID         string         `json:"id,omitempty"`
	Lines      []cartLineView `json:"lines"`
	TotalItems int            `json:"totalItems"`
	TotalPrice int64          `json:"totalPrice"`
	TotalLabel string         `json:"totalLabel"`
}

// groupsView lays the price list out by category and marks items already in
// cart. cart may be nil.
func (e *Env) groupsView(items []domain.CatalogItem, cart *domain.Cart) []priceGroupView {
	groups := domain.GroupByCategory(items)
	out := make([]priceGroupView, 0, len(groups))
	for _, g := range groups {
		gv := priceGroupView{Key: g.Key, Label: g.Label, Items: make([]priceItemView, 0, len(g.Items))}
		for _, it := range g.Items {
			gv.Items = append(gv.Items, priceItemView{
				ID:          it.ID,
				Category:    it.Category,
				Name:        it.Name,
				Price:       it.Price,
				PriceLabel:  e.Money.Format(it.Price),
				Description: it.DisplayDescription(),
				Added:       cart != nil && cart.Contains(it.ID),
			})
		}
		out = append(out, gv)
	}
	return out
}

// cartView is the JSON and template shape of a cart, with formatted prices.
func (e *Env) cartView(id string, c *domain.Cart) cartView {
	lines := c.Serialize()
	v := cartView{
		ID:         id,
		Lines:      make([]cartLineView, 0, len(lines)),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
		TotalLabel: e.Money.Format(c.TotalPrice()),
	}
	for _, l := range lines {
		v.Lines = append(v.Lines, cartLineView{
			CartLine:      l,
			PriceLabel:    e.Money.Format(l.Price),
			Subtotal:      l.Subtotal(),
			SubtotalLabel: e.Money.Format(l.Subtotal()),
		})
	}
	return v
}
