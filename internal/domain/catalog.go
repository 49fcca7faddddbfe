package domain

import (
	"errors"
	"strings"
)

// DescriptionPlaceholder is shown when a price list item has no description.
const DescriptionPlaceholder = "—"

var (
	ErrItemNameRequired = errors.New("item name is required")
	ErrNegativePrice    = errors.New("item price must not be negative")
)

// CatalogItem is one purchasable line of the price list.
type CatalogItem struct {
	ID          int64  `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

// DisplayDescription returns the description or a placeholder when it is empty.
func (c CatalogItem) DisplayDescription() string {
	if strings.TrimSpace(c.Description) == "" {
		return DescriptionPlaceholder
	}
	return c.Description
}

// Validate checks an item before it is written by the management console.
func (c CatalogItem) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrItemNameRequired
	}
	if c.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// DefaultPriceList is the starting price list seeded into an empty store.
func DefaultPriceList() []CatalogItem {
	return []CatalogItem{
		{
			ID:          1,
			Category:    "full_body",
			Name:        "Full body repaint (matic)",
			Price:       1500000,
			Description: "Complete repaint of all body panels for scooters up to 160cc.",
		},
		{
			ID:          2,
			Category:    "full_body",
			Name:        "Full body repaint (sport)",
			Price:       2750000,
			Description: "Complete repaint of fairings, tank and tail for sport bikes.",
		},
		{
			ID:          3,
			Category:    "custom_graphics",
			Name:        "Airbrush artwork",
			Price:       1000000,
			Description: "Hand-drawn airbrush design, priced per panel.",
		},
		{
			ID:          4,
			Category:    "custom_graphics",
			Name:        "Striping & decals",
			Price:       500000,
			Description: "",
		},
		{
			ID:          5,
			Category:    "parts",
			Name:        "Wheel repaint (pair)",
			Price:       600000,
			Description: "Powder coat finish for both rims.",
		},
		{
			ID:          6,
			Category:    "parts",
			Name:        "Engine cover repaint",
			Price:       350000,
			Description: "Heat-resistant paint for engine and exhaust covers.",
		},
		{
			ID:          7,
			Category:    "protection",
			Name:        "Ceramic coating",
			Price:       800000,
			Description: "Two-layer ceramic protection over the new paint.",
		},
	}
}

// FindItem looks up an item by id in a price list.
func FindItem(items []CatalogItem, id int64) *CatalogItem {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
