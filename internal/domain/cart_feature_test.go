package domain

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

type cartFeature struct {
	cart *Cart
}

func (f *cartFeature) anEmptyCart() error {
	f.cart = NewCart()
	return nil
}

func (f *cartFeature) iAddItemPriced(id, price int64) error {
	f.cart.Add(CatalogItem{ID: id, Name: fmt.Sprintf("item %d", id), Price: price})
	return nil
}

func (f *cartFeature) iSetTheQuantityOfItemTo(id int64, quantity int) error {
	f.cart.SetQuantity(id, quantity)
	return nil
}

func (f *cartFeature) iRemoveItem(id int64) error {
	f.cart.Remove(id)
	return nil
}

func (f *cartFeature) iHandTheCartOverAndReadItBack() error {
	encoded, err := EncodeHandoff(f.cart)
	if err != nil {
		return err
	}
	f.cart = DecodeHandoff(encoded)
	return nil
}

func (f *cartFeature) theCartLinesAre(want string) error {
	parts := make([]string, 0, f.cart.Len())
	for _, l := range f.cart.Serialize() {
		parts = append(parts, fmt.Sprintf("%dx%d", l.ID, l.Quantity))
	}
	if got := strings.Join(parts, ","); got != want {
		return fmt.Errorf("expected lines %q, got %q", want, got)
	}
	return nil
}

func (f *cartFeature) theCartHoldsItems(n int) error {
	if got := f.cart.TotalItems(); got != n {
		return fmt.Errorf("expected %d items, got %d", n, got)
	}
	return nil
}

func (f *cartFeature) theCartTotalIs(total int64) error {
	if got := f.cart.TotalPrice(); got != total {
		return fmt.Errorf("expected total %d, got %d", total, got)
	}
	return nil
}

func (f *cartFeature) theCartDoesNotContainItem(id int64) error {
	if f.cart.Contains(id) {
		return fmt.Errorf("cart still contains item %d", id)
	}
	return nil
}

func initializeCartScenario(ctx *godog.ScenarioContext) {
	f := &cartFeature{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		f.cart = NewCart()
		return ctx, nil
	})

	ctx.Step(`^an empty cart$`, f.anEmptyCart)
	ctx.Step(`^I add item (\d+) priced (\d+)$`, f.iAddItemPriced)
	ctx.Step(`^I set the quantity of item (\d+) to (\d+)$`, f.iSetTheQuantityOfItemTo)
	ctx.Step(`^I remove item (\d+)$`, f.iRemoveItem)
	ctx.Step(`^I hand the cart over and read it back$`, f.iHandTheCartOverAndReadItBack)
	ctx.Step(`^the cart lines are "([^"]*)"$`, f.theCartLinesAre)
	ctx.Step(`^the cart holds (\d+) items$`, f.theCartHoldsItems)
	ctx.Step(`^the cart total is (\d+)$`, f.theCartTotalIs)
	ctx.Step(`^the cart does not contain item (\d+)$`, f.theCartDoesNotContainItem)
}

func TestCartFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeCartScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
