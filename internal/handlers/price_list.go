package handlers

import (
	"net/http"

	"moto-repaint-backend/internal/domain"
)

type priceListResponse struct {
	Groups []priceGroupView `json:"groups"`
	Cart   *cartView        `json:"cart,omitempty"`
}

// GET /api/price-list[?cart={id}]
func (e *Env) HandlePriceList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		e.methodNotAllowed(w)
		return
	}

	items, err := e.Store.ListItems(r.Context())
	if err != nil {
		e.internalError(w, r, err)
		return
	}

	cartID := r.URL.Query().Get("cart")
	if cartID == "" {
		e.writeJSON(w, priceListResponse{Groups: e.groupsView(items, nil)})
		return
	}

	var resp priceListResponse
	err = e.Carts.View(cartID, func(c *domain.Cart) {
		cv := e.cartView(cartID, c)
		resp.Groups = e.groupsView(items, c)
		resp.Cart = &cv
	})
	if err != nil {
		e.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	e.writeJSON(w, resp)
}
