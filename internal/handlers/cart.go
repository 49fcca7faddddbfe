package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"moto-repaint-backend/internal/domain"
)

// POST /api/cart
func (e *Env) HandleCartCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		e.methodNotAllowed(w)
		return
	}
	id := e.Carts.Create()
	e.writeJSONStatus(w, http.StatusCreated, e.cartView(id, domain.NewCart()))
}

// GET/DELETE /api/cart/{id}
func (e *Env) HandleCart(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		e.respondCart(w, r, id, func(*domain.Cart) error { return nil })
	case http.MethodDelete:
		e.Carts.Discard(id)
		w.WriteHeader(http.StatusNoContent)
	default:
		e.methodNotAllowed(w)
	}
}

type addItemRequest struct {
	ItemID int64 `json:"itemId"`
}

// POST /api/cart/{id}/items
func (e *Env) HandleCartItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		e.methodNotAllowed(w)
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := e.Store.GetItem(r.Context(), req.ItemID)
	if err != nil {
		if notFound(err) {
			e.writeError(w, http.StatusNotFound, "unknown price list item")
			return
		}
		e.internalError(w, r, err)
		return
	}

	e.respondCart(w, r, r.PathValue("id"), func(c *domain.Cart) error {
		c.Add(*item)
		return nil
	})
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// PUT/DELETE /api/cart/{id}/items/{itemId}
func (e *Env) HandleCartItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathInt64(r, "itemId")
	if err != nil {
		e.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cartID := r.PathValue("id")

	switch r.Method {
	case http.MethodPut:
		var req setQuantityRequest
		if err := decodeJSON(r, &req); err != nil {
			e.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Quantity == nil {
			e.writeError(w, http.StatusBadRequest, "quantity is required")
			return
		}
		e.respondCart(w, r, cartID, func(c *domain.Cart) error {
			c.SetQuantity(itemID, *req.Quantity)
			return nil
		})
	case http.MethodDelete:
		e.respondCart(w, r, cartID, func(c *domain.Cart) error {
			c.Remove(itemID)
			return nil
		})
	default:
		e.methodNotAllowed(w)
	}
}

type checkoutResponse struct {
	URL string `json:"url"`
}

// POST /api/cart/{id}/checkout hands the cart over to the project request
// page. The cart is gone afterwards.
func (e *Env) HandleCartCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		e.methodNotAllowed(w)
		return
	}

	id := r.PathValue("id")
	cart, err := e.Carts.Take(id)
	if err != nil {
		e.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	target, err := domain.HandoffURL(e.projectPath(), cart)
	if err != nil {
		e.internalError(w, r, err)
		return
	}
	e.Log.Debug("cart handed off", zap.String("cart", id), zap.Int("items", cart.TotalItems()))
	e.writeJSON(w, checkoutResponse{URL: target})
}

// respondCart applies fn to the visit cart and answers with the updated view,
// or 404 for an unknown cart.
func (e *Env) respondCart(w http.ResponseWriter, r *http.Request, id string, fn func(*domain.Cart) error) {
	var view cartView
	err := e.Carts.Update(id, func(c *domain.Cart) error {
		if err := fn(c); err != nil {
			return err
		}
		view = e.cartView(id, c)
		return nil
	})
	if err != nil {
		if notFound(err) {
			e.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		e.internalError(w, r, err)
		return
	}
	e.writeJSON(w, view)
}
