package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ezelectronics/ezelectronics/internal/domain"
	"github.com/ezelectronics/ezelectronics/internal/middleware"
	"github.com/ezelectronics/ezelectronics/internal/service"
)

// CartHandler serves the cart lifecycle routes.
type CartHandler struct {
	carts *service.CartService
}

// NewCartHandler creates a new CartHandler instance.
func NewCartHandler(carts *service.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// RegisterRoutes mounts the cart routes on r.
func (h *CartHandler) RegisterRoutes(r *mux.Router) {
	customer := middleware.RequireRole(domain.RoleCustomer)
	staff := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)

	r.Handle("/carts", customer(http.HandlerFunc(h.GetActiveCart))).Methods(http.MethodGet)
	r.Handle("/carts", customer(http.HandlerFunc(h.AddProduct))).Methods(http.MethodPost)
	r.Handle("/carts", customer(http.HandlerFunc(h.Checkout))).Methods(http.MethodPatch)
	r.Handle("/carts/history", customer(http.HandlerFunc(h.GetHistory))).Methods(http.MethodGet)
	r.Handle("/carts/products/{model}", customer(http.HandlerFunc(h.RemoveProduct))).Methods(http.MethodDelete)
	r.Handle("/carts/current", customer(http.HandlerFunc(h.ClearCart))).Methods(http.MethodDelete)
	r.Handle("/carts/all", staff(http.HandlerFunc(h.GetAllCarts))).Methods(http.MethodGet)
	r.Handle("/carts", staff(http.HandlerFunc(h.DeleteAllCarts))).Methods(http.MethodDelete)
}

// GetActiveCart handles GET /carts.
func (h *CartHandler) GetActiveCart(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	cart, err := h.carts.GetActiveCart(r.Context(), caller.Username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, cart)
}

type addProductRequest struct {
	Model string `json:"model" validate:"required"`
}

// AddProduct handles POST /carts.
func (h *CartHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req addProductRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.carts.AddProductToCart(r.Context(), caller.Username, req.Model); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// Checkout handles PATCH /carts. A missing or empty active cart is a client
// mistake on this route, so the not-found kind maps to 400 here instead of
// the usual 404.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.carts.Checkout(r.Context(), caller.Username); err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			respondError(w, r, domain.Invalid("cart.checkout", "There is no active cart to check out"))
			return
		}
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// GetHistory handles GET /carts/history.
func (h *CartHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	carts, err := h.carts.GetCartHistory(r.Context(), caller.Username)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, carts)
}

// RemoveProduct handles DELETE /carts/products/{model}.
func (h *CartHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	model := mux.Vars(r)["model"]
	if err := h.carts.RemoveProductFromCart(r.Context(), caller.Username, model); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// ClearCart handles DELETE /carts/current.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.carts.ClearActiveCart(r.Context(), caller.Username); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// GetAllCarts handles GET /carts/all.
func (h *CartHandler) GetAllCarts(w http.ResponseWriter, r *http.Request) {
	carts, err := h.carts.GetAllCarts(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, carts)
}

// DeleteAllCarts handles DELETE /carts.
func (h *CartHandler) DeleteAllCarts(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.DeleteAllCarts(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
