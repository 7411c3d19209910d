package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ezelectronics/ezelectronics/internal/domain"
	"github.com/ezelectronics/ezelectronics/internal/middleware"
	"github.com/ezelectronics/ezelectronics/internal/service"
)

// ProductHandler serves the catalog and inventory routes.
type ProductHandler struct {
	products *service.ProductService
}

// NewProductHandler creates a new ProductHandler instance.
func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// RegisterRoutes mounts the product routes on r.
func (h *ProductHandler) RegisterRoutes(r *mux.Router) {
	staff := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)

	r.Handle("/products", staff(http.HandlerFunc(h.Register))).Methods(http.MethodPost)
	r.Handle("/products", staff(http.HandlerFunc(h.List))).Methods(http.MethodGet)
	r.Handle("/products", staff(http.HandlerFunc(h.DeleteAll))).Methods(http.MethodDelete)
	r.Handle("/products/available", middleware.RequireAuth(http.HandlerFunc(h.ListAvailable))).Methods(http.MethodGet)
	r.Handle("/products/{model}/sell", staff(http.HandlerFunc(h.Sell))).Methods(http.MethodPatch)
	r.Handle("/products/{model}", staff(http.HandlerFunc(h.ChangeQuantity))).Methods(http.MethodPatch)
	r.Handle("/products/{model}", staff(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

type registerProductRequest struct {
	Model        string  `json:"model" validate:"required"`
	Category     string  `json:"category" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required"`
	Details      string  `json:"details"`
	SellingPrice float64 `json:"sellingPrice" validate:"required"`
	ArrivalDate  string  `json:"arrivalDate"`
}

// Register handles POST /products.
func (h *ProductHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerProductRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	err := h.products.RegisterProduct(r.Context(), service.RegisterProductParams{
		Model:        req.Model,
		Category:     domain.Category(req.Category),
		Quantity:     req.Quantity,
		Details:      req.Details,
		SellingPrice: req.SellingPrice,
		ArrivalDate:  req.ArrivalDate,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

type changeQuantityRequest struct {
	Quantity   int    `json:"quantity" validate:"required"`
	ChangeDate string `json:"changeDate"`
}

// ChangeQuantity handles PATCH /products/{model}.
func (h *ProductHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var req changeQuantityRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	quantity, err := h.products.ChangeQuantity(r.Context(), mux.Vars(r)["model"], req.Quantity, req.ChangeDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"quantity": quantity})
}

type sellProductRequest struct {
	Quantity    int    `json:"quantity" validate:"required"`
	SellingDate string `json:"sellingDate"`
}

// Sell handles PATCH /products/{model}/sell.
func (h *ProductHandler) Sell(w http.ResponseWriter, r *http.Request) {
	var req sellProductRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	quantity, err := h.products.Sell(r.Context(), mux.Vars(r)["model"], req.Quantity, req.SellingDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"quantity": quantity})
}

// List handles GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListAvailable handles GET /products/available.
func (h *ProductHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request, availableOnly bool) {
	query := r.URL.Query()
	filter := domain.ProductFilter{
		Grouping: domain.Grouping(query.Get("grouping")),
		Category: query.Get("category"),
		Model:    query.Get("model"),
	}

	products, err := h.products.GetProducts(r.Context(), filter, availableOnly)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// Delete handles DELETE /products/{model}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.products.DeleteProduct(r.Context(), mux.Vars(r)["model"]); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// DeleteAll handles DELETE /products.
func (h *ProductHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.products.DeleteAllProducts(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
