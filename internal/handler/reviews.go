package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ezelectronics/ezelectronics/internal/domain"
	"github.com/ezelectronics/ezelectronics/internal/middleware"
	"github.com/ezelectronics/ezelectronics/internal/service"
)

// ReviewHandler serves the product review routes.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler instance.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// RegisterRoutes mounts the review routes on r.
func (h *ReviewHandler) RegisterRoutes(r *mux.Router) {
	customer := middleware.RequireRole(domain.RoleCustomer)
	staff := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)

	r.Handle("/reviews/{model}", customer(http.HandlerFunc(h.Add))).Methods(http.MethodPost)
	r.Handle("/reviews/{model}", middleware.RequireAuth(http.HandlerFunc(h.List))).Methods(http.MethodGet)
	r.Handle("/reviews/{model}/all", staff(http.HandlerFunc(h.DeleteOfProduct))).Methods(http.MethodDelete)
	r.Handle("/reviews/{model}", customer(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
	r.Handle("/reviews", staff(http.HandlerFunc(h.DeleteAll))).Methods(http.MethodDelete)
}

type addReviewRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

// Add handles POST /reviews/{model}.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req addReviewRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.reviews.AddReview(r.Context(), mux.Vars(r)["model"], caller.Username, req.Score, req.Comment); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// List handles GET /reviews/{model}.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.GetProductReviews(r.Context(), mux.Vars(r)["model"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

// Delete handles DELETE /reviews/{model}, removing the caller's own review.
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), mux.Vars(r)["model"], caller.Username); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// DeleteOfProduct handles DELETE /reviews/{model}/all.
func (h *ReviewHandler) DeleteOfProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.DeleteReviewsOfProduct(r.Context(), mux.Vars(r)["model"]); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// DeleteAll handles DELETE /reviews.
func (h *ReviewHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.DeleteAllReviews(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
