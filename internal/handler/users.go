package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ezelectronics/ezelectronics/internal/domain"
	"github.com/ezelectronics/ezelectronics/internal/middleware"
	"github.com/ezelectronics/ezelectronics/internal/service"
)

// UserHandler serves the account management routes.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes mounts the user routes on r. Account creation is open;
// the list routes are admin-only; the per-user routes authenticate only,
// since the self-or-admin rules depend on the target and live in the service.
func (h *UserHandler) RegisterRoutes(r *mux.Router) {
	admin := middleware.RequireRole(domain.RoleAdmin)

	r.HandleFunc("/users", h.Create).Methods(http.MethodPost)
	r.Handle("/users", admin(http.HandlerFunc(h.List))).Methods(http.MethodGet)
	r.Handle("/users", admin(http.HandlerFunc(h.DeleteAllNonAdmin))).Methods(http.MethodDelete)
	r.Handle("/users/roles/{role}", admin(http.HandlerFunc(h.ListByRole))).Methods(http.MethodGet)
	r.Handle("/users/{username}", middleware.RequireAuth(http.HandlerFunc(h.Get))).Methods(http.MethodGet)
	r.Handle("/users/{username}", middleware.RequireAuth(http.HandlerFunc(h.Update))).Methods(http.MethodPatch)
	r.Handle("/users/{username}", middleware.RequireAuth(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	err := h.users.CreateUser(r.Context(), domain.User{
		Username: req.Username,
		Name:     req.Name,
		Surname:  req.Surname,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// ListByRole handles GET /users/roles/{role}.
func (h *UserHandler) ListByRole(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetUsersByRole(r.Context(), domain.Role(mux.Vars(r)["role"]))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Get handles GET /users/{username}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.GetUser(r.Context(), caller, mux.Vars(r)["username"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Name      string `json:"name" validate:"required"`
	Surname   string `json:"surname" validate:"required"`
	Address   string `json:"address" validate:"required"`
	Birthdate string `json:"birthdate" validate:"required"`
}

// Update handles PATCH /users/{username}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req updateUserRequest
	if err := decode(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.UpdateUser(r.Context(), caller, mux.Vars(r)["username"], service.UpdateUserParams{
		Name:      req.Name,
		Surname:   req.Surname,
		Address:   req.Address,
		Birthdate: req.Birthdate,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{username}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := principal(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.users.DeleteUser(r.Context(), caller, mux.Vars(r)["username"]); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// DeleteAllNonAdmin handles DELETE /users.
func (h *UserHandler) DeleteAllNonAdmin(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteAllNonAdminUsers(r.Context()); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
