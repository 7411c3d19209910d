package handler

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ezelectronics/ezelectronics/internal/middleware"
	"github.com/ezelectronics/ezelectronics/internal/service"
)

// Deps bundles everything the router needs.
type Deps struct {
	Logger   *slog.Logger
	Auth     *middleware.Authenticator
	Metrics  *middleware.Metrics
	DB       *sql.DB
	Carts    *service.CartService
	Products *service.ProductService
	Users    *service.UserService
	Reviews  *service.ReviewService
}

// NewRouter assembles the full HTTP surface: global middleware chain,
// the four resource handlers, and the health and metrics endpoints.
func NewRouter(deps Deps) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(deps.Metrics.Middleware)
	r.Use(deps.Auth.Authenticate)
	r.Use(middleware.WithRequestLogger(deps.Logger))
	r.Use(middleware.LogRequests)

	NewCartHandler(deps.Carts).RegisterRoutes(r)
	NewProductHandler(deps.Products).RegisterRoutes(r)
	NewUserHandler(deps.Users).RegisterRoutes(r)
	NewReviewHandler(deps.Reviews).RegisterRoutes(r)

	r.HandleFunc("/health", healthHandler(deps.DB)).Methods(http.MethodGet)
	r.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)

	return r
}

// healthHandler reports liveness, including a database ping.
func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
