package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	apartmentHandler "github.com/ptorrado/predio/internal/http/apartment"
	bookingHandler "github.com/ptorrado/predio/internal/http/booking"
	maintenanceHandler "github.com/ptorrado/predio/internal/http/maintenance"
	paymentHandler "github.com/ptorrado/predio/internal/http/payment"
	"github.com/ptorrado/predio/internal/http/respond"
	tenantHandler "github.com/ptorrado/predio/internal/http/tenant"
)

// Options carries the router knobs that come from config.
type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func New(
	apartmentsV1 *apartmentHandler.Handler,
	tenantsV1 *tenantHandler.Handler,
	bookingsV1 *bookingHandler.Handler,
	paymentsV1 *paymentHandler.Handler,
	maintenanceV1 *maintenanceHandler.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	router.Use(rateLimit(NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst)))

	router.Get("/health", health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/apartments", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			apartmentsV1.Routes(r)
		})

		r.Route("/tenants", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			tenantsV1.Routes(r)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			bookingsV1.Routes(r)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			paymentsV1.Routes(r)
		})

		// Multipart upload, mounted outside the JSON content-type guard.
		r.Route("/payments/import", paymentsV1.ImportRoutes)

		r.Route("/maintenance", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			maintenanceV1.Routes(r)
		})
	})

	return router
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func health(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, healthResponse{
		Status:    "OK",
		Timestamp: time.Now(),
	})
}
