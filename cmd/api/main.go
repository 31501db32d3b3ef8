package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ptorrado/predio/internal/apartment"
	apartmentStore "github.com/ptorrado/predio/internal/apartment/store"
	"github.com/ptorrado/predio/internal/booking"
	bookingStore "github.com/ptorrado/predio/internal/booking/store"
	"github.com/ptorrado/predio/internal/config"
	"github.com/ptorrado/predio/internal/database"
	predioHttp "github.com/ptorrado/predio/internal/http"
	apartmentHandler "github.com/ptorrado/predio/internal/http/apartment"
	bookingHandler "github.com/ptorrado/predio/internal/http/booking"
	maintenanceHandler "github.com/ptorrado/predio/internal/http/maintenance"
	paymentHandler "github.com/ptorrado/predio/internal/http/payment"
	tenantHandler "github.com/ptorrado/predio/internal/http/tenant"
	"github.com/ptorrado/predio/internal/importer"
	"github.com/ptorrado/predio/internal/maintenance"
	maintenanceStore "github.com/ptorrado/predio/internal/maintenance/store"
	"github.com/ptorrado/predio/internal/payment"
	paymentStore "github.com/ptorrado/predio/internal/payment/store"
	"github.com/ptorrado/predio/internal/tenant"
	tenantStore "github.com/ptorrado/predio/internal/tenant/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		apartmentService   = apartment.NewService(apartmentStore.New(db))
		tenantService      = tenant.NewService(tenantStore.New(db))
		bookingService     = booking.NewService(bookingStore.New(db))
		paymentService     = payment.NewService(paymentStore.New(db))
		maintenanceService = maintenance.NewService(maintenanceStore.New(db))
		importService      = importer.NewService()
	)

	var (
		apartmentH   = apartmentHandler.NewHandler(apartmentService)
		tenantH      = tenantHandler.NewHandler(tenantService)
		bookingH     = bookingHandler.NewHandler(bookingService)
		paymentH     = paymentHandler.NewHandler(paymentService, importService)
		maintenanceH = maintenanceHandler.NewHandler(maintenanceService)
	)

	router := predioHttp.New(apartmentH, tenantH, bookingH, paymentH, maintenanceH, predioHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
