package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	acceptReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/accept_reservation"
	cancelReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/create_reservation"
	getBaseAvailabilityHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_base_availability"
	getCourtPolicyHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_court_policy"
	getFacilityReservationsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_facility_reservations"
	getFreeAvailabilityHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_free_availability"
	getReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_reservation"
	getSlotsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_slots"
	getUserReservationsHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/get_user_reservations"
	rejectReservationHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/reject_reservation"
	updatePolicyHandler "github.com/m04kA/SMC-CourtBookingService/internal/api/handlers/update_policy"
	"github.com/m04kA/SMC-CourtBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-CourtBookingService/pkg/tracing"
)

// ServeCmd HTTP сервер с фоновой очисткой просроченных pending
type ServeCmd struct{}

func (c *ServeCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApp(ctx, g.ConfigPath)
	if err != nil {
		return err
	}
	defer app.Close()

	cfg := app.cfg
	log := app.log

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      tracing.HTTPHandler(app.router(), "http.server"),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	if cfg.Reservations.SweepIntervalSeconds > 0 {
		go app.runSweeper(ctx, time.Duration(cfg.Reservations.SweepIntervalSeconds)*time.Second)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Ожидаем сигнал завершения или падение сервера
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

func (a *App) router() *mux.Router {
	cfg := a.cfg
	log := a.log

	// Handlers
	getBaseAvailability := getBaseAvailabilityHandler.NewHandler(a.availability, log)
	getFreeAvailability := getFreeAvailabilityHandler.NewHandler(a.availability, log)
	getSlots := getSlotsHandler.NewHandler(a.availability, log)
	getCourtPolicy := getCourtPolicyHandler.NewHandler(a.policy, log)
	updatePolicy := updatePolicyHandler.NewHandler(a.policy, log)
	createReservation := createReservationHandler.NewHandler(a.createReservation, log)
	getReservation := getReservationHandler.NewHandler(a.reservations, log)
	acceptReservation := acceptReservationHandler.NewHandler(a.reservations, log)
	rejectReservation := rejectReservationHandler.NewHandler(a.reservations, log)
	cancelReservation := cancelReservationHandler.NewHandler(a.reservations, log)
	getUserReservations := getUserReservationsHandler.NewHandler(a.reservations, log)
	getFacilityReservations := getFacilityReservationsHandler.NewHandler(a.reservations, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.MetricsMiddleware(a.metrics))

	// Служебные endpoints
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc("/readyz", a.readyz).Methods(http.MethodGet)

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/courts/{courtId}/availability/base", getBaseAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{courtId}/availability", getFreeAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{courtId}/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/courts/{courtId}/policy", getCourtPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/accept", acceptReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление площадкой (для владельцев) ---
	protected.HandleFunc("/facilities/{facilityId}/reservations", getFacilityReservations.Handle).Methods(http.MethodGet)

	// --- Политики бронирования (для владельцев площадок) ---
	protected.HandleFunc("/facilities/{facilityId}/policy", updatePolicy.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/courts/{courtId}/policy", updatePolicy.Handle).Methods(http.MethodPut)

	return r
}

func (a *App) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.PingContext(ctx); err != nil {
		a.log.Warn("readyz: database ping failed: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// runSweeper периодически переводит просроченные pending в expired
func (a *App) runSweeper(ctx context.Context, interval time.Duration) {
	a.log.Info("Expired reservations sweeper started (interval=%s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.reservations.SweepExpired(ctx); err != nil && ctx.Err() == nil {
				a.log.Error("Sweeper: %v", err)
			}
		}
	}
}
