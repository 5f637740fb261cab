package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	completeAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_calendar"
	getProviderAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_provider_appointments"
	getProviderProfileHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_provider_profile"
	getProviderReviewsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_provider_reviews"
	getServiceFitHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_service_fit"
	getUserAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_user_appointments"
	streamBookedIntervalsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/stream_booked_intervals"
	submitReviewHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/submit_review"
	updateAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_availability"
	updateServicesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_services"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/pgnotify"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	providerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	reviewRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/review"
	"github.com/m04kA/SMC-AppointmentService/internal/scheduling"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	providersService "github.com/m04kA/SMC-AppointmentService/internal/service/providers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/subscriptions"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	getCalendarUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_calendar"
	getServiceFitUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_service_fit"
	submitReviewUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/submit_review"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/otp"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			return runServer(cfg, log)
		},
	}
}

func runServer(cfg *config.Config, log *logger.Logger) error {
	log.Info("Starting SMC-AppointmentService...")

	location, err := cfg.Scheduling.Location()
	if err != nil {
		return fmt.Errorf("failed to load timezone %q: %w", cfg.Scheduling.Timezone, err)
	}
	log.Info("Scheduling timezone: %s", location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := openDB(cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	providerRepository := providerRepo.NewRepository(wrappedDB, location)
	reviewRepository := reviewRepo.NewRepository(wrappedDB)

	// Кэш календаря в Redis (опционально)
	var calendarCache interface {
		getCalendarUC.CalendarCache
		subscriptions.ChangeHook
	} = calendar.NopCache{}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis is unavailable, calendar cache disabled: addr=%s, error=%v", cfg.Redis.Addr, err)
		} else {
			calendarCache = calendar.New(redisClient, cfg.Scheduling.CalendarCacheTTL(), location)
			log.Info("Calendar cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Scheduling.CalendarCacheTTL())
		}
	}

	// Live-подписки на занятость провайдеров
	hub := subscriptions.NewHub(appointmentRepository, log)
	hub.AddHook(calendarCache)
	defer hub.Close()

	listenCtx, stopListening := context.WithCancel(context.Background())
	defer stopListening()

	if cfg.Scheduling.ListenNotifications {
		listener := pgnotify.NewListener(cfg.Database.DSN(), hub, log)
		go func() {
			if err := listener.Run(listenCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Change listener stopped: %v", err)
			}
		}()
	} else {
		log.Warn("Change notifications disabled: live streams get only initial snapshots, calendar cache relies on TTL")
	}

	// Сервисы
	limiter := appointmentsService.NewCodeAttemptLimiter(
		cfg.Scheduling.CompletionAttemptsPerHour,
		cfg.Scheduling.CompletionAttemptBurst,
	)
	go limiter.Run(listenCtx, appointmentsService.DefaultSweepInterval)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, limiter, metricsCollector, log)
	providerSvc := providersService.NewService(providerRepository, reviewRepository, txMgr, location, log)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		providerRepository,
		txMgr,
		otp.DigitsGenerator{Length: domain.CompletionCodeLength},
		metricsCollector,
		location,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(appointmentRepository, providerRepository, location, log)
	getCalendarUseCase := getCalendarUC.NewUseCase(
		appointmentRepository,
		providerRepository,
		calendarCache,
		scheduling.ClassifyOptions{ContiguousGaps: cfg.Scheduling.ContiguousGapCheck},
		location,
		log,
	)
	getServiceFitUseCase := getServiceFitUC.NewUseCase(appointmentRepository, providerRepository, location, log)
	submitReviewUseCase := submitReviewUC.NewUseCase(appointmentRepository, reviewRepository, txMgr, log)

	// Handlers
	getProviderProfile := getProviderProfileHandler.NewHandler(providerSvc, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, location, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	getServiceFit := getServiceFitHandler.NewHandler(getServiceFitUseCase, log)
	getProviderReviews := getProviderReviewsHandler.NewHandler(providerSvc, log)
	streamBookedIntervals := streamBookedIntervalsHandler.NewHandler(hub, location, streamBookedIntervalsHandler.DefaultHeartbeat, log)

	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentSvc, log)
	submitReview := submitReviewHandler.NewHandler(submitReviewUseCase, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	getProviderAppointments := getProviderAppointmentsHandler.NewHandler(appointmentSvc, location, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(providerSvc, log)
	updateServices := updateServicesHandler.NewHandler(providerSvc, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/providers/{providerId}/profile", getProviderProfile.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/calendar", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/service-fit", getServiceFit.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/reviews", getProviderReviews.Handle).Methods(http.MethodGet)
	api.HandleFunc("/providers/{providerId}/booked-intervals/stream", streamBookedIntervals.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/review", submitReview.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Управление провайдером ---
	protected.HandleFunc("/providers/{providerId}/appointments", getProviderAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/providers/{providerId}/availability", updateAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/providers/{providerId}/services", updateServices.Handle).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("Received %s, shutting down server...", sig)
	}

	// Сначала закрываем подписки, иначе SSE соединения задержат Shutdown
	stopListening()
	hub.Close()

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
