package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-CourtBookingService/internal/config"
	blockRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/block"
	policyRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/policy"
	reservationRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/reservation"
	ruleRepo "github.com/m04kA/SMC-CourtBookingService/internal/infra/storage/rule"
	"github.com/m04kA/SMC-CourtBookingService/internal/integrations/events"
	facilityServiceClient "github.com/m04kA/SMC-CourtBookingService/internal/integrations/facilityservice"
	availabilityService "github.com/m04kA/SMC-CourtBookingService/internal/service/availability"
	policyService "github.com/m04kA/SMC-CourtBookingService/internal/service/policy"
	reservationsService "github.com/m04kA/SMC-CourtBookingService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-CourtBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/lockmanager"
	"github.com/m04kA/SMC-CourtBookingService/pkg/logger"
	"github.com/m04kA/SMC-CourtBookingService/pkg/metrics"
	"github.com/m04kA/SMC-CourtBookingService/pkg/tracing"
	"github.com/m04kA/SMC-CourtBookingService/pkg/txmanager"
)

// publisher публикатор событий с закрытием
type publisher interface {
	Publish(ctx context.Context, event events.ReservationEvent) error
	Close() error
}

// App собранные зависимости сервиса
type App struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	db      *dbmetrics.DB
	redis   *redis.Client

	publisher publisher

	availability      *availabilityService.Service
	policy            *policyService.Service
	reservations      *reservationsService.Service
	createReservation *createReservationUC.UseCase

	stopMetricsCh   chan struct{}
	shutdownTracing tracing.ShutdownFunc
}

// newApp читает конфиг и собирает все зависимости
func newApp(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded from %s", configPath)

	app := &App{
		cfg:           cfg,
		log:           log,
		stopMetricsCh: make(chan struct{}),
	}

	// Метрики собираются всегда, наружу /metrics отдается только если включены
	if cfg.Metrics.Enabled {
		app.metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		app.metrics = metrics.NewWithRegisterer(cfg.Metrics.ServiceName, prometheus.NewRegistry())
	}

	// Трассировка
	app.shutdownTracing, err = tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Metrics.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	// База данных
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		app.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	app.db = dbmetrics.WrapWithDefault(sqlDB, app.metrics, app.stopMetricsCh)
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	loc, err := cfg.Reservations.Location()
	if err != nil {
		app.Close()
		return nil, err
	}

	// Репозитории и транзакции
	reservations := reservationRepo.NewRepository(app.db)
	rules := ruleRepo.NewRepository(app.db)
	blocks := blockRepo.NewRepository(app.db)
	policies := policyRepo.NewRepository(app.db)
	txMgr := txmanager.NewTransactionManager(app.db, txmanager.WithSerializableRetries(cfg.Reservations.SerializableRetries))

	// Эксклюзивная секция по (корт, дата)
	var redisClient lockmanager.RedisClient
	if cfg.Reservations.LockStrategy == lockmanager.StrategyRedis {
		app.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		redisClient = app.redis
		log.Info("Connected to redis at %s", cfg.Redis.Addr)
	}
	section, err := lockmanager.New(cfg.Reservations.LockStrategy, txMgr, app.db, redisClient,
		lockmanager.WithTTL(time.Duration(cfg.Redis.LockTTLMs)*time.Millisecond),
		lockmanager.WithWaitTimeout(time.Duration(cfg.Redis.WaitMs)*time.Millisecond),
	)
	if err != nil {
		app.Close()
		return nil, err
	}
	section = lockmanager.NewObservedSection(section, cfg.Reservations.LockStrategy, app.metrics)
	log.Info("Exclusive section strategy: %s", cfg.Reservations.LockStrategy)

	// Интеграции
	facilityClient := facilityServiceClient.NewClient(
		cfg.FacilityService.URL,
		time.Duration(cfg.FacilityService.Timeout)*time.Second,
		log,
	)
	if cfg.Kafka.Enabled {
		app.publisher = events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic), log)
		log.Info("Reservation events are published to kafka topic %s", cfg.Kafka.Topic)
	} else {
		app.publisher = events.NoopPublisher{}
	}

	// Сервисы и use cases
	app.policy = policyService.NewService(policies, facilityClient, log)

	generator := availabilityService.NewGenerator(rules)
	filter := availabilityService.NewFilter(blocks, reservations, loc)
	app.availability = availabilityService.NewService(
		generator,
		filter,
		facilityClient,
		app.policy,
		cfg.Reservations.GranularityMinutes,
		loc,
		log,
	)

	app.reservations = reservationsService.NewService(
		reservations,
		facilityClient,
		txMgr,
		section,
		app.publisher,
		app.metrics,
		loc,
		log,
	)

	app.createReservation = createReservationUC.NewUseCase(
		reservations,
		facilityClient,
		app.policy,
		generator,
		filter,
		section,
		app.publisher,
		app.metrics,
		cfg.Reservations.GranularityMinutes,
		loc,
		log,
	)

	return app, nil
}

// Close освобождает ресурсы в обратном порядке
func (a *App) Close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Error("Failed to close event publisher: %v", err)
		}
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Unwrap().Close()
	}
	close(a.stopMetricsCh)

	if a.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownTracing(ctx); err != nil {
			a.log.Error("Failed to shut down tracing: %v", err)
		}
	}
	_ = a.log.Close()
}
