package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	checkAvailabilityHandler "github.com/m04kA/SMC-TimberService/internal/api/handlers/check_availability"
	enquiriesHandler "github.com/m04kA/SMC-TimberService/internal/api/handlers/enquiries"
	enquiryTransitionHandler "github.com/m04kA/SMC-TimberService/internal/api/handlers/enquiry_transition"
	getFreeSlotsHandler "github.com/m04kA/SMC-TimberService/internal/api/handlers/get_free_slots"
	holidaysHandler "github.com/m04kA/SMC-TimberService/internal/api/handlers/holidays"
	scheduleBlocksHandler "github.com/m04kA/SMC-TimberService/internal/api/handlers/schedule_blocks"
	submitEnquiryHandler "github.com/m04kA/SMC-TimberService/internal/api/handlers/submit_enquiry"
	"github.com/m04kA/SMC-TimberService/internal/api/middleware"
	"github.com/m04kA/SMC-TimberService/internal/config"
	"github.com/m04kA/SMC-TimberService/internal/domain"
	holidayCache "github.com/m04kA/SMC-TimberService/internal/infra/cache/holiday"
	"github.com/m04kA/SMC-TimberService/internal/infra/lock"
	enquiryRepo "github.com/m04kA/SMC-TimberService/internal/infra/storage/enquiry"
	holidayRepo "github.com/m04kA/SMC-TimberService/internal/infra/storage/holiday"
	scheduleRepo "github.com/m04kA/SMC-TimberService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-TimberService/internal/integrations/notification"
	"github.com/m04kA/SMC-TimberService/internal/integrations/payment"
	enquiriesService "github.com/m04kA/SMC-TimberService/internal/service/enquiries"
	holidaysService "github.com/m04kA/SMC-TimberService/internal/service/holidays"
	scheduleService "github.com/m04kA/SMC-TimberService/internal/service/schedule"
	checkAvailabilityUC "github.com/m04kA/SMC-TimberService/internal/usecase/check_availability"
	enquiryLifecycleUC "github.com/m04kA/SMC-TimberService/internal/usecase/enquiry_lifecycle"
	getFreeSlotsUC "github.com/m04kA/SMC-TimberService/internal/usecase/get_free_slots"
	submitEnquiryUC "github.com/m04kA/SMC-TimberService/internal/usecase/submit_enquiry"
	"github.com/m04kA/SMC-TimberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TimberService/pkg/logger"
	"github.com/m04kA/SMC-TimberService/pkg/metrics"
	"github.com/m04kA/SMC-TimberService/pkg/migrations"
	"github.com/m04kA/SMC-TimberService/pkg/redisclient"
	"github.com/m04kA/SMC-TimberService/pkg/tracing"
	"github.com/m04kA/SMC-TimberService/pkg/txmanager"
)

const maxRequestBodyBytes = 1 << 20

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-TimberService...")
	log.Info("Configuration loaded from config.toml")

	workingHours, err := domain.NewWorkingHours(cfg.Schedule.WorkStart, cfg.Schedule.WorkEnd)
	if err != nil {
		log.Fatal("Invalid working hours: %v", err)
	}

	// Инициализируем метрики (если включены)
	// nil коллектор допустим: все методы metrics.Metrics его проверяют
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Трассировка
	shutdownTracing, err := tracing.Setup(context.Background(), tracing.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled, exporting to %s", cfg.Tracing.OTLPEndpoint)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Redis: кэш праздников и блокировка дат
	var (
		cache       holidaysService.HolidayCache = holidayCache.NoopCache{}
		dateLocker  enquiryLifecycleUC.Locker    = lock.NewLocalLock()
		redisClient *redis.Client
	)
	if cfg.Redis.Enabled {
		redisClient, err = redisclient.New(redisclient.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisClient.Close()

		cache = holidayCache.NewCache(redisClient, time.Duration(cfg.Redis.HolidayCacheTTL)*time.Second)
		dateLocker = lock.NewRedisLock(
			redisClient,
			time.Duration(cfg.Redis.LockTTL)*time.Second,
			time.Duration(cfg.Redis.LockWait)*time.Second,
			log,
		)
		log.Info("Redis connected (addr=%s): holiday cache and distributed date lock enabled", cfg.Redis.Addr)
	} else {
		log.Warn("Redis disabled: holiday cache off, date lock is process-local")
	}

	// Уведомления
	transport, err := newNotificationTransport(cfg.Notifications, log)
	if err != nil {
		log.Fatal("Failed to initialize notifications: %v", err)
	}
	publisher := notification.NewPublisher(
		transport,
		time.Duration(cfg.Notifications.PublishTimeout)*time.Second,
		metricsCollector,
		log,
	)
	log.Info("Notifications driver: %s", cfg.Notifications.Driver)

	// Платежи
	var payments enquiryLifecycleUC.PaymentStatusReader = payment.DisabledClient{}
	if cfg.Payments.Enabled {
		payments = payment.NewStripeClient(cfg.Payments.StripeSecretKey, log)
		log.Info("Stripe payment status sync enabled")
	}

	// Инициализируем репозитории
	holidayRepository := holidayRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	enquiryRepository := enquiryRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	holidaySvc := holidaysService.NewService(
		holidayRepository,
		cache,
		time.Duration(cfg.Schedule.HolidayRetryDelayMs)*time.Millisecond,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		workingHours,
		cfg.Schedule.MinDurationMinutes,
		log,
	)
	enquirySvc := enquiriesService.NewService(
		enquiryRepository,
		txMgr,
		log,
	)

	// Circuit breaker общий для проверки доступности и поиска окон
	scheduleBreaker := checkAvailabilityUC.NewScheduleBreaker(checkAvailabilityUC.BreakerSettings{
		MaxRequests:      cfg.Breaker.MaxRequests,
		Interval:         time.Duration(cfg.Breaker.Interval) * time.Second,
		Timeout:          time.Duration(cfg.Breaker.Timeout) * time.Second,
		FailureThreshold: cfg.Breaker.FailureThreshold,
	}, metricsCollector, log)

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		holidaySvc,
		scheduleRepository,
		enquiryRepository,
		scheduleBreaker,
		cfg.Schedule.DefaultEnquiryDuration,
		metricsCollector,
		log,
	)

	getFreeSlotsUseCase := getFreeSlotsUC.NewUseCase(
		holidaySvc,
		scheduleRepository,
		enquiryRepository,
		scheduleBreaker,
		getFreeSlotsUC.Settings{
			WorkingHours:           workingHours,
			DefaultDurationMinutes: cfg.Schedule.DefaultEnquiryDuration,
		},
		log,
	)

	submitEnquiryUseCase := submitEnquiryUC.NewUseCase(
		enquirySvc,
		checkAvailabilityUseCase,
		cfg.Schedule.DefaultEnquiryDuration,
		log,
	)

	lifecycleUseCase := enquiryLifecycleUC.NewUseCase(
		enquiryRepository,
		checkAvailabilityUseCase,
		dateLocker,
		txMgr,
		publisher,
		payments,
		metricsCollector,
		enquiryLifecycleUC.Settings{
			WorkingHours:           workingHours,
			MinDurationMinutes:     cfg.Schedule.MinDurationMinutes,
			DefaultDurationMinutes: cfg.Schedule.DefaultEnquiryDuration,
		},
		log,
	)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getFreeSlots := getFreeSlotsHandler.NewHandler(getFreeSlotsUseCase, log)
	submitEnquiry := submitEnquiryHandler.NewHandler(submitEnquiryUseCase, log)
	enquiries := enquiriesHandler.NewHandler(enquirySvc, log)
	transitions := enquiryTransitionHandler.NewHandler(lifecycleUseCase, log)
	scheduleBlocks := scheduleBlocksHandler.NewHandler(scheduleSvc, log)
	holidays := holidaysHandler.NewHandler(holidaySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.BodyLimit(maxRequestBodyBytes))

	// --- Доступность ---
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/free-slots", getFreeSlots.Handle).Methods(http.MethodGet)

	// --- Заявки ---
	api.HandleFunc("/enquiries", enquiries.List).Methods(http.MethodGet)
	api.HandleFunc("/enquiries", submitEnquiry.Handle).Methods(http.MethodPost)
	api.HandleFunc("/enquiries/stats", enquiries.Stats).Methods(http.MethodGet)
	api.HandleFunc("/enquiries/{enquiryId}", enquiries.Get).Methods(http.MethodGet)
	api.HandleFunc("/enquiries/{enquiryId}", enquiries.Patch).Methods(http.MethodPatch)
	api.HandleFunc("/enquiries/{enquiryId}", enquiries.Delete).Methods(http.MethodDelete)

	// --- Жизненный цикл заявки ---
	api.HandleFunc("/enquiries/{enquiryId}/review", transitions.Review).Methods(http.MethodPost)
	api.HandleFunc("/enquiries/{enquiryId}/accept-time", transitions.AcceptTime).Methods(http.MethodPost)
	api.HandleFunc("/enquiries/{enquiryId}/propose-time", transitions.ProposeTime).Methods(http.MethodPost)
	api.HandleFunc("/enquiries/{enquiryId}/schedule", transitions.Schedule).Methods(http.MethodPost)
	api.HandleFunc("/enquiries/{enquiryId}/start", transitions.Start).Methods(http.MethodPost)
	api.HandleFunc("/enquiries/{enquiryId}/complete", transitions.Complete).Methods(http.MethodPost)
	api.HandleFunc("/enquiries/{enquiryId}/cancel", transitions.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/enquiries/{enquiryId}/reject", transitions.Reject).Methods(http.MethodPost)
	api.HandleFunc("/enquiries/{enquiryId}/offline-payment", transitions.OfflinePayment).Methods(http.MethodPost)
	api.HandleFunc("/enquiries/{enquiryId}/sync-payment", transitions.SyncPayment).Methods(http.MethodPost)

	// --- Блоки расписания ---
	api.HandleFunc("/schedule-blocks", scheduleBlocks.List).Methods(http.MethodGet)
	api.HandleFunc("/schedule-blocks", scheduleBlocks.Create).Methods(http.MethodPost)
	api.HandleFunc("/schedule-blocks/{blockId}", scheduleBlocks.Get).Methods(http.MethodGet)
	api.HandleFunc("/schedule-blocks/{blockId}", scheduleBlocks.Update).Methods(http.MethodPut)
	api.HandleFunc("/schedule-blocks/{blockId}", scheduleBlocks.Delete).Methods(http.MethodDelete)

	// --- Праздники ---
	api.HandleFunc("/holidays", holidays.List).Methods(http.MethodGet)
	api.HandleFunc("/holidays", holidays.Create).Methods(http.MethodPost)
	api.HandleFunc("/holidays/check", holidays.Check).Methods(http.MethodGet)
	api.HandleFunc("/holidays/{holidayId}", holidays.Get).Methods(http.MethodGet)
	api.HandleFunc("/holidays/{holidayId}", holidays.Delete).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, cfg.Metrics.ServiceName),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := publisher.Close(); err != nil {
		log.Error("Failed to close notification transport: %v", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped")
}

// newNotificationTransport выбирает транспорт уведомлений по драйверу из конфигурации
func newNotificationTransport(cfg config.NotificationsConfig, log *logger.Logger) (notification.Transport, error) {
	switch cfg.Driver {
	case config.NotificationDriverKafka:
		return notification.NewKafkaTransport(notification.NewKafkaWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic)), nil
	case config.NotificationDriverAMQP:
		transport, err := notification.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return nil, err
		}
		return transport, nil
	case config.NotificationDriverWebhook:
		return notification.NewWebhookTransport(cfg.Webhook.URL, time.Duration(cfg.PublishTimeout)*time.Second), nil
	case config.NotificationDriverNone:
		return notification.NoopTransport{}, nil
	default:
		return notification.NewLogTransport(log), nil
	}
}
