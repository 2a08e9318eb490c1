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

	approveRequestHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/approve_request"
	attachPaymentProofHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/attach_payment_proof"
	createAppointmentHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/create_appointment"
	createBlockedSlotHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/create_blocked_slot"
	createPackageHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/create_package"
	deleteBlockedSlotHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/delete_blocked_slot"
	getAppointmentHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_available_slots"
	getClientAppointmentsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_client_appointments"
	getPackageHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/get_package"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/list_appointments"
	listBlockedSlotsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/list_blocked_slots"
	listProfessionalsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/list_professionals"
	listRequestsHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/list_requests"
	listServicesHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/list_services"
	rejectRequestHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/reject_request"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/reschedule_appointment"
	scheduleFromTextHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/schedule_from_text"
	submitRequestHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/submit_request"
	transitionAppointmentHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/transition_appointment"
	updateWorkScheduleHandler "github.com/m04kA/SMC-SalonScheduler/internal/api/handlers/update_work_schedule"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduler/internal/config"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/catalog"
	requestRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/request"
	scheduleRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/inference"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/availability"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/lifecycle"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/packages"
	"github.com/m04kA/SMC-SalonScheduler/internal/scheduling/reschedule"
	appointmentsService "github.com/m04kA/SMC-SalonScheduler/internal/service/appointments"
	requestsService "github.com/m04kA/SMC-SalonScheduler/internal/service/requests"
	scheduleService "github.com/m04kA/SMC-SalonScheduler/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_appointment"
	createPackageUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_package"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/reschedule_appointment"
	scheduleFromTextUC "github.com/m04kA/SMC-SalonScheduler/internal/usecase/schedule_from_text"
	"github.com/m04kA/SMC-SalonScheduler/pkg/clock"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/metrics"
	"github.com/m04kA/SMC-SalonScheduler/pkg/txmanager"
)

// eventNotifier общий контракт издателя событий для всех use cases и сервисов
type eventNotifier interface {
	Notify(ctx context.Context, events ...domain.Event)
}

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

	log.Info("Starting SMC-SalonScheduler...")

	// Сетка и часовой пояс салона
	grid, err := cfg.Scheduling.Grid()
	if err != nil {
		log.Fatal("Invalid scheduling grid: %v", err)
	}
	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid salon timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Scheduling grid %s-%s step=%dm, timezone=%s",
		grid.Open(), grid.Close(), grid.StepMinutes(), location)

	// Инициализируем метрики (если включены); nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Издатель событий: Redis pub/sub или заглушка
	var events eventNotifier = notifier.Nop{}
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// Уведомления best-effort: сервис стартует и без Redis
			log.Error("Redis ping failed (addr=%s): %v", cfg.Redis.Addr, err)
		}
		cancel()

		events = notifier.NewPublisher(redisClient, cfg.Redis.Channel, log)
		log.Info("Event publisher enabled (addr=%s, channel=%s)", cfg.Redis.Addr, cfg.Redis.Channel)
	}

	// Клиент сервиса распознавания
	inferenceClient := inference.NewClient(
		cfg.Inference.URL,
		time.Duration(cfg.Inference.Timeout)*time.Second,
		log,
	)
	log.Info("Inference client initialized (url=%s, timeout=%ds)", cfg.Inference.URL, cfg.Inference.Timeout)

	// Репозитории и менеджер транзакций
	appointments := appointmentRepo.NewRepository(db)
	schedules := scheduleRepo.NewRepository(db)
	catalog := catalogRepo.NewRepository(db)
	pendingRequests := requestRepo.NewRepository(db)
	txMgr := txmanager.NewTransactionManager(db)

	// Ядро планирования
	clk := clock.Real{}
	calculator := availability.NewCalculator(grid, clk)
	machine := lifecycle.NewMachine(clk)
	generator := packages.NewGenerator(machine)
	resolver := reschedule.NewResolver(calculator)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		schedules,
		appointments,
		catalog,
		calculator,
		location,
		metricsCollector,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		schedules,
		appointments,
		catalog,
		calculator,
		machine,
		txMgr,
		events,
		location,
		metricsCollector,
		log,
	)
	createPackageUseCase := createPackageUC.NewUseCase(
		schedules,
		appointments,
		catalog,
		calculator,
		generator,
		txMgr,
		events,
		location,
		metricsCollector,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		schedules,
		appointments,
		resolver,
		machine,
		txMgr,
		events,
		location,
		metricsCollector,
		log,
	)
	scheduleFromTextUseCase := scheduleFromTextUC.NewUseCase(
		inferenceClient,
		schedules,
		createAppointmentUseCase,
		log,
	)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointments,
		machine,
		inferenceClient,
		txMgr,
		events,
		location,
		metricsCollector,
		log,
	)
	requestSvc := requestsService.NewService(
		pendingRequests,
		appointments,
		schedules,
		catalog,
		calculator,
		machine,
		txMgr,
		events,
		location,
		metricsCollector,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		schedules,
		catalog,
		grid,
		location,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, location, log)
	createPackage := createPackageHandler.NewHandler(createPackageUseCase, location, log)
	scheduleFromText := scheduleFromTextHandler.NewHandler(scheduleFromTextUseCase, location, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, location, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, location, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentSvc, log)
	getPackage := getPackageHandler.NewHandler(appointmentSvc, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(appointmentSvc, log)
	attachPaymentProof := attachPaymentProofHandler.NewHandler(appointmentSvc, log)
	submitRequest := submitRequestHandler.NewHandler(requestSvc, location, log)
	listRequests := listRequestsHandler.NewHandler(requestSvc, log)
	approveRequest := approveRequestHandler.NewHandler(requestSvc, log)
	rejectRequest := rejectRequestHandler.NewHandler(requestSvc, log)
	listServices := listServicesHandler.NewHandler(scheduleSvc, log)
	listProfessionals := listProfessionalsHandler.NewHandler(scheduleSvc, log)
	updateWorkSchedule := updateWorkScheduleHandler.NewHandler(scheduleSvc, log)
	listBlockedSlots := listBlockedSlotsHandler.NewHandler(scheduleSvc, location, log)
	createBlockedSlot := createBlockedSlotHandler.NewHandler(scheduleSvc, location, log)
	deleteBlockedSlot := deleteBlockedSlotHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// КАЛЕНДАРЬ И ДОСТУПНОСТЬ
	// ============================================================

	api.HandleFunc("/professionals/{username}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи ---
	// Статические пути регистрируются раньше /appointments/{id}
	api.HandleFunc("/appointments/packages", createPackage.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/packages/{packageId}", getPackage.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/from-text", scheduleFromText.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{id:[0-9]+}/{action:confirm|delay|complete|cancel}", transitionAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{id:[0-9]+}/payment-proof", attachPaymentProof.Handle).Methods(http.MethodPost)

	// История клиента
	api.HandleFunc("/clients/{phone}/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Публичные заявки ---
	api.HandleFunc("/requests", submitRequest.Handle).Methods(http.MethodPost)
	api.HandleFunc("/requests", listRequests.Handle).Methods(http.MethodGet)
	api.HandleFunc("/requests/{id:[0-9]+}/approve", approveRequest.Handle).Methods(http.MethodPost)
	api.HandleFunc("/requests/{id:[0-9]+}", rejectRequest.Handle).Methods(http.MethodDelete)

	// ============================================================
	// НАСТРОЙКИ САЛОНА
	// ============================================================

	api.HandleFunc("/blocked-slots", listBlockedSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/blocked-slots", createBlockedSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/blocked-slots/{id:[0-9]+}", deleteBlockedSlot.Handle).Methods(http.MethodDelete)

	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals", listProfessionals.Handle).Methods(http.MethodGet)
	api.HandleFunc("/professionals/{username}/schedule", updateWorkSchedule.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

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
}
