package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"trafficsim/pkg/cache"
	"trafficsim/pkg/config"
	"trafficsim/pkg/database"
	"trafficsim/pkg/logger"
	"trafficsim/pkg/metrics"
	"trafficsim/pkg/telemetry"
	"trafficsim/pkg/token"
	"trafficsim/services/simulator-svc/internal/middleware"
	"trafficsim/services/simulator-svc/internal/repository"
	"trafficsim/services/simulator-svc/internal/service"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.LoadWithServiceDefaults("simulator-svc", 8080)
	if err != nil {
		logger.Init("error")
		logger.Fatal("Failed to load config", "error", err)
	}

	// Инициализируем логгер
	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	logger.Log.Info("Starting Simulator Service (ConnectRPC)",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Трейсинг
	tracing, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		Environment: cfg.App.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		logger.Fatal("Failed to init tracing", "error", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.Log.Warn("Tracing shutdown error", "error", err)
		}
	}()

	// Метрики
	m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)
	prometheus.MustRegister(metrics.NewRuntimeCollector(cfg.Metrics.Namespace, cfg.Metrics.Subsystem))

	// История запусков (опционально)
	var repo repository.RunRepository
	var db *database.PostgresDB
	if cfg.Database.Enabled {
		db, err = database.NewPostgresDB(ctx, &cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		defer db.Close()

		migrationsFS, dir := repository.Migrations()
		if err := database.RunMigrations(ctx, db.Pool(), &cfg.Database, migrationsFS, dir); err != nil {
			logger.Fatal("Failed to run migrations", "error", err)
		}

		repo = repository.NewPostgresRunRepository(db)
		logger.Log.Info("Run history enabled", "database", cfg.Database.Database)
	}

	// Кэш результатов симуляции (опционально)
	var simCache *cache.SimulationCache
	if cfg.Cache.Enabled {
		backend, err := cache.New(cache.FromConfig(&cfg.Cache))
		if err != nil {
			logger.Fatal("Failed to init cache", "error", err)
		}
		simCache = cache.NewSimulationCache(backend, cfg.Cache.DefaultTTL)
		logger.Log.Info("Simulation cache enabled", "driver", cfg.Cache.Driver)
	}

	// Сервис
	simulatorService := service.NewSimulatorService(cfg, repo, simCache)

	// Interceptors: recovery первым, rate limit после auth, чтобы лимит
	// считался по user id аутентифицированных запросов, а не только по IP
	interceptors := []connect.Interceptor{
		middleware.NewRecoveryInterceptor(),
		middleware.NewLoggingInterceptor(),
		middleware.NewMetricsInterceptor(),
		telemetry.UnaryInterceptor(),
	}
	if cfg.Auth.Enabled {
		manager := token.NewJWTManager(token.FromAuthConfig(&cfg.Auth))
		interceptors = append(interceptors,
			middleware.NewAuthInterceptor(manager, service.PublicProcedures()))
	}
	interceptors = append(interceptors, middleware.NewRateLimitInterceptor(cfg.RateLimit))

	mux := http.NewServeMux()
	simulatorService.RegisterRoutes(mux, interceptors...)

	// Health endpoints (обычный HTTP для k8s probes)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/ready", handleReady(db))

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
	}

	// CORS
	var httpHandler http.Handler = mux
	if cfg.HTTP.CORS.Enabled {
		httpHandler = middleware.CORS(cfg.HTTP.CORS)(mux)
	}

	// HTTP сервер с поддержкой HTTP/2 cleartext
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      h2c.NewHandler(httpHandler, &http2.Server{}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Log.Info("Simulator listening",
			"port", cfg.HTTP.Port,
			"protocol", "HTTP/1.1 + H2C (ConnectRPC)",
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server shutdown error", "error", err)
	}

	logger.Log.Info("Server stopped")
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
		// Логировать не можем - response уже начат отправляться
		return
	}
}

func handleReady(db *database.PostgresDB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		// Без БД сервис готов сразу после старта
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				if _, err := w.Write([]byte(`{"ready":false}`)); err != nil {
					return
				}
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"ready":true}`)); err != nil {
			return
		}
	}
}
