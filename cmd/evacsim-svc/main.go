package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evacsim/api"
	"evacsim/internal/handlers"
	"evacsim/internal/repository"
	"evacsim/internal/service"
	"evacsim/migrations"
	"evacsim/pkg/audit"
	"evacsim/pkg/cache"
	"evacsim/pkg/config"
	"evacsim/pkg/database"
	"evacsim/pkg/logger"
	"evacsim/pkg/metrics"
	"evacsim/pkg/ratelimit"
	"evacsim/pkg/swagger"
	"evacsim/pkg/telemetry"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		logger.Init("error")
		logger.Fatal("Failed to load config", "error", err)
	}

	// Инициализируем логгер
	logger.InitFromApp(cfg.App.Name, cfg.App.Environment, logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	logger.Log.Info("Starting evacuation simulation service",
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Телеметрия
	if cfg.Tracing.Enabled {
		tp, err := telemetry.Init(ctx, telemetry.Config{
			Enabled:     cfg.Tracing.Enabled,
			Endpoint:    cfg.Tracing.Endpoint,
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Environment: cfg.App.Environment,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			logger.Log.Warn("Failed to init telemetry", "error", err)
		} else {
			defer func() {
				if err := tp.Shutdown(context.Background()); err != nil {
					logger.Log.Warn("Failed to shutdown telemetry", "error", err)
				}
			}()
			logger.Log.Info("Telemetry initialized", "endpoint", cfg.Tracing.Endpoint)
		}
	}

	// Метрики
	metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	metrics.Get().SetServiceInfo(cfg.App.Version, cfg.App.Environment)

	// База данных
	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	// Миграции
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(
			ctx,
			db.Pool(),
			&cfg.Database,
			migrations.PostgresMigrations,
			"postgres",
		); err != nil {
			logger.Fatal("failed to run migrations", "error", err)
		}
	}

	// Кэш
	c, err := cache.New(cache.FromConfig(&cfg.Cache))
	if err != nil {
		logger.Fatal("failed to init cache", "error", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Log.Warn("Failed to close cache", "error", err)
		}
	}()

	// Аудит
	if cfg.Audit.Enabled {
		auditLogger, err := audit.New(&audit.Config{
			Enabled:     cfg.Audit.Enabled,
			Backend:     cfg.Audit.Backend,
			FilePath:    cfg.Audit.FilePath,
			BufferSize:  cfg.Audit.BufferSize,
			FlushPeriod: cfg.Audit.FlushPeriod,
		})
		if err != nil {
			logger.Log.Warn("Failed to create audit logger, continuing without it", "error", err)
		} else {
			audit.SetGlobal(auditLogger)
			defer func() {
				if err := auditLogger.Close(); err != nil {
					logger.Log.Warn("Failed to close audit logger", "error", err)
				}
			}()
			logger.Log.Info("Audit logger initialized", "backend", cfg.Audit.Backend)
		}
	}

	// Инициализация слоёв
	repo := repository.NewPostgresNetworkRepository(db)

	evacuationService, err := service.NewEvacuationService(repo, c, cfg.Evacuation)
	if err != nil {
		logger.Fatal("failed to create evacuation service", "error", err)
	}
	defer evacuationService.Close()

	cacheProbe := func(ctx context.Context) error {
		_, err := c.Exists(ctx, "readiness:probe")
		return err
	}

	handler := handlers.NewHandler(
		evacuationService,
		db,
		cacheProbe,
		cfg.Evacuation.DefaultScenario,
		cfg.Evacuation.DefaultRegion,
		cfg.App.Version,
	)

	// Rate limiter (опционально)
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter, err = ratelimit.New(&ratelimit.Config{
			Requests:        cfg.RateLimit.Requests,
			Window:          cfg.RateLimit.Window,
			Strategy:        cfg.RateLimit.Strategy,
			Backend:         cfg.RateLimit.Backend,
			BurstSize:       cfg.RateLimit.BurstSize,
			CleanupInterval: cfg.RateLimit.CleanupInterval,
			RedisAddr:       cfg.RateLimit.RedisAddr,
			RedisPassword:   cfg.RateLimit.RedisPassword,
			RedisDB:         cfg.RateLimit.RedisDB,
		})
		if err != nil {
			logger.Log.Warn("Failed to create rate limiter, continuing without it", "error", err)
			limiter = nil
		} else {
			defer func() {
				if err := limiter.Close(); err != nil {
					logger.Log.Warn("Failed to close rate limiter", "error", err)
				}
			}()
			logger.Log.Info("Rate limiter initialized",
				"requests", cfg.RateLimit.Requests,
				"window", cfg.RateLimit.Window,
				"strategy", cfg.RateLimit.Strategy,
			)
		}
	}

	router := handlers.NewRouter(handler, cfg.HTTP, limiter)

	// Swagger UI на отдельном порту
	if cfg.Swagger.Enabled {
		go func() {
			spec, err := api.GetSpec()
			if err != nil {
				logger.Log.Error("Failed to load OpenAPI spec", "error", err)
				return
			}

			swaggerServer := swagger.NewServer(&swagger.Config{
				Title:    cfg.Swagger.Title,
				BasePath: "/swagger",
				SpecPath: "/openapi.json",
			}, spec)

			if err := swaggerServer.Start(cfg.Swagger.Port); err != nil && err != http.ErrServerClosed {
				logger.Log.Error("Swagger server failed", "error", err)
			}
		}()
		logger.Log.Info("Swagger UI started", "port", cfg.Swagger.Port)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	// Запускаем сервер
	go func() {
		logger.Log.Info("HTTP server listening", "port", cfg.HTTP.Port)
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
