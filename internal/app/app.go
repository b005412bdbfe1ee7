package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/aidar/jugador-equipo/internal/config"
	"github.com/aidar/jugador-equipo/internal/handler"
	"github.com/aidar/jugador-equipo/internal/middleware"
	"github.com/aidar/jugador-equipo/internal/repository"
	"github.com/aidar/jugador-equipo/internal/repository/memory"
	"github.com/aidar/jugador-equipo/internal/repository/postgres"
	"github.com/aidar/jugador-equipo/internal/service"
	"github.com/aidar/jugador-equipo/migrations"
)

// repositories группирует реализации хранилища, выбранные конфигурацией
type repositories struct {
	equipos   repository.EquipoRepository
	jugadores repository.JugadorRepository
	stats     repository.StatsRepository
	pinger    repository.Pinger
}

// App представляет приложение со всеми зависимостями
type App struct {
	config  *config.Config
	db      *pgxpool.Pool
	repos   repositories
	router  chi.Router
	server  *http.Server
	metrics *middleware.Metrics
	logger  *slog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	app := &App{
		config: cfg,
		logger: logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	switch a.config.App.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		a.repos = repositories{
			equipos:   store.Equipos(),
			jugadores: store.Jugadores(),
			stats:     store,
			pinger:    store,
		}
		a.logger.Info("Using in-memory storage")
	default:
		// Подключаемся к базе данных
		if err := a.connectDB(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if a.config.Database.AutoMigrate {
			if err := a.migrate(ctx); err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
		}
		a.repos = repositories{
			equipos:   postgres.NewEquipoRepository(a.db),
			jugadores: postgres.NewJugadorRepository(a.db),
			stats:     postgres.NewStatsRepository(a.db),
			pinger:    a.db,
		}
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully", "storage", a.config.App.Storage)
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// migrate применяет встроенные SQL миграции через database/sql поверх пула
func (a *App) migrate(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(a.db)
	defer db.Close()

	if err := migrations.Apply(ctx, db); err != nil {
		return err
	}

	a.logger.Info("Database migrations applied")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Инициализируем слой сервисов (бизнес-логика)
	equipoService := service.NewEquipoService(a.repos.equipos)
	jugadorService := service.NewJugadorService(a.repos.jugadores, a.repos.equipos)
	statsService := service.NewStatsService(a.repos.stats, a.repos.equipos, a.repos.jugadores)

	// Инициализируем HTTP обработчики
	alerts := handler.NewAlerts(a.config.App.Name)
	equipoHandler := handler.NewEquipoHandler(equipoService, alerts)
	jugadorHandler := handler.NewJugadorHandler(jugadorService, alerts)
	statsHandler := handler.NewStatsHandler(statsService)

	a.metrics = middleware.NewMetrics("jugador_equipo")

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(a.metrics.Middleware)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check для мониторинга
	r.Get("/health", a.health)
	r.Handle("/metrics", a.metrics.Handler())

	r.Route(a.config.App.APIRoot, func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		// Чтение доступно без токена
		r.Get("/equipos", equipoHandler.List)
		r.Get("/equipos/{id}", equipoHandler.Get)
		r.Get("/equipos/{id}/jugadors", jugadorHandler.ListByEquipo)
		r.Get("/jugadors", jugadorHandler.List)
		r.Get("/jugadors/canastas/{canastas}", jugadorHandler.TopScorers)
		r.Get("/jugadors/{id}", jugadorHandler.Get)
		r.Get("/stats/equipos", statsHandler.GetStats)

		// Изменяющие эндпоинты требуют JWT токен, если задан JWT_SECRET.
		// Удаление дополнительно требует ROLE_ADMIN
		r.Group(func(r chi.Router) {
			admin := chi.Chain()
			if a.config.JWT.Enabled() {
				authService := service.NewAuthService(a.config.JWT.Secret, a.config.JWT.GetExpiration())
				r.Use(middleware.AuthMiddleware(authService))
				admin = chi.Chain(middleware.RequireAuthority(service.AuthorityAdmin))
			}

			r.Post("/equipos", equipoHandler.Create)
			r.Put("/equipos", equipoHandler.Update)
			r.With(admin...).Delete("/equipos/{id}", equipoHandler.Delete)

			r.Post("/jugadors", jugadorHandler.Create)
			r.Put("/jugadors", jugadorHandler.Update)
			r.With(admin...).Delete("/jugadors/{id}", jugadorHandler.Delete)
		})
	})

	a.router = r

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	a.logger.Info("HTTP server configured", "addr", addr, "auth", a.config.JWT.Enabled())
}

// health отвечает 200 если хранилище доступно и 503 иначе
func (a *App) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.repos.pinger.Ping(ctx); err != nil {
		a.logger.Error("Health check failed", "error", err)
		handler.RespondWithJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	handler.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Handler возвращает корневой HTTP обработчик (для тестов через httptest)
func (a *App) Handler() http.Handler {
	return a.router
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
