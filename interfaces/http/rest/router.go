package rest

import (
	"net/http"

	"tomato-backend/application/commands/bus"
	querybus "tomato-backend/application/queries/bus"
	"tomato-backend/application/services"
	"tomato-backend/infrastructure/config"
	"tomato-backend/interfaces/http/rest/handlers"
	"tomato-backend/interfaces/http/rest/middleware"
	pkgerrors "tomato-backend/pkg/errors"
	"tomato-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	progress   *services.ProgressService
	metrics    *observability.Metrics
	cfg        *config.Config
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	progress *services.ProgressService,
	metrics *observability.Metrics,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		progress:   progress,
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.cfg.IsDevelopment())

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(errorHandler.Middleware)
	router.Use(middleware.Logger(rt.logger))

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://servicewechat.com"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.cfg))

		// Single-endpoint dispatch, matching the mini-program client protocol
		callHandler := handlers.NewCallHandler(rt.commandBus, rt.queryBus, rt.progress, rt.metrics, rt.logger)
		r.Post("/call", callHandler.Call)

		// Todo endpoints
		r.Route("/todos", func(r chi.Router) {
			todoHandler := handlers.NewTodoHandler(rt.commandBus, rt.queryBus, rt.logger)
			r.Get("/", todoHandler.ListTodos)
			r.Post("/", todoHandler.CreateTodo)
			r.Put("/{todoID}", todoHandler.UpdateTodo)
			r.Delete("/{todoID}", todoHandler.DeleteTodo)
		})

		// Aim endpoints
		r.Route("/aims", func(r chi.Router) {
			aimHandler := handlers.NewAimHandler(rt.commandBus, rt.queryBus, rt.progress, rt.logger)
			r.Get("/", aimHandler.ListAims)
			r.Post("/", aimHandler.CreateAim)
			r.Put("/{aimID}", aimHandler.UpdateAim)
			r.Delete("/{aimID}", aimHandler.DeleteAim)
			r.Post("/{aimID}/progress/recompute", aimHandler.RecomputeProgress)
			r.Put("/{aimID}/progress", aimHandler.SetProgress)
			r.Put("/{aimID}/todos", aimHandler.LinkTodos)
		})

		// Tomato session endpoints
		r.Route("/tomatoes", func(r chi.Router) {
			tomatoHandler := handlers.NewTomatoHandler(rt.commandBus, rt.queryBus, rt.logger)
			r.Get("/", tomatoHandler.ListRecords)
			r.Post("/", tomatoHandler.StartRecord)
			r.Put("/{recordID}", tomatoHandler.FinalizeRecord)
		})

		// Statistics endpoint
		r.Get("/statistics", handlers.NewStatsHandler(rt.queryBus, rt.logger).GetStatistics)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
