package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/blackboxalchemist/cmdcenter/docs" // Import generated docs
	"github.com/blackboxalchemist/cmdcenter/internal/handler/dto"
	"github.com/blackboxalchemist/cmdcenter/internal/middleware"
	"github.com/blackboxalchemist/cmdcenter/internal/notifier"
	"github.com/blackboxalchemist/cmdcenter/internal/repository"
	"github.com/blackboxalchemist/cmdcenter/internal/service"
	"github.com/blackboxalchemist/cmdcenter/internal/static"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool      *pgxpool.Pool
	refresher *service.Refresher
	exporter  *service.Exporter
	notifier  *notifier.Notifier

	boardTaskRepo   *repository.BoardTaskRepository
	transactionRepo *repository.TransactionRepository
	agentRepo       *repository.AgentRepository
	activityRepo    *repository.ActivityRepository
	metricsRepo     *repository.MetricsRepository
	sourceRepo      *repository.SourceRepository

	authMiddleware *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(
	pool *pgxpool.Pool,
	refresher *service.Refresher,
	exporter *service.Exporter,
	updates *notifier.Notifier,
	apiToken string,
) *Handler {
	return &Handler{
		pool:            pool,
		refresher:       refresher,
		exporter:        exporter,
		notifier:        updates,
		boardTaskRepo:   repository.NewBoardTaskRepository(pool),
		transactionRepo: repository.NewTransactionRepository(pool),
		agentRepo:       repository.NewAgentRepository(pool),
		activityRepo:    repository.NewActivityRepository(pool),
		metricsRepo:     repository.NewMetricsRepository(pool),
		sourceRepo:      repository.NewSourceRepository(pool),
		authMiddleware:  middleware.NewAuthMiddleware(apiToken),
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Embedded dashboard page
	mux.HandleFunc("GET /{$}", h.handleIndex)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	// API v1 routes behind the operator token (no-op when unset)
	auth := h.authMiddleware.Authenticate
	mux.Handle("GET /api/v1/dashboard", auth(http.HandlerFunc(h.handleGetDashboard)))
	mux.Handle("GET /api/v1/tasks", auth(http.HandlerFunc(h.handleListTasks)))
	mux.Handle("GET /api/v1/agents", auth(http.HandlerFunc(h.handleListAgents)))
	mux.Handle("GET /api/v1/activities", auth(http.HandlerFunc(h.handleListActivities)))
	mux.Handle("GET /api/v1/financial", auth(http.HandlerFunc(h.handleGetFinancial)))
	mux.Handle("GET /api/v1/sources", auth(http.HandlerFunc(h.handleListSources)))
	mux.Handle("GET /api/v1/stats", auth(http.HandlerFunc(h.handleGetStats)))
	mux.Handle("POST /api/v1/refresh", auth(http.HandlerFunc(h.handleTriggerRefresh)))
	mux.Handle("GET /api/v1/updates", auth(http.HandlerFunc(h.handleUpdates)))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleIndex serves the embedded dashboard page.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(static.IndexHTML))
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes the response.
func respondDomainError(w http.ResponseWriter, err error) {
	status, code, message := dto.MapDomainError(err)
	respondError(w, status, code, message)
}
