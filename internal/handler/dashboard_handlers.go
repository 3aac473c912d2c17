package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
	"github.com/blackboxalchemist/cmdcenter/internal/handler/dto"
	"github.com/blackboxalchemist/cmdcenter/internal/repository"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500

	defaultFinancialDays = 7
	maxFinancialDays     = 90
)

// handleGetDashboard returns the full dashboard document.
// @Summary Get dashboard document
// @Description Get the complete dashboard snapshot, identical to the exported JSON document
// @Tags dashboard
// @Produce json
// @Success 200 {object} service.DashboardDocument
// @Security BearerAuth
// @Router /dashboard [get]
func (h *Handler) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	document, err := h.exporter.BuildDocument(r.Context())
	if err != nil {
		slog.Error("failed to build dashboard document", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build dashboard document")
		return
	}

	respondJSON(w, http.StatusOK, document)
}

// handleListTasks returns board tasks with filters and pagination.
// @Summary List board tasks
// @Description List the current board snapshot, optionally filtered by column or assignee
// @Tags tasks
// @Produce json
// @Param column query string false "Filter by column: backlog, in-progress, done"
// @Param assignee query string false "Filter by assignee name"
// @Param limit query int false "Page size (default 100, max 500)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.TasksListResponse
// @Security BearerAuth
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	params, err := dto.ParseListParams(query, defaultListLimit, maxListLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	filters := repository.BoardTaskFilters{
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if column := query.Get("column"); column != "" {
		if !domain.TaskColumn(column).IsValid() {
			respondDomainError(w, fmt.Errorf("%w: %s", domain.ErrInvalidColumn, column))
			return
		}
		filters.Column = &column
	}
	if assignee := query.Get("assignee"); assignee != "" {
		filters.Assignee = &assignee
	}

	tasks, total, err := h.boardTaskRepo.List(ctx, filters)
	if err != nil {
		slog.Error("failed to list board tasks", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tasks")
		return
	}

	response := dto.TasksListResponse{
		Tasks:  make([]dto.TaskResponse, len(tasks)),
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	for i, task := range tasks {
		response.Tasks[i] = dto.ToTaskResponse(task)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleListAgents returns all agents with their derived state.
// @Summary List agents
// @Description List the agent fleet with derived states and current-task labels
// @Tags agents
// @Produce json
// @Success 200 {object} dto.AgentsListResponse
// @Security BearerAuth
// @Router /agents [get]
func (h *Handler) handleListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agentRepo.List(r.Context())
	if err != nil {
		slog.Error("failed to list agents", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list agents")
		return
	}

	response := dto.AgentsListResponse{
		Agents: make([]dto.AgentResponse, len(agents)),
	}
	for i, agent := range agents {
		response.Agents[i] = dto.ToAgentResponse(agent)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleListActivities returns feed entries, newest first.
// @Summary List activities
// @Description List the activity feed with filters and pagination, newest first
// @Tags activities
// @Produce json
// @Param type query string false "Filter by activity type"
// @Param agent query string false "Filter by agent slug"
// @Param limit query int false "Page size (default 100, max 500)"
// @Param offset query int false "Page offset"
// @Success 200 {object} dto.ActivitiesListResponse
// @Security BearerAuth
// @Router /activities [get]
func (h *Handler) handleListActivities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	params, err := dto.ParseListParams(query, defaultListLimit, maxListLimit)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	filters := repository.ActivityFilters{
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if activityType := query.Get("type"); activityType != "" {
		if !domain.ActivityType(activityType).IsValid() {
			respondDomainError(w, fmt.Errorf("%w: %s", domain.ErrInvalidActivityType, activityType))
			return
		}
		filters.Type = &activityType
	}
	if agentSlug := query.Get("agent"); agentSlug != "" {
		filters.AgentSlug = &agentSlug
	}

	activities, total, err := h.activityRepo.List(ctx, filters)
	if err != nil {
		slog.Error("failed to list activities", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list activities")
		return
	}

	response := dto.ActivitiesListResponse{
		Activities: make([]dto.ActivityResponse, len(activities)),
		Total:      total,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}
	for i, activity := range activities {
		response.Activities[i] = dto.ToActivityResponse(activity)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleGetFinancial returns recent transactions and summary totals.
// @Summary Get financial data
// @Description Get recent transactions with income, spend, and deal revenue summary
// @Tags financial
// @Produce json
// @Param days query int false "Trailing window in days (default 7, max 90)"
// @Success 200 {object} dto.FinancialResponse
// @Security BearerAuth
// @Router /financial [get]
func (h *Handler) handleGetFinancial(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := defaultFinancialDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxFinancialDays {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				fmt.Sprintf("days must be between 1 and %d", maxFinancialDays))
			return
		}
		days = parsed
	}

	transactions, err := h.transactionRepo.ListRecent(ctx, days, maxListLimit)
	if err != nil {
		slog.Error("failed to list transactions", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list transactions")
		return
	}

	response := dto.FinancialResponse{
		Transactions: make([]dto.TransactionResponse, len(transactions)),
		Days:         days,
	}
	for i, transaction := range transactions {
		response.Transactions[i] = dto.ToTransactionResponse(transaction)
		if transaction.IsIncome() {
			response.Income += transaction.Amount
		} else {
			response.Spend += -transaction.Amount
		}
	}
	response.Net = response.Income - response.Spend

	metrics, err := h.metricsRepo.Latest(ctx)
	if err != nil && !errors.Is(err, domain.ErrNoMetrics) {
		slog.Error("failed to load latest metrics", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load metrics")
		return
	}
	if metrics != nil {
		response.DealRevenue = dto.ToDealRevenueResponse(metrics.DealRevenue)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleListSources returns the health of every integration source.
// @Summary List source health
// @Description List integration sources with their last collection outcome
// @Tags sources
// @Produce json
// @Success 200 {array} dto.SourceResponse
// @Security BearerAuth
// @Router /sources [get]
func (h *Handler) handleListSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.sourceRepo.List(r.Context())
	if err != nil {
		slog.Error("failed to list sources", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list sources")
		return
	}

	response := make([]dto.SourceResponse, len(sources))
	for i, source := range sources {
		response[i] = dto.ToSourceResponse(source)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleTriggerRefresh starts a refresh cycle in the background.
// @Summary Trigger a refresh
// @Description Start a collection cycle now instead of waiting for the scheduler
// @Tags refresh
// @Produce json
// @Success 202 {object} dto.RefreshResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /refresh [post]
func (h *Handler) handleTriggerRefresh(w http.ResponseWriter, r *http.Request) {
	if !h.refresher.TryRefreshAsync() {
		respondDomainError(w, domain.ErrRefreshInProgress)
		return
	}

	respondJSON(w, http.StatusAccepted, dto.RefreshResponse{Status: "started"})
}

// handleUpdates streams refresh events over SSE. Each completed
// refresh produces one "refresh" event carrying the new lastUpdated
// timestamp; clients re-fetch the dashboard when it arrives.
// @Summary Stream refresh events
// @Description Server-sent events; one "refresh" event per completed refresh cycle
// @Tags refresh
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream"
// @Security BearerAuth
// @Router /updates [get]
func (h *Handler) handleUpdates(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	updates := h.notifier.Subscribe()
	defer h.notifier.Unsubscribe(updates)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-updates:
			if !open {
				return
			}
			document, err := h.exporter.BuildDocument(ctx)
			if err != nil {
				slog.Error("failed to build document for SSE event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: refresh\ndata: {\"lastUpdated\":%q}\n\n", document.LastUpdated)
			flusher.Flush()
		}
	}
}
