package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
	"github.com/blackboxalchemist/cmdcenter/internal/handler/dto"
	"github.com/blackboxalchemist/cmdcenter/internal/repository"
)

// handleGetStats returns aggregate statistics for a period.
// @Summary Get statistics
// @Description Get board distribution, per-agent counts, ledger aggregates, and the deal revenue trend for a period
// @Tags stats
// @Produce json
// @Param period query string false "Period: day, week (default), month, all"
// @Success 200 {object} dto.StatsResponse
// @Security BearerAuth
// @Router /stats [get]
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "week"
	}

	now := time.Now()
	var periodStart time.Time
	switch period {
	case "day":
		periodStart = now.AddDate(0, 0, -1)
	case "week":
		periodStart = now.AddDate(0, 0, -7)
	case "month":
		periodStart = now.AddDate(0, -1, 0)
	case "all":
		periodStart = time.Time{} // Beginning of time
	default:
		respondDomainError(w, fmt.Errorf("%w: %s, must be: day, week, month, all", domain.ErrInvalidPeriod, period))
		return
	}

	filters := repository.StatsFilters{
		PeriodStart: periodStart,
		PeriodEnd:   now,
	}

	boardStats, err := h.boardTaskRepo.GetBoardStats(ctx)
	if err != nil {
		slog.Error("failed to fetch board stats", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch board stats")
		return
	}

	agentStats, err := h.agentRepo.GetAgentStats(ctx, filters)
	if err != nil {
		slog.Error("failed to fetch agent stats", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch agent stats")
		return
	}

	revenueStats, err := h.transactionRepo.GetRevenueStats(ctx, filters)
	if err != nil {
		slog.Error("failed to fetch revenue stats", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch revenue stats")
		return
	}

	trend, err := h.dealTrend(ctx, periodStart)
	if err != nil {
		slog.Error("failed to fetch deal trend", "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch deal trend")
		return
	}

	agents := make([]dto.AgentStats, len(agentStats))
	for i, stat := range agentStats {
		agents[i] = dto.ToAgentStats(stat)
	}

	respondJSON(w, http.StatusOK, dto.StatsResponse{
		Period:      period,
		PeriodStart: periodStart,
		PeriodEnd:   now,
		Board: dto.BoardStats{
			TotalTasks:    boardStats.TotalTasks,
			TasksByColumn: boardStats.TasksByColumn,
		},
		Agents: agents,
		Revenue: dto.RevenueStats{
			Income:           revenueStats.Income,
			Spend:            revenueStats.Spend,
			Net:              revenueStats.Income - revenueStats.Spend,
			TransactionCount: revenueStats.TransactionCount,
		},
		DealTrend: trend,
	})
}

// dealTrend compares the earliest snapshot in the period against the
// latest one. Before any refresh has recorded a snapshot, the trend is
// all zeros.
func (h *Handler) dealTrend(ctx context.Context, periodStart time.Time) (dto.DealRevenueTrend, error) {
	var trend dto.DealRevenueTrend

	first, err := h.metricsRepo.FirstSince(ctx, periodStart)
	if err != nil {
		if errors.Is(err, domain.ErrNoMetrics) {
			return trend, nil
		}
		return trend, err
	}

	latest, err := h.metricsRepo.Latest(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoMetrics) {
			return trend, nil
		}
		return trend, err
	}

	trend.Start = dto.ToDealRevenueResponse(first.DealRevenue)
	trend.End = dto.ToDealRevenueResponse(latest.DealRevenue)
	trend.Delta = latest.DealRevenue.TotalRevenue - first.DealRevenue.TotalRevenue
	return trend, nil
}
