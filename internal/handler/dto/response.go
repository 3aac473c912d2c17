package dto

import (
	"time"

	"github.com/blackboxalchemist/cmdcenter/internal/domain"
	"github.com/blackboxalchemist/cmdcenter/internal/repository"
)

// TaskResponse represents one board task.
type TaskResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Column       string    `json:"column"`
	Priority     string    `json:"priority"`
	Assignee     string    `json:"assignee"`
	CreatedAt    time.Time `json:"created_at"`
	LastUpdateAt time.Time `json:"last_update_at"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// AgentResponse represents one agent with its derived state.
type AgentResponse struct {
	Slug         string     `json:"slug"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	State        string     `json:"state"`
	CurrentTask  string     `json:"current_task"`
	LastActiveAt *time.Time `json:"last_active_at"`
}

// AgentsListResponse represents the response for GET /agents.
type AgentsListResponse struct {
	Agents []AgentResponse `json:"agents"`
}

// ActivityResponse represents one feed entry.
type ActivityResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	AgentSlug   *string   `json:"agent_slug"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ActivitiesListResponse represents the response for GET /activities.
type ActivitiesListResponse struct {
	Activities []ActivityResponse `json:"activities"`
	Total      int                `json:"total"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}

// TransactionResponse represents one ledger entry.
type TransactionResponse struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Account     string  `json:"account"`
	Category    string  `json:"category"`
}

// FinancialResponse represents the response for GET /financial.
type FinancialResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Days         int                   `json:"days"`
	Income       float64               `json:"income"`
	Spend        float64               `json:"spend"`
	Net          float64               `json:"net"`
	DealRevenue  DealRevenueResponse   `json:"deal_revenue"`
}

// DealRevenueResponse holds the latest deal figures.
type DealRevenueResponse struct {
	TotalRevenue float64 `json:"total_revenue"`
	DealCount    int     `json:"deal_count"`
	Last24h      float64 `json:"last_24h"`
}

// StatsResponse represents aggregate statistics for a period.
type StatsResponse struct {
	Period      string           `json:"period"`
	PeriodStart time.Time        `json:"period_start"`
	PeriodEnd   time.Time        `json:"period_end"`
	Board       BoardStats       `json:"board"`
	Agents      []AgentStats     `json:"agents"`
	Revenue     RevenueStats     `json:"revenue"`
	DealTrend   DealRevenueTrend `json:"deal_trend"`
}

// BoardStats represents the current board distribution.
type BoardStats struct {
	TotalTasks    int            `json:"total_tasks"`
	TasksByColumn map[string]int `json:"tasks_by_column"`
}

// AgentStats represents statistics for a single agent.
type AgentStats struct {
	AgentSlug     string `json:"agent_slug"`
	AgentName     string `json:"agent_name"`
	AssignedTasks int    `json:"assigned_tasks"`
	TasksDone     int    `json:"tasks_done"`
	Activities    int    `json:"activities"`
}

// RevenueStats represents ledger aggregates for the period.
type RevenueStats struct {
	Income           float64 `json:"income"`
	Spend            float64 `json:"spend"`
	Net              float64 `json:"net"`
	TransactionCount int     `json:"transaction_count"`
}

// DealRevenueTrend compares deal figures at the period's edges.
type DealRevenueTrend struct {
	Start DealRevenueResponse `json:"start"`
	End   DealRevenueResponse `json:"end"`
	Delta float64             `json:"delta"`
}

// RefreshResponse represents the response for POST /refresh.
type RefreshResponse struct {
	Status string `json:"status"`
}

// SourceResponse represents one source health record.
type SourceResponse struct {
	Name      string     `json:"name"`
	State     string     `json:"state"`
	LastError string     `json:"last_error,omitempty"`
	CheckedAt time.Time  `json:"checked_at"`
	LastOKAt  *time.Time `json:"last_ok_at"`
}

// ToTaskResponse converts domain.BoardTask to TaskResponse.
func ToTaskResponse(task *domain.BoardTask) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Column:       string(task.Column),
		Priority:     string(task.Priority),
		Assignee:     task.Assignee,
		CreatedAt:    task.CreatedAt,
		LastUpdateAt: task.LastUpdateAt,
	}
}

// ToAgentResponse converts domain.Agent to AgentResponse.
func ToAgentResponse(agent *domain.Agent) AgentResponse {
	return AgentResponse{
		Slug:         agent.Slug,
		Name:         agent.Name,
		Role:         agent.Role,
		State:        string(agent.State),
		CurrentTask:  agent.CurrentTask,
		LastActiveAt: agent.LastActiveAt,
	}
}

// ToActivityResponse converts domain.Activity to ActivityResponse.
func ToActivityResponse(activity *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          activity.ID,
		Type:        string(activity.Type),
		Description: activity.Description,
		AgentSlug:   activity.AgentSlug,
		OccurredAt:  activity.OccurredAt,
	}
}

// ToTransactionResponse converts domain.Transaction to TransactionResponse.
func ToTransactionResponse(transaction *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		Date:        transaction.Date.Format("2006-01-02"),
		Amount:      transaction.Amount,
		Description: transaction.Description,
		Account:     transaction.Account,
		Category:    transaction.Category,
	}
}

// ToAgentStats converts a repository stats row to AgentStats.
func ToAgentStats(result repository.AgentStatsResult) AgentStats {
	return AgentStats{
		AgentSlug:     result.AgentSlug,
		AgentName:     result.AgentName,
		AssignedTasks: result.AssignedTasks,
		TasksDone:     result.TasksDone,
		Activities:    result.Activities,
	}
}

// ToDealRevenueResponse converts domain.DealRevenue to its response form.
func ToDealRevenueResponse(revenue domain.DealRevenue) DealRevenueResponse {
	return DealRevenueResponse{
		TotalRevenue: revenue.TotalRevenue,
		DealCount:    revenue.DealCount,
		Last24h:      revenue.Last24h,
	}
}

// ToSourceResponse converts domain.Source to SourceResponse.
func ToSourceResponse(source *domain.Source) SourceResponse {
	return SourceResponse{
		Name:      string(source.Name),
		State:     string(source.State),
		LastError: source.LastError,
		CheckedAt: source.CheckedAt,
		LastOKAt:  source.LastOKAt,
	}
}
