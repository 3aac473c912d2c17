package domain

import "time"

// ActivityType tags an activity feed entry by what produced it.
type ActivityType string

const (
	ActivityTypeRevenue  ActivityType = "REVENUE"
	ActivityTypeFinance  ActivityType = "FINANCE"
	ActivityTypeSMS      ActivityType = "SMS"
	ActivityTypeEmail    ActivityType = "EMAIL"
	ActivityTypeSystem   ActivityType = "SYSTEM"
	ActivityTypeCoord    ActivityType = "COORD"
	ActivityTypeStatus   ActivityType = "STATUS"
	ActivityTypeBoard    ActivityType = "BOARD"
	ActivityTypeScrape   ActivityType = "SCRAPE"
	ActivityTypeContent  ActivityType = "CONTENT"
	ActivityTypeAdmin    ActivityType = "ADMIN"
	ActivityTypeOutreach ActivityType = "OUTREACH"
	ActivityTypeDeploy   ActivityType = "DEPLOY"
)

// IsValid checks if the type is one of the known feed tags.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTypeRevenue, ActivityTypeFinance, ActivityTypeSMS,
		ActivityTypeEmail, ActivityTypeSystem, ActivityTypeCoord,
		ActivityTypeStatus, ActivityTypeBoard, ActivityTypeScrape,
		ActivityTypeContent, ActivityTypeAdmin, ActivityTypeOutreach,
		ActivityTypeDeploy:
		return true
	default:
		return false
	}
}

// Activity is one append-only feed entry derived from observed changes
// between refreshes.
type Activity struct {
	ID          string
	Type        ActivityType
	Description string
	AgentSlug   *string // nil for system-wide entries
	OccurredAt  time.Time
	CreatedAt   time.Time
}

// IsSystemEntry returns true if the entry is not attributed to an agent.
func (a *Activity) IsSystemEntry() bool {
	return a.AgentSlug == nil
}
