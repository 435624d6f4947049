package models

import (
	"time"

	"github.com/habita-dev/habita/internal/dates"
)

// ActivityStatus is the lifecycle state of a logged activity.
type ActivityStatus string

const (
	StatusCompleted ActivityStatus = "completed"
	StatusPlanned   ActivityStatus = "planned"
	StatusCancelled ActivityStatus = "cancelled"
)

// Activity is one immutable ledger entry. Points are snapshotted from the
// catalog at creation so later catalog edits never rewrite history.
type Activity struct {
	ID          string         `json:"id"`
	Text        string         `json:"text"`
	Category    string         `json:"category"`
	Timestamp   time.Time      `json:"timestamp"`
	Points      int            `json:"points"`
	Status      ActivityStatus `json:"status"`
	PlannedDate *time.Time     `json:"planned_date,omitempty"`
}

// AttributionDay returns the day key this activity counts toward.
// Completed activities follow their timestamp, which is backdated at
// creation for past-day logs. Planned activities follow their target date.
func (a Activity) AttributionDay() string {
	if a.Status == StatusCompleted {
		return dates.DayKey(a.Timestamp)
	}
	if a.PlannedDate != nil {
		return dates.DayKey(*a.PlannedDate)
	}
	return dates.DayKey(a.Timestamp)
}
