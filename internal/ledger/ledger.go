// Package ledger owns the activity write path. Every mutation ends with a
// reconcile of the affected day so the habit record can never drift from
// the activities that back it.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/habita-dev/habita/internal/catalog"
	"github.com/habita-dev/habita/internal/dates"
	"github.com/habita-dev/habita/internal/engine"
	"github.com/habita-dev/habita/internal/logger"
	"github.com/habita-dev/habita/internal/models"
	"github.com/habita-dev/habita/internal/storage"
)

type Ledger struct {
	store  storage.Provider
	cat    *catalog.Catalog
	engine *engine.Engine
}

func New(store storage.Provider, cat *catalog.Catalog, eng *engine.Engine) *Ledger {
	return &Ledger{store: store, cat: cat, engine: eng}
}

// Log records a new activity. A nil or same-day target date completes it
// now; a future date plans it; a past date records it as completed on that
// day, with the timestamp set to the backdated day so attribution follows
// the timestamp for all completed activities.
func (l *Ledger) Log(text, categoryID string, target *time.Time, now time.Time) (models.Activity, error) {
	cat, ok := l.cat.Category(categoryID)
	if !ok {
		return models.Activity{}, fmt.Errorf("%w: %q", catalog.ErrUnknownCategory, categoryID)
	}

	status := models.StatusCompleted
	timestamp := now
	planned := target
	if target != nil {
		today := dates.DayKey(now)
		targetDay := dates.DayKey(*target)
		switch {
		case targetDay > today:
			status = models.StatusPlanned
		case targetDay < today:
			timestamp = *target
		}
	}

	activity := models.Activity{
		ID:          uuid.New().String(),
		Text:        text,
		Category:    categoryID,
		Timestamp:   timestamp,
		Points:      cat.Points,
		Status:      status,
		PlannedDate: planned,
	}

	if err := l.store.AddActivity(activity); err != nil {
		return models.Activity{}, err
	}
	logger.Debug("logged activity", "id", activity.ID, "category", categoryID,
		"status", string(status), "day", activity.AttributionDay())

	if status == models.StatusCompleted {
		if _, _, err := l.engine.Reconcile(activity.AttributionDay()); err != nil {
			return models.Activity{}, err
		}
	}

	return activity, nil
}

// Complete transitions a planned activity to completed, stamping it with
// the completion time, then reconciles the day it lands on.
func (l *Ledger) Complete(id string, now time.Time) (models.Activity, error) {
	activity, err := l.store.GetActivity(id)
	if err != nil {
		return models.Activity{}, err
	}
	if activity.Status != models.StatusPlanned {
		return models.Activity{}, fmt.Errorf("activity %s is %s, only planned activities can be completed", id, activity.Status)
	}

	activity.Status = models.StatusCompleted
	activity.Timestamp = now
	if err := l.store.UpdateActivity(activity); err != nil {
		return models.Activity{}, err
	}

	if _, _, err := l.engine.Reconcile(activity.AttributionDay()); err != nil {
		return models.Activity{}, err
	}

	return activity, nil
}

// Cancel transitions a planned activity to cancelled. Cancelled activities
// never count toward points or habit completion.
func (l *Ledger) Cancel(id string) (models.Activity, error) {
	activity, err := l.store.GetActivity(id)
	if err != nil {
		return models.Activity{}, err
	}
	if activity.Status != models.StatusPlanned {
		return models.Activity{}, fmt.Errorf("activity %s is %s, only planned activities can be cancelled", id, activity.Status)
	}

	activity.Status = models.StatusCancelled
	if err := l.store.UpdateActivity(activity); err != nil {
		return models.Activity{}, err
	}

	return activity, nil
}

// CompletedOn returns the completed activities attributed to a day.
func (l *Ledger) CompletedOn(date string) ([]models.Activity, error) {
	activities, err := l.store.GetAllActivities()
	if err != nil {
		return nil, err
	}

	var result []models.Activity
	for _, a := range activities {
		if a.Status == models.StatusCompleted && a.AttributionDay() == date {
			result = append(result, a)
		}
	}
	return result, nil
}

// PlannedOn returns the still-planned activities targeting a day.
func (l *Ledger) PlannedOn(date string) ([]models.Activity, error) {
	activities, err := l.store.GetAllActivities()
	if err != nil {
		return nil, err
	}

	var result []models.Activity
	for _, a := range activities {
		if a.Status == models.StatusPlanned && a.AttributionDay() == date {
			result = append(result, a)
		}
	}
	return result, nil
}
