// Package engine derives the canonical per-day habit record from logged
// activities and manual toggles, and keeps it persisted. Every operation
// is a complete read-compute-write cycle over the injected store; the
// engine holds no state of its own between calls.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/habita-dev/habita/internal/catalog"
	"github.com/habita-dev/habita/internal/dates"
	"github.com/habita-dev/habita/internal/logger"
	"github.com/habita-dev/habita/internal/models"
	"github.com/habita-dev/habita/internal/storage"
)

// ErrAutoCompleted is returned when a toggle tries to unmark a category
// that is satisfied by a logged activity. Activities are the source of
// truth; the mark can only go away when the activity does.
var ErrAutoCompleted = errors.New("category is completed by a logged activity and cannot be unmarked")

// Notice identifies which notification a toggle should surface. The four
// values are mutually exclusive, picked in priority order.
type Notice int

const (
	NoticeCategoryUnmarked Notice = iota
	NoticeCategoryDone
	NoticeFirstOfDay
	NoticeDailyComplete
)

// ToggleResult reports the outcome of a category toggle after it has been
// durably persisted.
type ToggleResult struct {
	Habit       models.DailyHabit
	Category    catalog.Category
	Completed   bool // true when the toggle marked the category
	Notice      Notice
	BonusChange int // daily-complete bonus delta applied, if any
}

// PremiumResult reports the outcome of a premium-habit toggle.
type PremiumResult struct {
	Habit     models.DailyHabit
	Premium   catalog.PremiumHabit
	Completed bool
}

type Engine struct {
	store storage.Provider
	cat   *catalog.Catalog
}

func New(store storage.Provider, cat *catalog.Catalog) *Engine {
	return &Engine{store: store, cat: cat}
}

// Catalog exposes the engine's catalog to consumers that render its output.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// autoSatisfied returns the set of categories with at least one completed
// activity attributed to the given day.
func (e *Engine) autoSatisfied(date string) (map[string]bool, error) {
	activities, err := e.store.GetAllActivities()
	if err != nil {
		return nil, err
	}

	satisfied := make(map[string]bool)
	for _, a := range activities {
		if a.Status != models.StatusCompleted {
			continue
		}
		if a.AttributionDay() == date {
			satisfied[a.Category] = true
		}
	}
	return satisfied, nil
}

// loadHabit returns the stored record for the date, or a fresh empty one.
func (e *Engine) loadHabit(date string) (models.DailyHabit, bool, error) {
	habit, err := e.store.GetDailyHabit(date)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.NewDailyHabit(date), false, nil
		}
		return models.DailyHabit{}, false, err
	}
	return habit, true, nil
}

// compute fills in the derived fields of a habit record from its progress
// and premium maps: required-category count, bonus flag and point total.
func (e *Engine) compute(habit *models.DailyHabit, day time.Time) {
	required := e.cat.RequiredCategories(day)

	completed := 0
	for _, cat := range required {
		if habit.CategoryProgress[cat.ID] {
			completed++
		}
	}
	habit.CompletedCategories = completed
	habit.BonusEarned = completed == len(required)

	points := 0
	for id, done := range habit.CategoryProgress {
		if !done {
			continue
		}
		if cat, ok := e.cat.Category(id); ok {
			points += cat.Points
		}
	}
	for id, done := range habit.PremiumHabits {
		if !done {
			continue
		}
		if p, ok := e.cat.Premium(id); ok {
			points += p.Points
		}
	}
	if habit.BonusEarned {
		points += e.cat.Bonuses.DailyComplete
	}
	if points < 0 {
		points = 0
	}
	habit.TotalPoints = points
}

// Reconcile merges the auto-satisfied category set for a day into the
// stored record and persists the result. Manual marks are sticky: an
// activity can add a checked state but never remove one. The returned
// bool reports whether a write happened; reconciling stable state is a
// no-op.
func (e *Engine) Reconcile(date string) (models.DailyHabit, bool, error) {
	day, err := dates.ParseDayKey(date)
	if err != nil {
		return models.DailyHabit{}, false, err
	}

	satisfied, err := e.autoSatisfied(date)
	if err != nil {
		return models.DailyHabit{}, false, err
	}

	existing, found, err := e.loadHabit(date)
	if err != nil {
		return models.DailyHabit{}, false, err
	}

	habit := models.NewDailyHabit(date)
	for _, cat := range e.cat.Categories {
		habit.CategoryProgress[cat.ID] = satisfied[cat.ID] || existing.CategoryProgress[cat.ID]
	}
	for id, done := range existing.PremiumHabits {
		habit.PremiumHabits[id] = done
	}
	e.compute(&habit, day)

	if found && habit.Equal(existing) {
		return existing, false, nil
	}

	if err := e.store.SaveDailyHabit(habit); err != nil {
		return models.DailyHabit{}, false, fmt.Errorf("failed to persist daily habit: %w", err)
	}
	logger.Debug("reconciled daily habit", "date", date,
		"completed", habit.CompletedCategories, "points", habit.TotalPoints)

	return habit, true, nil
}

// ToggleCategory flips a category's manual mark for the day. Unmarking a
// category that an activity auto-satisfied is rejected with
// ErrAutoCompleted. The point delta is symmetric, the daily-complete
// bonus is applied or removed when the completion threshold is crossed,
// and the total is floored at zero. Nothing is reported as done unless
// the write succeeded.
func (e *Engine) ToggleCategory(date, categoryID string) (ToggleResult, error) {
	cat, ok := e.cat.Category(categoryID)
	if !ok {
		return ToggleResult{}, fmt.Errorf("%w: %q", catalog.ErrUnknownCategory, categoryID)
	}

	day, err := dates.ParseDayKey(date)
	if err != nil {
		return ToggleResult{}, err
	}

	// Reconcile first so the toggle sees activity-derived state.
	habit, _, err := e.Reconcile(date)
	if err != nil {
		return ToggleResult{}, err
	}

	satisfied, err := e.autoSatisfied(date)
	if err != nil {
		return ToggleResult{}, err
	}
	if satisfied[categoryID] && habit.CategoryProgress[categoryID] {
		return ToggleResult{}, fmt.Errorf("%s: %w", cat.Label, ErrAutoCompleted)
	}

	updated := habit.Clone()
	wasCompleted := updated.CategoryProgress[categoryID]
	updated.CategoryProgress[categoryID] = !wasCompleted

	required := e.cat.RequiredCategories(day)
	completedRequired := 0
	for _, rc := range required {
		if updated.CategoryProgress[rc.ID] {
			completedRequired++
		}
	}

	delta := cat.Points
	if wasCompleted {
		delta = -cat.Points
	}

	wasComplete := habit.CompletedCategories == len(required)
	isNowComplete := completedRequired == len(required)
	bonusChange := 0
	switch {
	case isNowComplete && !wasComplete:
		bonusChange = e.cat.Bonuses.DailyComplete
	case wasComplete && !isNowComplete:
		bonusChange = -e.cat.Bonuses.DailyComplete
	}

	total := habit.TotalPoints + delta + bonusChange
	if total < 0 {
		total = 0
	}

	updated.CompletedCategories = completedRequired
	updated.BonusEarned = isNowComplete
	updated.TotalPoints = total

	if err := e.store.SaveDailyHabit(updated); err != nil {
		return ToggleResult{}, fmt.Errorf("failed to persist daily habit: %w", err)
	}

	notice := NoticeCategoryUnmarked
	if !wasCompleted {
		switch {
		case isNowComplete:
			notice = NoticeDailyComplete
		case completedRequired == 1:
			notice = NoticeFirstOfDay
		default:
			notice = NoticeCategoryDone
		}
	}
	logger.Debug("toggled category", "date", date, "category", categoryID,
		"completed", !wasCompleted, "points", updated.TotalPoints)

	return ToggleResult{
		Habit:       updated,
		Category:    cat,
		Completed:   !wasCompleted,
		Notice:      notice,
		BonusChange: bonusChange,
	}, nil
}

// TogglePremium flips a premium habit for the day. Premium habits are
// pure point add-ons: they never count toward the completion predicate
// and are never locked by activities.
func (e *Engine) TogglePremium(date, habitID string) (PremiumResult, error) {
	premium, ok := e.cat.Premium(habitID)
	if !ok {
		return PremiumResult{}, fmt.Errorf("%w: %q", catalog.ErrUnknownPremiumHabit, habitID)
	}

	if _, err := dates.ParseDayKey(date); err != nil {
		return PremiumResult{}, err
	}

	habit, _, err := e.Reconcile(date)
	if err != nil {
		return PremiumResult{}, err
	}

	updated := habit.Clone()
	wasCompleted := updated.PremiumHabits[habitID]
	updated.PremiumHabits[habitID] = !wasCompleted

	delta := premium.Points
	if wasCompleted {
		delta = -premium.Points
	}
	total := habit.TotalPoints + delta
	if total < 0 {
		total = 0
	}
	updated.TotalPoints = total

	if err := e.store.SaveDailyHabit(updated); err != nil {
		return PremiumResult{}, fmt.Errorf("failed to persist daily habit: %w", err)
	}
	logger.Debug("toggled premium habit", "date", date, "habit", habitID,
		"completed", !wasCompleted, "points", updated.TotalPoints)

	return PremiumResult{
		Habit:     updated,
		Premium:   premium,
		Completed: !wasCompleted,
	}, nil
}
