package engine

import (
	"fmt"

	"github.com/habita-dev/habita/internal/catalog"
	"github.com/habita-dev/habita/internal/dates"
	"github.com/habita-dev/habita/internal/logger"
	"github.com/habita-dev/habita/internal/models"
)

// BatchEdit is a transactional editing session for one day: a draft copy
// of the category and premium state is mutated freely in memory and only
// touches the store on Save. Cancel (or simply dropping the draft) leaves
// the stored record exactly as it was.
type BatchEdit struct {
	engine    *Engine
	date      string
	draft     models.DailyHabit
	satisfied map[string]bool
	done      bool
}

// BeginBatchEdit reconciles the day and snapshots its state into a draft.
func (e *Engine) BeginBatchEdit(date string) (*BatchEdit, error) {
	if _, err := dates.ParseDayKey(date); err != nil {
		return nil, err
	}

	habit, _, err := e.Reconcile(date)
	if err != nil {
		return nil, err
	}
	satisfied, err := e.autoSatisfied(date)
	if err != nil {
		return nil, err
	}

	return &BatchEdit{
		engine:    e,
		date:      date,
		draft:     habit.Clone(),
		satisfied: satisfied,
	}, nil
}

// Date returns the day key the draft belongs to.
func (b *BatchEdit) Date() string {
	return b.date
}

// CategoryProgress returns the draft's current category state.
func (b *BatchEdit) CategoryProgress() map[string]bool {
	return b.draft.CategoryProgress
}

// PremiumHabits returns the draft's current premium-habit state.
func (b *BatchEdit) PremiumHabits() map[string]bool {
	return b.draft.PremiumHabits
}

// AutoSatisfied reports whether the category is locked on by an activity.
func (b *BatchEdit) AutoSatisfied(categoryID string) bool {
	return b.satisfied[categoryID]
}

// ToggleCategory flips a category in the draft. The auto-completed lock
// still applies inside the transaction: a category satisfied by an
// activity cannot be turned off.
func (b *BatchEdit) ToggleCategory(categoryID string) error {
	cat, ok := b.engine.cat.Category(categoryID)
	if !ok {
		return fmt.Errorf("%w: %q", catalog.ErrUnknownCategory, categoryID)
	}
	if b.satisfied[categoryID] && b.draft.CategoryProgress[categoryID] {
		return fmt.Errorf("%s: %w", cat.Label, ErrAutoCompleted)
	}
	b.draft.CategoryProgress[categoryID] = !b.draft.CategoryProgress[categoryID]
	return nil
}

// TogglePremium flips a premium habit in the draft.
func (b *BatchEdit) TogglePremium(habitID string) error {
	if _, ok := b.engine.cat.Premium(habitID); !ok {
		return fmt.Errorf("%w: %q", catalog.ErrUnknownPremiumHabit, habitID)
	}
	b.draft.PremiumHabits[habitID] = !b.draft.PremiumHabits[habitID]
	return nil
}

// SetCategory sets a category's draft state directly, honoring the
// auto-completed lock. Used by form-style consumers that replace the
// whole selection at once.
func (b *BatchEdit) SetCategory(categoryID string, done bool) error {
	cat, ok := b.engine.cat.Category(categoryID)
	if !ok {
		return fmt.Errorf("%w: %q", catalog.ErrUnknownCategory, categoryID)
	}
	if !done && b.satisfied[categoryID] {
		return fmt.Errorf("%s: %w", cat.Label, ErrAutoCompleted)
	}
	b.draft.CategoryProgress[categoryID] = done
	return nil
}

// SetPremium sets a premium habit's draft state directly.
func (b *BatchEdit) SetPremium(habitID string, done bool) error {
	if _, ok := b.engine.cat.Premium(habitID); !ok {
		return fmt.Errorf("%w: %q", catalog.ErrUnknownPremiumHabit, habitID)
	}
	b.draft.PremiumHabits[habitID] = done
	return nil
}

// SelectAllRequired marks every category required on the draft's day,
// leaving optional categories and premium habits untouched.
func (b *BatchEdit) SelectAllRequired() error {
	day, err := dates.ParseDayKey(b.date)
	if err != nil {
		return err
	}
	for _, cat := range b.engine.cat.RequiredCategories(day) {
		b.draft.CategoryProgress[cat.ID] = true
	}
	return nil
}

// ClearAll resets the draft's category progress to exactly the
// auto-satisfied set and clears every premium habit. Activity-derived
// marks survive: with activities logged, a cleared day is never empty.
func (b *BatchEdit) ClearAll() {
	progress := make(map[string]bool, len(b.engine.cat.Categories))
	for _, cat := range b.engine.cat.Categories {
		progress[cat.ID] = b.satisfied[cat.ID]
	}
	b.draft.CategoryProgress = progress
	b.draft.PremiumHabits = make(map[string]bool)
}

// Save recomputes the derived fields from the draft and replaces the
// stored record in a single write.
func (b *BatchEdit) Save() (models.DailyHabit, error) {
	if b.done {
		return models.DailyHabit{}, fmt.Errorf("batch edit for %s already finished", b.date)
	}

	day, err := dates.ParseDayKey(b.date)
	if err != nil {
		return models.DailyHabit{}, err
	}

	habit := b.draft.Clone()
	b.engine.compute(&habit, day)

	if err := b.engine.store.SaveDailyHabit(habit); err != nil {
		return models.DailyHabit{}, fmt.Errorf("failed to persist daily habit: %w", err)
	}
	b.done = true
	logger.Debug("saved batch edit", "date", b.date,
		"completed", habit.CompletedCategories, "points", habit.TotalPoints)

	return habit, nil
}

// Cancel discards the draft. The stored record was never touched.
func (b *BatchEdit) Cancel() {
	b.done = true
}
