package ledger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/habita-dev/habita/internal/catalog"
	"github.com/habita-dev/habita/internal/dates"
	"github.com/habita-dev/habita/internal/engine"
	"github.com/habita-dev/habita/internal/models"
	"github.com/habita-dev/habita/internal/storage"
)

func newTestLedger(t *testing.T) (*Ledger, storage.Provider) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "habita.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("store init failed: %v", err)
	}
	cat := catalog.Default()
	return New(store, cat, engine.New(store, cat)), store
}

func TestLog_CompletesNowAndReconciles(t *testing.T) {
	ledger, store := newTestLedger(t)
	now := time.Now()

	activity, err := ledger.Log("Morning run", "health", nil, now)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if activity.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", activity.Status)
	}
	if activity.Points != 20 {
		t.Errorf("points = %d, want 20 from the health category", activity.Points)
	}
	if activity.ID == "" {
		t.Error("activity has no ID")
	}

	habit, err := store.GetDailyHabit(dates.DayKey(now))
	if err != nil {
		t.Fatalf("habit record missing after log: %v", err)
	}
	if !habit.CategoryProgress["health"] {
		t.Error("health not marked after logging a health activity")
	}
}

func TestLog_FutureDatePlans(t *testing.T) {
	ledger, store := newTestLedger(t)
	now := time.Now()
	future := now.AddDate(0, 0, 3)

	activity, err := ledger.Log("Dentist", "health", &future, now)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if activity.Status != models.StatusPlanned {
		t.Errorf("status = %s, want planned", activity.Status)
	}
	if activity.AttributionDay() != dates.DayKey(future) {
		t.Errorf("attribution day = %s, want %s", activity.AttributionDay(), dates.DayKey(future))
	}

	// Planned activities never touch the habit record.
	if _, err := store.GetDailyHabit(dates.DayKey(future)); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("habit record exists for a planned-only day: %v", err)
	}
}

func TestLog_PastDateBackdates(t *testing.T) {
	ledger, store := newTestLedger(t)
	now := time.Now()
	past := now.AddDate(0, 0, -2)

	activity, err := ledger.Log("Forgot to log this", "personal", &past, now)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if activity.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", activity.Status)
	}
	if activity.AttributionDay() != dates.DayKey(past) {
		t.Errorf("attribution day = %s, want %s", activity.AttributionDay(), dates.DayKey(past))
	}

	habit, err := store.GetDailyHabit(dates.DayKey(past))
	if err != nil {
		t.Fatalf("habit record missing for backdated day: %v", err)
	}
	if !habit.CategoryProgress["personal"] {
		t.Error("personal not marked on the backdated day")
	}
	if _, err := store.GetDailyHabit(dates.DayKey(now)); !errors.Is(err, storage.ErrNotFound) {
		t.Error("backdated log created a habit record for today")
	}
}

func TestLog_UnknownCategory(t *testing.T) {
	ledger, _ := newTestLedger(t)

	if _, err := ledger.Log("x", "gardening", nil, time.Now()); !errors.Is(err, catalog.ErrUnknownCategory) {
		t.Errorf("Log with unknown category = %v, want ErrUnknownCategory", err)
	}
}

func TestComplete_PlannedActivity(t *testing.T) {
	ledger, store := newTestLedger(t)
	now := time.Now()
	future := now.AddDate(0, 0, 3)

	planned, err := ledger.Log("Dentist", "health", &future, now)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	completed, err := ledger.Complete(planned.ID, now)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if completed.Status != models.StatusCompleted {
		t.Errorf("status = %s, want completed", completed.Status)
	}
	// Completion attributes to the completion day, not the planned day.
	if completed.AttributionDay() != dates.DayKey(now) {
		t.Errorf("attribution day = %s, want today", completed.AttributionDay())
	}

	habit, err := store.GetDailyHabit(dates.DayKey(now))
	if err != nil {
		t.Fatalf("habit record missing after completion: %v", err)
	}
	if !habit.CategoryProgress["health"] {
		t.Error("health not marked after completing the planned activity")
	}

	if _, err := ledger.Complete(planned.ID, now); err == nil {
		t.Error("completing an already-completed activity succeeded")
	}
}

func TestCancel_PlannedActivity(t *testing.T) {
	ledger, _ := newTestLedger(t)
	now := time.Now()
	future := now.AddDate(0, 0, 3)

	planned, err := ledger.Log("Dentist", "health", &future, now)
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	cancelled, err := ledger.Cancel(planned.ID)
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("status = %s, want cancelled", cancelled.Status)
	}

	if _, err := ledger.Cancel(planned.ID); err == nil {
		t.Error("cancelling a cancelled activity succeeded")
	}
	if _, err := ledger.Complete(planned.ID, now); err == nil {
		t.Error("completing a cancelled activity succeeded")
	}
}

func TestCompletedOnAndPlannedOn(t *testing.T) {
	ledger, _ := newTestLedger(t)
	now := time.Now()
	future := now.AddDate(0, 0, 1)
	today := dates.DayKey(now)

	if _, err := ledger.Log("Run", "health", nil, now); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if _, err := ledger.Log("Read", "personal", nil, now); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if _, err := ledger.Log("Call", "social", &future, now); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	completed, err := ledger.CompletedOn(today)
	if err != nil {
		t.Fatalf("CompletedOn failed: %v", err)
	}
	if len(completed) != 2 {
		t.Errorf("CompletedOn(today) = %d activities, want 2", len(completed))
	}

	planned, err := ledger.PlannedOn(dates.DayKey(future))
	if err != nil {
		t.Fatalf("PlannedOn failed: %v", err)
	}
	if len(planned) != 1 {
		t.Errorf("PlannedOn(tomorrow) = %d activities, want 1", len(planned))
	}

	plannedToday, err := ledger.PlannedOn(today)
	if err != nil {
		t.Fatalf("PlannedOn failed: %v", err)
	}
	if len(plannedToday) != 0 {
		t.Errorf("PlannedOn(today) = %d activities, want 0", len(plannedToday))
	}
}
