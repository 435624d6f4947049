package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/habita-dev/habita/internal/models"
)

func newTestProviders(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()
	return map[string]Provider{
		"json":   NewJSONStore(filepath.Join(dir, "habita.json")),
		"sqlite": NewSQLiteStore(filepath.Join(dir, "habita.db")),
	}
}

func testActivity(id string) models.Activity {
	return models.Activity{
		ID:        id,
		Text:      "Morning run",
		Category:  "health",
		Timestamp: time.Date(2025, 12, 30, 7, 30, 0, 0, time.Local),
		Points:    20,
		Status:    models.StatusCompleted,
	}
}

func TestProvider_ActivityLifecycle(t *testing.T) {
	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			a := testActivity("act-1")
			if err := store.AddActivity(a); err != nil {
				t.Fatalf("AddActivity failed: %v", err)
			}

			got, err := store.GetActivity("act-1")
			if err != nil {
				t.Fatalf("GetActivity failed: %v", err)
			}
			if got.Text != a.Text || got.Category != a.Category || got.Points != a.Points {
				t.Errorf("GetActivity = %+v, want %+v", got, a)
			}
			if got.Status != models.StatusCompleted {
				t.Errorf("status = %s, want completed", got.Status)
			}
			if got.AttributionDay() != "2025-12-30" {
				t.Errorf("attribution day = %s, want 2025-12-30", got.AttributionDay())
			}

			got.Status = models.StatusCancelled
			if err := store.UpdateActivity(got); err != nil {
				t.Fatalf("UpdateActivity failed: %v", err)
			}
			updated, err := store.GetActivity("act-1")
			if err != nil {
				t.Fatalf("GetActivity after update failed: %v", err)
			}
			if updated.Status != models.StatusCancelled {
				t.Errorf("status after update = %s, want cancelled", updated.Status)
			}

			all, err := store.GetAllActivities()
			if err != nil {
				t.Fatalf("GetAllActivities failed: %v", err)
			}
			if len(all) != 1 {
				t.Errorf("GetAllActivities returned %d items, want 1", len(all))
			}
		})
	}
}

func TestProvider_NotFound(t *testing.T) {
	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			if _, err := store.GetActivity("missing"); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetActivity(missing) = %v, want ErrNotFound", err)
			}
			if _, err := store.GetDailyHabit("2025-01-01"); !errors.Is(err, ErrNotFound) {
				t.Errorf("GetDailyHabit(missing) = %v, want ErrNotFound", err)
			}
			if err := store.UpdateActivity(testActivity("missing")); !errors.Is(err, ErrNotFound) {
				t.Errorf("UpdateActivity(missing) = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestProvider_PlannedDateSurvives(t *testing.T) {
	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			planned := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
			a := testActivity("act-planned")
			a.Status = models.StatusPlanned
			a.PlannedDate = &planned

			if err := store.AddActivity(a); err != nil {
				t.Fatalf("AddActivity failed: %v", err)
			}
			got, err := store.GetActivity("act-planned")
			if err != nil {
				t.Fatalf("GetActivity failed: %v", err)
			}
			if got.PlannedDate == nil {
				t.Fatal("planned date lost")
			}
			if got.AttributionDay() != "2026-01-05" {
				t.Errorf("attribution day = %s, want 2026-01-05", got.AttributionDay())
			}
		})
	}
}

func TestProvider_DailyHabitUpsert(t *testing.T) {
	for name, store := range newTestProviders(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Init(); err != nil {
				t.Fatalf("Init failed: %v", err)
			}
			defer store.Close()

			habit := models.NewDailyHabit("2025-12-30")
			habit.CategoryProgress["health"] = true
			habit.CompletedCategories = 1
			habit.TotalPoints = 20
			if err := store.SaveDailyHabit(habit); err != nil {
				t.Fatalf("SaveDailyHabit failed: %v", err)
			}

			habit.CategoryProgress["personal"] = true
			habit.PremiumHabits["workout"] = true
			habit.CompletedCategories = 2
			habit.TotalPoints = 55
			if err := store.SaveDailyHabit(habit); err != nil {
				t.Fatalf("SaveDailyHabit upsert failed: %v", err)
			}

			got, err := store.GetDailyHabit("2025-12-30")
			if err != nil {
				t.Fatalf("GetDailyHabit failed: %v", err)
			}
			if got.CompletedCategories != 2 || got.TotalPoints != 55 {
				t.Errorf("upserted habit = %+v", got)
			}
			if !got.CategoryProgress["health"] || !got.CategoryProgress["personal"] {
				t.Error("category progress lost in upsert")
			}
			if !got.PremiumHabits["workout"] {
				t.Error("premium habits lost in upsert")
			}

			all, err := store.GetAllDailyHabits()
			if err != nil {
				t.Fatalf("GetAllDailyHabits failed: %v", err)
			}
			if len(all) != 1 {
				t.Errorf("GetAllDailyHabits returned %d records, want 1", len(all))
			}
		})
	}
}

func TestJSONStore_LoadBeforeInitFails(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "habita.json"))
	if err := store.Load(); err == nil {
		t.Error("Load before Init succeeded, want error")
	}
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "habita.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("second Init succeeded, want error")
	}
}

func TestSQLiteStore_LoadAfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "habita.db")

	store := NewSQLiteStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.AddActivity(testActivity("act-1")); err != nil {
		t.Fatalf("AddActivity failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewSQLiteStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	if _, err := reopened.GetActivity("act-1"); err != nil {
		t.Errorf("activity lost across reopen: %v", err)
	}
}
