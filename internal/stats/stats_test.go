package stats

import (
	"testing"
	"time"

	"github.com/habita-dev/habita/internal/catalog"
	"github.com/habita-dev/habita/internal/models"
)

var wednesday = time.Date(2025, 12, 31, 12, 0, 0, 0, time.Local)

func activityOn(date string, category string, points int) models.Activity {
	day, _ := time.ParseInLocation("2006-01-02", date, time.Local)
	return models.Activity{
		ID:        "act-" + date + "-" + category,
		Text:      "test",
		Category:  category,
		Timestamp: day.Add(10 * time.Hour),
		Points:    points,
		Status:    models.StatusCompleted,
	}
}

func habitOn(date string, completed, points int) models.DailyHabit {
	h := models.NewDailyHabit(date)
	h.CompletedCategories = completed
	h.TotalPoints = points
	return h
}

func TestDay_CombinesActivityAndHabitPoints(t *testing.T) {
	habit := habitOn("2025-12-30", 2, 30)
	habit.CategoryProgress["health"] = true
	habit.CategoryProgress["personal"] = true

	activities := []models.Activity{
		activityOn("2025-12-30", "health", 20),
		activityOn("2025-12-29", "health", 20), // other day, excluded
	}

	day, _ := time.ParseInLocation("2006-01-02", "2025-12-30", time.Local)
	summary := Day(activities, []models.DailyHabit{habit}, catalog.Default(), day)

	if summary.ActivityPoints != 20 {
		t.Errorf("activity points = %d, want 20", summary.ActivityPoints)
	}
	if summary.HabitPoints != 30 {
		t.Errorf("habit points = %d, want 30", summary.HabitPoints)
	}
	if summary.TotalPoints != 50 {
		t.Errorf("total points = %d, want 50", summary.TotalPoints)
	}
	if summary.TotalActivities != 1 {
		t.Errorf("activity count = %d, want 1", summary.TotalActivities)
	}
	if summary.RequiredCategories != 6 {
		t.Errorf("required categories = %d, want 6 on a Tuesday", summary.RequiredCategories)
	}

	var health CategoryBreakdown
	for _, c := range summary.Categories {
		if c.ID == "health" {
			health = c
		}
	}
	if !health.HabitDone || health.Activities != 1 {
		t.Errorf("health breakdown = %+v", health)
	}
	// 20 from the activity plus 20 for the checked category.
	if health.Points != 40 {
		t.Errorf("health points = %d, want 40", health.Points)
	}
}

func TestWeek_CountsCompleteAndActiveDays(t *testing.T) {
	habits := []models.DailyHabit{
		habitOn("2025-12-29", 6, 135),
		habitOn("2025-12-30", 6, 135),
		habitOn("2025-12-31", 2, 30),
	}
	activities := []models.Activity{
		activityOn("2025-12-30", "health", 20),
	}

	week := Week(activities, habits, catalog.Default(), wednesday)

	if week.Start != "2025-12-29" || week.End != "2026-01-04" {
		t.Errorf("week bounds = %s – %s", week.Start, week.End)
	}
	if len(week.Days) != 7 {
		t.Fatalf("week has %d day rows, want 7", len(week.Days))
	}
	if week.CompleteDays != 2 {
		t.Errorf("complete days = %d, want 2", week.CompleteDays)
	}
	if week.ActiveDays != 3 {
		t.Errorf("active days = %d, want 3", week.ActiveDays)
	}
	if week.TotalPoints != 135+135+30+20 {
		t.Errorf("total points = %d, want 320", week.TotalPoints)
	}
	if week.TotalActivities != 1 {
		t.Errorf("total activities = %d, want 1", week.TotalActivities)
	}

	tuesday := week.Days[1]
	if tuesday.Date != "2025-12-30" || !tuesday.Complete {
		t.Errorf("Tuesday row = %+v", tuesday)
	}
	if tuesday.TotalPoints != 155 {
		t.Errorf("Tuesday points = %d, want 155 (135 habit + 20 activity)", tuesday.TotalPoints)
	}
}

func TestMonth_Totals(t *testing.T) {
	habits := []models.DailyHabit{
		habitOn("2025-12-03", 6, 135),
		habitOn("2025-12-10", 2, 30),
		habitOn("2025-11-28", 6, 135), // previous month, excluded
	}
	activities := []models.Activity{
		activityOn("2025-12-03", "health", 20),
		activityOn("2025-12-15", "personal", 10),
		activityOn("2025-11-20", "health", 20), // previous month, excluded
	}

	month := Month(activities, habits, catalog.Default(), wednesday)

	if month.Month != "2025-12" {
		t.Errorf("month key = %s", month.Month)
	}
	if month.TotalPoints != 135+30+20+10 {
		t.Errorf("total points = %d, want 195", month.TotalPoints)
	}
	if month.TotalActivities != 2 {
		t.Errorf("total activities = %d, want 2", month.TotalActivities)
	}
	if month.CompleteDays != 1 {
		t.Errorf("complete days = %d, want 1", month.CompleteDays)
	}
	// Dec 3, 10 and 15 saw either activities or habit progress.
	if month.ActiveDays != 3 {
		t.Errorf("active days = %d, want 3", month.ActiveDays)
	}
	if len(month.Weeks) != 5 {
		t.Errorf("week rollups = %d, want 5 for December 2025", len(month.Weeks))
	}
}

func TestMonth_BestWeekFirstWinsTies(t *testing.T) {
	// Equal point totals in the first and second weeks of December;
	// the earlier week keeps the title.
	habits := []models.DailyHabit{
		habitOn("2025-12-03", 6, 100),
		habitOn("2025-12-10", 6, 100),
	}

	month := Month(nil, habits, catalog.Default(), wednesday)

	if month.BestWeek != 0 {
		t.Errorf("best week = %d, want 0 (first of the tied weeks)", month.BestWeek)
	}
	if month.Weeks[0].Points != 100 || month.Weeks[1].Points != 100 {
		t.Errorf("week points = %d and %d, want 100 each",
			month.Weeks[0].Points, month.Weeks[1].Points)
	}

	// A strictly higher later week does take over.
	habits = append(habits, habitOn("2025-12-11", 6, 50))
	month = Month(nil, habits, catalog.Default(), wednesday)
	if month.BestWeek != 1 {
		t.Errorf("best week = %d, want 1 after the second week pulls ahead", month.BestWeek)
	}
}

func TestMonth_EmptyHasNoBestWeek(t *testing.T) {
	month := Month(nil, nil, catalog.Default(), wednesday)

	if month.TotalPoints != 0 || month.ActiveDays != 0 {
		t.Errorf("empty month totals = %+v", month)
	}
	// Week rollups still exist; none of them has any points.
	for _, w := range month.Weeks {
		if w.Points != 0 {
			t.Errorf("empty month week %d has %d points", w.Index, w.Points)
		}
	}
}
