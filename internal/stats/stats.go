// Package stats rolls activities and habit history up into day, week and
// month summaries for display. Read-only: it never mutates the store.
package stats

import (
	"time"

	"github.com/habita-dev/habita/internal/catalog"
	"github.com/habita-dev/habita/internal/dates"
	"github.com/habita-dev/habita/internal/models"
)

// CategoryBreakdown is one category's contribution to a summary.
type CategoryBreakdown struct {
	ID         string
	Label      string
	Points     int
	Activities int
	HabitDone  bool
}

// DaySummary is the rollup for a single day.
type DaySummary struct {
	Date                string
	TotalPoints         int // activity points + habit record points
	ActivityPoints      int
	HabitPoints         int
	TotalActivities     int
	CompletedCategories int
	RequiredCategories  int
	BonusEarned         bool
	Categories          []CategoryBreakdown
}

// DayRow is one day inside a week summary.
type DayRow struct {
	Date                string
	Weekday             time.Weekday
	TotalPoints         int
	Activities          int
	CompletedCategories int
	BonusEarned         bool
	Complete            bool
}

// WeekSummary is the rollup for a Monday-start week.
type WeekSummary struct {
	Start           string
	End             string
	Days            []DayRow
	TotalPoints     int
	TotalActivities int
	CompleteDays    int
	ActiveDays      int
	AvgPointsPerDay float64
}

// WeekRollup is one week inside a month summary.
type WeekRollup struct {
	Index        int
	Start        string
	End          string
	Points       int
	ActiveDays   int
	PerfectDays  int
	PremiumCount int
}

// MonthSummary is the rollup for a calendar month.
type MonthSummary struct {
	Month           string
	TotalPoints     int
	TotalActivities int
	CompleteDays    int
	ActiveDays      int
	AvgPointsPerDay float64
	CompletionRate  float64
	Categories      []CategoryBreakdown
	Weeks           []WeekRollup
	BestWeek        int // index into Weeks; ties go to the earliest week
}

func completedOn(activities []models.Activity, date string) []models.Activity {
	var result []models.Activity
	for _, a := range activities {
		if a.Status == models.StatusCompleted && a.AttributionDay() == date {
			result = append(result, a)
		}
	}
	return result
}

func habitsByDate(habits []models.DailyHabit) map[string]models.DailyHabit {
	byDate := make(map[string]models.DailyHabit, len(habits))
	for _, h := range habits {
		byDate[h.Date] = h
	}
	return byDate
}

// Day summarizes a single day: activity points plus the habit record's
// total, with a per-category breakdown.
func Day(activities []models.Activity, habits []models.DailyHabit, cat *catalog.Catalog, day time.Time) DaySummary {
	date := dates.DayKey(day)
	dayActivities := completedOn(activities, date)
	habit, hasHabit := habitsByDate(habits)[date]

	summary := DaySummary{
		Date:               date,
		TotalActivities:    len(dayActivities),
		RequiredCategories: cat.RequiredCount(day),
	}
	for _, a := range dayActivities {
		summary.ActivityPoints += a.Points
	}
	if hasHabit {
		summary.HabitPoints = habit.TotalPoints
		summary.CompletedCategories = habit.CompletedCategories
		summary.BonusEarned = habit.BonusEarned
	}
	summary.TotalPoints = summary.ActivityPoints + summary.HabitPoints

	for _, c := range cat.Categories {
		breakdown := CategoryBreakdown{ID: c.ID, Label: c.Label}
		for _, a := range dayActivities {
			if a.Category == c.ID {
				breakdown.Activities++
				breakdown.Points += a.Points
			}
		}
		if hasHabit && habit.CategoryProgress[c.ID] {
			breakdown.HabitDone = true
			breakdown.Points += c.Points
		}
		summary.Categories = append(summary.Categories, breakdown)
	}

	return summary
}

// Week summarizes the Monday-start week containing anchor.
func Week(activities []models.Activity, habits []models.DailyHabit, cat *catalog.Catalog, anchor time.Time) WeekSummary {
	start := dates.WeekStart(anchor)
	byDate := habitsByDate(habits)

	summary := WeekSummary{
		Start: dates.DayKey(start),
		End:   dates.DayKey(start.AddDate(0, 0, 6)),
	}

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		date := dates.DayKey(day)
		dayActivities := completedOn(activities, date)
		habit, hasHabit := byDate[date]

		row := DayRow{
			Date:       date,
			Weekday:    day.Weekday(),
			Activities: len(dayActivities),
		}
		for _, a := range dayActivities {
			row.TotalPoints += a.Points
		}
		if hasHabit {
			row.TotalPoints += habit.TotalPoints
			row.CompletedCategories = habit.CompletedCategories
			row.BonusEarned = habit.BonusEarned
			row.Complete = habit.CompletedCategories >= cat.RequiredCount(day)
		}

		summary.TotalPoints += row.TotalPoints
		summary.TotalActivities += row.Activities
		if row.Complete {
			summary.CompleteDays++
		}
		if row.Activities > 0 || row.CompletedCategories > 0 {
			summary.ActiveDays++
		}
		summary.Days = append(summary.Days, row)
	}

	summary.AvgPointsPerDay = float64(summary.TotalPoints) / 7
	return summary
}

// Month summarizes the calendar month containing anchor: totals, category
// distribution and per-week rollups with a best-week pick. Weeks are
// clipped to the month; the best week is the first one with the strictly
// highest point total, so earlier weeks win ties.
func Month(activities []models.Activity, habits []models.DailyHabit, cat *catalog.Catalog, anchor time.Time) MonthSummary {
	monthStart := dates.MonthStart(anchor)
	daysInMonth := dates.DaysInMonth(anchor)
	monthEndKey := dates.DayKey(monthStart.AddDate(0, 0, daysInMonth-1))
	monthStartKey := dates.DayKey(monthStart)

	summary := MonthSummary{
		Month:    dates.MonthKey(anchor),
		BestWeek: -1,
	}

	inMonth := func(date string) bool {
		return date >= monthStartKey && date <= monthEndKey
	}

	activeDays := make(map[string]struct{})

	for _, a := range activities {
		if a.Status != models.StatusCompleted {
			continue
		}
		day := a.AttributionDay()
		if !inMonth(day) {
			continue
		}
		summary.TotalActivities++
		summary.TotalPoints += a.Points
		activeDays[day] = struct{}{}
	}

	for _, h := range habits {
		if !inMonth(h.Date) {
			continue
		}
		summary.TotalPoints += h.TotalPoints
		if h.CompletedCategories > 0 {
			activeDays[h.Date] = struct{}{}
		}
		if day, err := dates.ParseDayKey(h.Date); err == nil {
			if h.CompletedCategories >= cat.RequiredCount(day) {
				summary.CompleteDays++
			}
		}
	}

	summary.ActiveDays = len(activeDays)
	summary.AvgPointsPerDay = float64(summary.TotalPoints) / float64(daysInMonth)
	summary.CompletionRate = float64(summary.ActiveDays) / float64(daysInMonth) * 100

	for _, c := range cat.Categories {
		breakdown := CategoryBreakdown{ID: c.ID, Label: c.Label}
		for _, a := range activities {
			if a.Status == models.StatusCompleted && a.Category == c.ID && inMonth(a.AttributionDay()) {
				breakdown.Activities++
				breakdown.Points += a.Points
			}
		}
		for _, h := range habits {
			if inMonth(h.Date) && h.CategoryProgress[c.ID] {
				breakdown.HabitDone = true
				breakdown.Points += c.Points
			}
		}
		summary.Categories = append(summary.Categories, breakdown)
	}

	// Per-week rollups, clipped to the month.
	weekStart := dates.WeekStart(monthStart)
	index := 0
	for dates.DayKey(weekStart) <= monthEndKey {
		startKey := dates.DayKey(weekStart)
		endKey := dates.DayKey(weekStart.AddDate(0, 0, 6))
		if startKey < monthStartKey {
			startKey = monthStartKey
		}
		if endKey > monthEndKey {
			endKey = monthEndKey
		}

		rollup := WeekRollup{Index: index, Start: startKey, End: endKey}
		weekActive := make(map[string]struct{})

		for _, a := range activities {
			if a.Status != models.StatusCompleted {
				continue
			}
			day := a.AttributionDay()
			if day < startKey || day > endKey {
				continue
			}
			rollup.Points += a.Points
			weekActive[day] = struct{}{}
		}
		for _, h := range habits {
			if h.Date < startKey || h.Date > endKey {
				continue
			}
			rollup.Points += h.TotalPoints
			if h.CompletedCategories > 0 {
				weekActive[h.Date] = struct{}{}
			}
			if day, err := dates.ParseDayKey(h.Date); err == nil {
				if h.CompletedCategories >= cat.RequiredCount(day) {
					rollup.PerfectDays++
				}
			}
			for _, done := range h.PremiumHabits {
				if done {
					rollup.PremiumCount++
				}
			}
		}
		rollup.ActiveDays = len(weekActive)

		if summary.BestWeek < 0 || rollup.Points > summary.Weeks[summary.BestWeek].Points {
			summary.BestWeek = index
		}
		summary.Weeks = append(summary.Weeks, rollup)

		weekStart = weekStart.AddDate(0, 0, 7)
		index++
	}

	return summary
}
