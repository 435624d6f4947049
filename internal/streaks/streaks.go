// Package streaks computes streaks and milestone progress from the daily
// habit history. Everything here is a read-only scan; nothing writes.
package streaks

import (
	"sort"
	"time"

	"github.com/habita-dev/habita/internal/catalog"
	"github.com/habita-dev/habita/internal/dates"
	"github.com/habita-dev/habita/internal/models"
)

// maxLookback bounds the backward scan for the current streak so a long
// history never turns a render into unbounded work.
const maxLookback = 100

type MilestoneType string

const (
	MilestoneStreak  MilestoneType = "streak"
	MilestoneWeekly  MilestoneType = "weekly"
	MilestoneMonthly MilestoneType = "monthly"
)

// Milestone is the next unearned threshold and its bonus reward.
type Milestone struct {
	Type    MilestoneType
	Target  int
	Current int
	Bonus   int
}

// Stats is the full streak/milestone snapshot for "now".
type Stats struct {
	CurrentStreak      int
	LongestStreak      int
	TotalBonusDays     int
	WeeklyBonusDays    int
	MonthlyBonusDays   int
	WeeklyBonusEarned  bool
	MonthlyBonusEarned bool
	NextMilestone      *Milestone
}

// Calc scans the habit history and returns the streak stats as of now.
// A day counts toward a streak when its completed required-category count
// meets that day's requirement; the requirement is per-date because
// weekends need fewer categories.
func Calc(habits []models.DailyHabit, cat *catalog.Catalog, now time.Time) Stats {
	byDate := make(map[string]models.DailyHabit, len(habits))
	for _, h := range habits {
		byDate[h.Date] = h
	}

	dayComplete := func(day time.Time) bool {
		h, ok := byDate[dates.DayKey(day)]
		if !ok {
			return false
		}
		return h.CompletedCategories >= cat.RequiredCount(day)
	}

	var stats Stats

	// Current streak: today counts when already complete; otherwise the
	// run may still be alive ending yesterday.
	day := now
	if dayComplete(day) {
		stats.CurrentStreak = 1
	}
	day = day.AddDate(0, 0, -1)
	for i := 0; i < maxLookback; i++ {
		if !dayComplete(day) {
			break
		}
		stats.CurrentStreak++
		day = day.AddDate(0, 0, -1)
	}

	// Longest streak: runs of consecutive dates over the full history.
	var completeDates []string
	for _, h := range habits {
		d, err := dates.ParseDayKey(h.Date)
		if err != nil {
			continue
		}
		if h.CompletedCategories >= cat.RequiredCount(d) {
			completeDates = append(completeDates, h.Date)
		}
	}
	sort.Strings(completeDates)

	run := 0
	for i, date := range completeDates {
		if i == 0 {
			run = 1
		} else if diff, err := dates.DaysBetween(completeDates[i-1], date); err == nil && diff == 1 {
			run++
		} else {
			run = 1
		}
		if run > stats.LongestStreak {
			stats.LongestStreak = run
		}
	}

	todayKey := dates.DayKey(now)
	weekStartKey := dates.DayKey(dates.WeekStart(now))
	monthKey := dates.MonthKey(now)

	for _, h := range habits {
		if !h.BonusEarned {
			continue
		}
		stats.TotalBonusDays++
		if h.Date >= weekStartKey && h.Date <= todayKey {
			stats.WeeklyBonusDays++
		}
		if len(h.Date) >= len(monthKey) && h.Date[:len(monthKey)] == monthKey && h.Date <= todayKey {
			stats.MonthlyBonusDays++
		}
	}

	stats.WeeklyBonusEarned = stats.WeeklyBonusDays >= 5
	stats.MonthlyBonusEarned = stats.MonthlyBonusDays >= 20

	stats.NextMilestone = nextMilestone(stats, cat.Bonuses)
	return stats
}

// nextMilestone picks the first unmet threshold: streaks of 3, 7 and 30
// days, then the weekly and monthly bonus-day targets. Nil when all are
// satisfied.
func nextMilestone(s Stats, b catalog.Bonuses) *Milestone {
	switch {
	case s.CurrentStreak < 3:
		return &Milestone{Type: MilestoneStreak, Target: 3, Current: s.CurrentStreak, Bonus: b.Streak3Days}
	case s.CurrentStreak < 7:
		return &Milestone{Type: MilestoneStreak, Target: 7, Current: s.CurrentStreak, Bonus: b.Streak7Days}
	case s.CurrentStreak < 30:
		return &Milestone{Type: MilestoneStreak, Target: 30, Current: s.CurrentStreak, Bonus: b.Streak30Days}
	case !s.WeeklyBonusEarned:
		return &Milestone{Type: MilestoneWeekly, Target: 5, Current: s.WeeklyBonusDays, Bonus: b.WeeklyComplete}
	case !s.MonthlyBonusEarned:
		return &Milestone{Type: MilestoneMonthly, Target: 20, Current: s.MonthlyBonusDays, Bonus: b.MonthlyComplete}
	}
	return nil
}
