package cli

import (
	"fmt"

	"github.com/habita-dev/habita/internal/models"
	"github.com/habita-dev/habita/internal/stats"
)

type StatsCmd struct {
	Week  StatsWeekCmd  `cmd:"" help:"Weekly breakdown." default:"1"`
	Month StatsMonthCmd `cmd:"" help:"Monthly breakdown."`
}

func loadStatsInput(ctx *Context) ([]models.Activity, []models.DailyHabit, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, nil, err
	}
	activities, err := ctx.Store.GetAllActivities()
	if err != nil {
		return nil, nil, err
	}
	habits, err := ctx.Store.GetAllDailyHabits()
	if err != nil {
		return nil, nil, err
	}
	return activities, habits, nil
}

type StatsWeekCmd struct {
	Date string `short:"d" help:"Any date inside the week to show." default:"today"`
}

func (c *StatsWeekCmd) Run(ctx *Context) error {
	activities, habits, err := loadStatsInput(ctx)
	if err != nil {
		return err
	}

	anchor, err := parseDay(c.Date)
	if err != nil {
		return err
	}

	week := stats.Week(activities, habits, ctx.Catalog, anchor)

	fmt.Println(titleStyle.Render(fmt.Sprintf("Week %s – %s", week.Start, week.End)))
	fmt.Println()
	for _, row := range week.Days {
		marker := " "
		if row.Complete {
			marker = doneStyle.Render("✓")
		}
		fmt.Printf("  %s %-9s %s  %3d pts  %d activities\n",
			marker, row.Weekday, row.Date, row.TotalPoints, row.Activities)
	}
	fmt.Println()
	fmt.Printf("  Total: %s  %d activities\n", formatPoints(week.TotalPoints), week.TotalActivities)
	fmt.Printf("  Complete days: %d/7  Active days: %d/7  Avg: %.1f pts/day\n",
		week.CompleteDays, week.ActiveDays, week.AvgPointsPerDay)

	return nil
}

type StatsMonthCmd struct {
	Date string `short:"d" help:"Any date inside the month to show." default:"today"`
}

func (c *StatsMonthCmd) Run(ctx *Context) error {
	activities, habits, err := loadStatsInput(ctx)
	if err != nil {
		return err
	}

	anchor, err := parseDay(c.Date)
	if err != nil {
		return err
	}

	month := stats.Month(activities, habits, ctx.Catalog, anchor)

	fmt.Println(titleStyle.Render("Month " + month.Month))
	fmt.Println()
	fmt.Printf("  Total: %s  %d activities\n", formatPoints(month.TotalPoints), month.TotalActivities)
	fmt.Printf("  Complete days: %d  Active days: %d (%.0f%%)  Avg: %.1f pts/day\n",
		month.CompleteDays, month.ActiveDays, month.CompletionRate, month.AvgPointsPerDay)

	fmt.Println()
	fmt.Println(titleStyle.Render("Categories"))
	for _, cat := range month.Categories {
		if cat.Points == 0 && cat.Activities == 0 {
			continue
		}
		fmt.Printf("  %-10s %4d pts  %d activities\n", cat.Label, cat.Points, cat.Activities)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Weeks"))
	for _, week := range month.Weeks {
		marker := " "
		if week.Index == month.BestWeek && week.Points > 0 {
			marker = bonusStyle.Render("★")
		}
		fmt.Printf("  %s %s – %s  %4d pts  %d active, %d perfect\n",
			marker, week.Start, week.End, week.Points, week.ActiveDays, week.PerfectDays)
	}

	return nil
}
