package cli

import (
	"fmt"

	"github.com/habita-dev/habita/internal/dates"
)

type DayCmd struct {
	Date string `arg:"" help:"Date to show (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := parseDay(c.Date)
	if err != nil {
		return err
	}
	date := dates.DayKey(day)

	habit, _, err := ctx.Engine.Reconcile(date)
	if err != nil {
		return err
	}

	fmt.Println(formatDayHeading(date, day))
	fmt.Println()

	for _, cat := range ctx.Catalog.Categories {
		line := fmt.Sprintf("  %s %-10s %d pts", checkbox(habit.CategoryProgress[cat.ID]), cat.Label, cat.Points)
		if !ctx.Catalog.IsRequired(cat.ID, day) {
			line += lockedStyle.Render("  (optional today)")
		}
		fmt.Println(line)
	}

	if len(ctx.Catalog.PremiumHabits) > 0 {
		fmt.Println()
		for _, p := range ctx.Catalog.PremiumHabits {
			fmt.Printf("  %s %s %-10s %d pts\n", checkbox(habit.PremiumHabits[p.ID]), p.Icon, p.Label, p.Points)
		}
	}

	fmt.Println()
	required := ctx.Catalog.RequiredCount(day)
	fmt.Printf("  %d/%d habits  %s", habit.CompletedCategories, required, formatPoints(habit.TotalPoints))
	if habit.BonusEarned {
		fmt.Printf("  %s", bonusStyle.Render(fmt.Sprintf("🎉 daily bonus +%d", ctx.Catalog.Bonuses.DailyComplete)))
	}
	fmt.Println()

	completed, err := ctx.Ledger.CompletedOn(date)
	if err != nil {
		return err
	}
	if len(completed) > 0 {
		fmt.Println()
		fmt.Println(titleStyle.Render("Activities"))
		for _, a := range completed {
			fmt.Println(formatActivityLine(a))
		}
	}

	return nil
}
