package cli

import (
	"fmt"

	"github.com/habita-dev/habita/internal/dates"
)

type ToggleCmd struct {
	Category string `arg:"" help:"Category id to toggle."`
	Date     string `short:"d" help:"Date to toggle on (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := parseDay(c.Date)
	if err != nil {
		return err
	}

	result, err := ctx.Engine.ToggleCategory(dates.DayKey(day), c.Category)
	if err != nil {
		return err
	}

	fmt.Println(formatNotice(result))
	fmt.Printf("  Day total: %s\n", formatPoints(result.Habit.TotalPoints))
	return nil
}

type PremiumCmd struct {
	Habit string `arg:"" help:"Premium habit id to toggle."`
	Date  string `short:"d" help:"Date to toggle on (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *PremiumCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := parseDay(c.Date)
	if err != nil {
		return err
	}

	result, err := ctx.Engine.TogglePremium(dates.DayKey(day), c.Habit)
	if err != nil {
		return err
	}

	if result.Completed {
		fmt.Println(doneStyle.Render(fmt.Sprintf("%s %s done (+%d pts)",
			result.Premium.Icon, result.Premium.Label, result.Premium.Points)))
	} else {
		fmt.Println(pendingStyle.Render(fmt.Sprintf("%s %s unmarked (-%d pts)",
			result.Premium.Icon, result.Premium.Label, result.Premium.Points)))
	}
	fmt.Printf("  Day total: %s\n", formatPoints(result.Habit.TotalPoints))
	return nil
}
