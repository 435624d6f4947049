package cli

import (
	"fmt"

	"github.com/habita-dev/habita/internal/dates"
)

type ListCmd struct {
	Date string `arg:"" help:"Date to list (YYYY-MM-DD or 'today')." default:"today"`
	All  bool   `help:"List every activity in the ledger, including cancelled ones."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if c.All {
		activities, err := ctx.Store.GetAllActivities()
		if err != nil {
			return err
		}
		if len(activities) == 0 {
			fmt.Println("No activities found")
			return nil
		}
		for _, a := range activities {
			fmt.Printf("  [%s] %s  %s (%s, %d pts, ID: %s)\n",
				a.Status, a.AttributionDay(), a.Text, a.Category, a.Points, a.ID)
		}
		return nil
	}

	day, err := parseDay(c.Date)
	if err != nil {
		return err
	}
	date := dates.DayKey(day)

	completed, err := ctx.Ledger.CompletedOn(date)
	if err != nil {
		return err
	}
	planned, err := ctx.Ledger.PlannedOn(date)
	if err != nil {
		return err
	}

	if len(completed) == 0 && len(planned) == 0 {
		fmt.Printf("No activities for %s\n", date)
		return nil
	}

	fmt.Println(formatDayHeading(date, day))
	for _, a := range completed {
		fmt.Println(formatActivityLine(a))
	}
	for _, a := range planned {
		fmt.Printf("  · planned  %s (%s, ID: %s)\n", a.Text, a.Category, a.ID)
	}

	return nil
}
