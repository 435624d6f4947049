package cli

import (
	"fmt"
	"time"

	"github.com/habita-dev/habita/internal/dates"
	"github.com/habita-dev/habita/internal/models"
)

type LogCmd struct {
	Text     string `arg:"" help:"What you did."`
	Category string `short:"c" help:"Category id (personal|work|freelance|social|health|other)." required:""`
	Date     string `short:"d" help:"Target date (YYYY-MM-DD). Past dates backdate, future dates plan." default:"today"`
}

func (c *LogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	now := time.Now()
	var target *time.Time
	if c.Date != "" && c.Date != "today" {
		day, err := parseDay(c.Date)
		if err != nil {
			return err
		}
		target = &day
	}

	activity, err := ctx.Ledger.Log(c.Text, c.Category, target, now)
	if err != nil {
		return err
	}

	switch activity.Status {
	case models.StatusPlanned:
		fmt.Printf("Planned for %s: %s (ID: %s)\n", activity.AttributionDay(), activity.Text, activity.ID)
	default:
		fmt.Printf("Logged: %s (+%d pts, ID: %s)\n", activity.Text, activity.Points, activity.ID)
		if activity.AttributionDay() != dates.DayKey(now) {
			fmt.Printf("  Backdated to %s\n", activity.AttributionDay())
		}
	}

	return nil
}
