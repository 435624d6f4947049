package cli

import (
	"fmt"
	"time"

	"github.com/habita-dev/habita/internal/streaks"
)

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllDailyHabits()
	if err != nil {
		return err
	}

	s := streaks.Calc(habits, ctx.Catalog, time.Now())

	fmt.Println(titleStyle.Render("Streaks"))
	fmt.Println()
	fmt.Printf("  Current streak: %s\n", bonusStyle.Render(fmt.Sprintf("%d days 🔥", s.CurrentStreak)))
	fmt.Printf("  Longest streak: %d days\n", s.LongestStreak)
	fmt.Printf("  Bonus days:     %d total, %d this week, %d this month\n",
		s.TotalBonusDays, s.WeeklyBonusDays, s.MonthlyBonusDays)

	if s.WeeklyBonusEarned {
		fmt.Println(doneStyle.Render(fmt.Sprintf("  Weekly bonus earned (+%d pts)", ctx.Catalog.Bonuses.WeeklyComplete)))
	}
	if s.MonthlyBonusEarned {
		fmt.Println(doneStyle.Render(fmt.Sprintf("  Monthly bonus earned (+%d pts)", ctx.Catalog.Bonuses.MonthlyComplete)))
	}

	if m := s.NextMilestone; m != nil {
		fmt.Println()
		switch m.Type {
		case streaks.MilestoneStreak:
			fmt.Printf("  Next milestone: %d-day streak (%d/%d, +%d pts)\n", m.Target, m.Current, m.Target, m.Bonus)
		case streaks.MilestoneWeekly:
			fmt.Printf("  Next milestone: %d bonus days this week (%d/%d, +%d pts)\n", m.Target, m.Current, m.Target, m.Bonus)
		case streaks.MilestoneMonthly:
			fmt.Printf("  Next milestone: %d bonus days this month (%d/%d, +%d pts)\n", m.Target, m.Current, m.Target, m.Bonus)
		}
	}

	return nil
}
