package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/habita-dev/habita/internal/dates"
)

type EditCmd struct {
	Date  string `short:"d" help:"Date to edit (YYYY-MM-DD or 'today')." default:"today"`
	All   bool   `help:"Mark every required category and save."`
	Clear bool   `help:"Reset the day to only activity-derived marks and save."`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	day, err := parseDay(c.Date)
	if err != nil {
		return err
	}
	date := dates.DayKey(day)

	batch, err := ctx.Engine.BeginBatchEdit(date)
	if err != nil {
		return err
	}

	if c.All {
		if err := batch.SelectAllRequired(); err != nil {
			return err
		}
		habit, err := batch.Save()
		if err != nil {
			return err
		}
		fmt.Printf("Marked all required categories for %s  %s\n", date, formatPoints(habit.TotalPoints))
		return nil
	}

	if c.Clear {
		batch.ClearAll()
		habit, err := batch.Save()
		if err != nil {
			return err
		}
		fmt.Printf("Cleared %s  %s\n", date, formatPoints(habit.TotalPoints))
		return nil
	}

	// Categories satisfied by activities are locked on; they are shown
	// outside the form instead of as toggleable options.
	var categoryOptions []huh.Option[string]
	var selected []string
	for _, cat := range ctx.Catalog.Categories {
		if batch.AutoSatisfied(cat.ID) {
			fmt.Printf("  %s %s %s\n", checkbox(true), cat.Label,
				lockedStyle.Render("(completed by activity)"))
			continue
		}
		label := fmt.Sprintf("%s (%d pts)", cat.Label, cat.Points)
		if !ctx.Catalog.IsRequired(cat.ID, day) {
			label += " · optional today"
		}
		categoryOptions = append(categoryOptions, huh.NewOption(label, cat.ID))
		if batch.CategoryProgress()[cat.ID] {
			selected = append(selected, cat.ID)
		}
	}

	var premiumSelected []string
	var premiumOptions []huh.Option[string]
	for _, p := range ctx.Catalog.PremiumHabits {
		premiumOptions = append(premiumOptions,
			huh.NewOption(fmt.Sprintf("%s %s (%d pts)", p.Icon, p.Label, p.Points), p.ID))
		if batch.PremiumHabits()[p.ID] {
			premiumSelected = append(premiumSelected, p.ID)
		}
	}

	save := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title(fmt.Sprintf("Habits for %s", date)).
				Options(categoryOptions...).
				Value(&selected),
			huh.NewMultiSelect[string]().
				Title("Premium habits").
				Options(premiumOptions...).
				Value(&premiumSelected),
			huh.NewConfirm().
				Title("Save changes?").
				Affirmative("Save").
				Negative("Cancel").
				Value(&save),
		),
	)
	if err := form.Run(); err != nil {
		batch.Cancel()
		return fmt.Errorf("edit form error: %w", err)
	}

	if !save {
		batch.Cancel()
		fmt.Println("Discarded, nothing saved")
		return nil
	}

	selectedSet := make(map[string]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
	}
	for _, cat := range ctx.Catalog.Categories {
		if batch.AutoSatisfied(cat.ID) {
			continue
		}
		if err := batch.SetCategory(cat.ID, selectedSet[cat.ID]); err != nil {
			return err
		}
	}

	premiumSet := make(map[string]bool, len(premiumSelected))
	for _, id := range premiumSelected {
		premiumSet[id] = true
	}
	for _, p := range ctx.Catalog.PremiumHabits {
		if err := batch.SetPremium(p.ID, premiumSet[p.ID]); err != nil {
			return err
		}
	}

	habit, err := batch.Save()
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s  %d/%d habits  %s\n", date,
		habit.CompletedCategories, ctx.Catalog.RequiredCount(day), formatPoints(habit.TotalPoints))
	if habit.BonusEarned {
		fmt.Println(bonusStyle.Render(fmt.Sprintf("🎉 All habits complete! +%d bonus points!",
			ctx.Catalog.Bonuses.DailyComplete)))
	}
	return nil
}
