package cli

import (
	"fmt"

	"github.com/habita-dev/habita/internal/catalog"
)

type CatalogCmd struct {
	Show   CatalogShowCmd   `cmd:"" help:"Show the active catalog." default:"1"`
	Export CatalogExportCmd `cmd:"" help:"Write the active catalog to a TOML file for editing."`
}

type CatalogShowCmd struct{}

func (c *CatalogShowCmd) Run(ctx *Context) error {
	fmt.Println(titleStyle.Render("Categories"))
	for _, cat := range ctx.Catalog.Categories {
		line := fmt.Sprintf("  %-10s %2d pts", cat.Label, cat.Points)
		if cat.WeekendOptional {
			line += lockedStyle.Render("  (optional on weekends)")
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Premium habits"))
	for _, p := range ctx.Catalog.PremiumHabits {
		fmt.Printf("  %s %-10s %2d pts\n", p.Icon, p.Label, p.Points)
	}

	fmt.Println()
	fmt.Printf("Daily-complete bonus: %d pts\n", ctx.Catalog.Bonuses.DailyComplete)
	return nil
}

type CatalogExportCmd struct {
	Path string `arg:"" help:"Destination TOML file." type:"path"`
}

func (c *CatalogExportCmd) Run(ctx *Context) error {
	if err := catalog.Save(c.Path, ctx.Catalog); err != nil {
		return err
	}
	fmt.Printf("Wrote catalog to: %s\n", c.Path)
	return nil
}
