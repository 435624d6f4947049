package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/habita-dev/habita/internal/catalog"
	"github.com/habita-dev/habita/internal/cli"
	"github.com/habita-dev/habita/internal/engine"
	"github.com/habita-dev/habita/internal/errors"
	"github.com/habita-dev/habita/internal/ledger"
	"github.com/habita-dev/habita/internal/logger"
	"github.com/habita-dev/habita/internal/storage"
)

var CLI struct {
	Version     kong.VersionFlag
	Config      string `help:"Storage file path (.db for SQLite, .json for JSON)." type:"path" default:"~/.config/habita/habita.db"`
	CatalogFile string `help:"Catalog TOML file path." type:"path" default:"~/.config/habita/catalog.toml"`
	Debug       bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize habita storage."`
	Log      cli.LogCmd      `cmd:"" help:"Log an activity."`
	List     cli.ListCmd     `cmd:"" help:"List activities for a day."`
	Complete cli.CompleteCmd `cmd:"" help:"Complete a planned activity."`
	Cancel   cli.CancelCmd   `cmd:"" help:"Cancel a planned activity."`
	Day      cli.DayCmd      `cmd:"" help:"Show the habit checklist for a day." default:"1"`
	Toggle   cli.ToggleCmd   `cmd:"" help:"Toggle a habit category."`
	Premium  cli.PremiumCmd  `cmd:"" help:"Toggle a premium habit."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit a day's habits in one transaction."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show weekly or monthly stats."`
	Streak   cli.StreakCmd   `cmd:"" help:"Show streaks and milestones."`
	Catalog  cli.CatalogCmd  `cmd:"" help:"Show or export the point catalog."`
	Backup   cli.BackupCmd   `cmd:"" help:"Back up or restore the store file."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habita"),
		kong.Description("Personal activity tracker with daily habits and points"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	cat, err := catalog.Load(CLI.CatalogFile)
	if err != nil {
		errors.Fatal(err)
	}

	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}
	defer store.Close()

	eng := engine.New(store, cat)
	appCtx := &cli.Context{
		Store:   store,
		Catalog: cat,
		Engine:  eng,
		Ledger:  ledger.New(store, cat, eng),
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
