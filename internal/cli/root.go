package cli

import (
	"fmt"
	"time"

	"github.com/habita-dev/habita/internal/catalog"
	"github.com/habita-dev/habita/internal/engine"
	"github.com/habita-dev/habita/internal/ledger"
	"github.com/habita-dev/habita/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Catalog *catalog.Catalog
	Engine  *engine.Engine
	Ledger  *ledger.Ledger
}

// parseDay resolves a date argument to a local time. Accepts YYYY-MM-DD
// plus the shorthands "today", "yesterday" and "tomorrow".
func parseDay(s string) (time.Time, error) {
	now := time.Now()
	switch s {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	}

	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD or today/yesterday/tomorrow", s)
	}
	return t, nil
}
