// Package catalog holds the category and premium-habit configuration.
// The category set has changed size across the product's life, so it is
// loaded at runtime rather than enumerated in code: callers iterate the
// catalog, never switch on category identity.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/habita-dev/habita/internal/dates"
)

var (
	ErrUnknownCategory     = errors.New("unknown category")
	ErrUnknownPremiumHabit = errors.New("unknown premium habit")
)

// Category is a labeled bucket of life activity with a fixed point value.
// WeekendOptional categories are not required on Saturdays and Sundays.
type Category struct {
	ID              string `toml:"id"`
	Label           string `toml:"label"`
	Color           string `toml:"color"`
	Points          int    `toml:"points"`
	WeekendOptional bool   `toml:"weekend_optional"`
}

// PremiumHabit is an always-optional bonus habit, independent of the
// category system and never counted toward the daily-complete bonus.
type PremiumHabit struct {
	ID     string `toml:"id"`
	Label  string `toml:"label"`
	Icon   string `toml:"icon"`
	Points int    `toml:"points"`
}

// Bonuses holds the fixed bonus point awards.
type Bonuses struct {
	DailyComplete   int `toml:"daily_complete"`
	Streak3Days     int `toml:"streak_3_days"`
	Streak7Days     int `toml:"streak_7_days"`
	Streak30Days    int `toml:"streak_30_days"`
	WeeklyComplete  int `toml:"weekly_complete"`
	MonthlyComplete int `toml:"monthly_complete"`
}

// Catalog is the full point-system configuration.
type Catalog struct {
	Categories    []Category     `toml:"categories"`
	PremiumHabits []PremiumHabit `toml:"premium_habits"`
	Bonuses       Bonuses        `toml:"bonuses"`

	categoryByID map[string]Category
	premiumByID  map[string]PremiumHabit
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c := &Catalog{
		Categories: []Category{
			{ID: "personal", Label: "Personal", Color: "category-personal", Points: 10},
			{ID: "work", Label: "Work", Color: "category-work", Points: 15, WeekendOptional: true},
			{ID: "freelance", Label: "Freelance", Color: "category-freelance", Points: 12},
			{ID: "social", Label: "Social", Color: "category-social", Points: 20},
			{ID: "health", Label: "Health", Color: "category-health", Points: 20},
			{ID: "other", Label: "Other", Color: "category-other", Points: 8, WeekendOptional: true},
		},
		PremiumHabits: []PremiumHabit{
			{ID: "workout", Label: "Workout", Icon: "🏋️", Points: 25},
			{ID: "reading", Label: "Reading", Icon: "📚", Points: 15},
			{ID: "meditation", Label: "Meditation", Icon: "🧘", Points: 20},
		},
		Bonuses: Bonuses{
			DailyComplete:   50,
			Streak3Days:     25,
			Streak7Days:     75,
			Streak30Days:    300,
			WeeklyComplete:  100,
			MonthlyComplete: 500,
		},
	}
	c.index()
	return c
}

// Load reads a catalog from a TOML file, returning the default catalog
// when the file does not exist.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var c Catalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.index()
	return &c, nil
}

// Save writes the catalog to a TOML file.
func Save(path string, c *Catalog) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating catalog file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(c)
}

func (c *Catalog) validate() error {
	if len(c.Categories) == 0 {
		return errors.New("catalog has no categories")
	}
	seen := make(map[string]bool)
	for _, cat := range c.Categories {
		if cat.ID == "" {
			return errors.New("category with empty id")
		}
		if seen[cat.ID] {
			return fmt.Errorf("duplicate category id %q", cat.ID)
		}
		seen[cat.ID] = true
	}
	for _, p := range c.PremiumHabits {
		if p.ID == "" {
			return errors.New("premium habit with empty id")
		}
	}
	return nil
}

func (c *Catalog) index() {
	c.categoryByID = make(map[string]Category, len(c.Categories))
	for _, cat := range c.Categories {
		c.categoryByID[cat.ID] = cat
	}
	c.premiumByID = make(map[string]PremiumHabit, len(c.PremiumHabits))
	for _, p := range c.PremiumHabits {
		c.premiumByID[p.ID] = p
	}
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (Category, bool) {
	cat, ok := c.categoryByID[id]
	return cat, ok
}

// Premium looks up a premium habit by id.
func (c *Catalog) Premium(id string) (PremiumHabit, bool) {
	p, ok := c.premiumByID[id]
	return p, ok
}

// RequiredCategories returns the categories that must be satisfied on the
// given day for the daily-complete bonus: the full set on weekdays, minus
// the weekend-optional ones on Saturdays and Sundays.
func (c *Catalog) RequiredCategories(t time.Time) []Category {
	weekend := dates.IsWeekend(t)
	required := make([]Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		if weekend && cat.WeekendOptional {
			continue
		}
		required = append(required, cat)
	}
	return required
}

// RequiredCount returns the number of required categories on the given day.
func (c *Catalog) RequiredCount(t time.Time) int {
	return len(c.RequiredCategories(t))
}

// IsRequired reports whether the category is required on the given day.
func (c *Catalog) IsRequired(id string, t time.Time) bool {
	cat, ok := c.categoryByID[id]
	if !ok {
		return false
	}
	return !(dates.IsWeekend(t) && cat.WeekendOptional)
}
