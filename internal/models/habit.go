package models

// DailyHabit is the canonical per-day habit record. There is at most one
// per day key; it is created lazily the first time a day is reconciled or
// toggled and never deleted.
type DailyHabit struct {
	Date                string          `json:"date"`
	CategoryProgress    map[string]bool `json:"category_progress"`
	CompletedCategories int             `json:"completed_categories"`
	BonusEarned         bool            `json:"bonus_earned"`
	TotalPoints         int             `json:"total_points"`
	PremiumHabits       map[string]bool `json:"premium_habits"`
}

// NewDailyHabit returns an empty record for the given day key.
func NewDailyHabit(date string) DailyHabit {
	return DailyHabit{
		Date:             date,
		CategoryProgress: make(map[string]bool),
		PremiumHabits:    make(map[string]bool),
	}
}

// Clone returns a deep copy, used for batch-edit drafts.
func (h DailyHabit) Clone() DailyHabit {
	c := h
	c.CategoryProgress = make(map[string]bool, len(h.CategoryProgress))
	for k, v := range h.CategoryProgress {
		c.CategoryProgress[k] = v
	}
	c.PremiumHabits = make(map[string]bool, len(h.PremiumHabits))
	for k, v := range h.PremiumHabits {
		c.PremiumHabits[k] = v
	}
	return c
}

// Equal reports whether two records carry the same persisted state.
// The reconciler uses it to skip redundant writes.
func (h DailyHabit) Equal(o DailyHabit) bool {
	if h.Date != o.Date ||
		h.CompletedCategories != o.CompletedCategories ||
		h.BonusEarned != o.BonusEarned ||
		h.TotalPoints != o.TotalPoints {
		return false
	}
	if !boolMapsEqual(h.CategoryProgress, o.CategoryProgress) {
		return false
	}
	return boolMapsEqual(h.PremiumHabits, o.PremiumHabits)
}

// boolMapsEqual treats a missing key and an explicit false as the same
// state, matching how toggles materialize keys lazily.
func boolMapsEqual(a, b map[string]bool) bool {
	for k, v := range a {
		if v != b[k] {
			return false
		}
	}
	for k, v := range b {
		if v != a[k] {
			return false
		}
	}
	return true
}
