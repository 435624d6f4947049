package storage

import (
	"errors"

	"github.com/habita-dev/habita/internal/models"
)

// ErrNotFound is wrapped by providers when a record does not exist.
// Callers distinguish "no record yet" from real failures with errors.Is.
var ErrNotFound = errors.New("not found")

// Provider is the persistence abstraction the engine is built against.
// Implementations must make each method a complete read or write: the
// engine composes them as read-compute-write and relies on the host's
// single-writer execution model, not on provider-level locking.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Activities
	AddActivity(models.Activity) error
	GetActivity(id string) (models.Activity, error)
	GetAllActivities() ([]models.Activity, error)
	UpdateActivity(models.Activity) error

	// Daily habits, unique by date key
	GetDailyHabit(date string) (models.DailyHabit, error)
	GetAllDailyHabits() ([]models.DailyHabit, error)
	SaveDailyHabit(models.DailyHabit) error

	// Utils
	GetConfigPath() string
}
