package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/habita-dev/habita/internal/models"
)

type store struct {
	Version     int                          `json:"version"`
	Activities  map[string]models.Activity   `json:"activities"`
	DailyHabits map[string]models.DailyHabit `json:"daily_habits"` // keyed by date
}

// JSONStore persists everything in a single JSON file. Every write
// serializes the whole store, which keeps saves atomic from the caller's
// perspective: either the file holds the new state or the old one.
type JSONStore struct {
	path  string
	store *store
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &store{
		Version:     1,
		Activities:  make(map[string]models.Activity),
		DailyHabits: make(map[string]models.DailyHabit),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habita init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Activities == nil {
		s.store.Activities = make(map[string]models.Activity)
	}
	if s.store.DailyHabits == nil {
		s.store.DailyHabits = make(map[string]models.DailyHabit)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AddActivity(activity models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Activities[activity.ID] = activity
	return s.save()
}

func (s *JSONStore) GetActivity(id string) (models.Activity, error) {
	if s.store == nil {
		return models.Activity{}, fmt.Errorf("storage not loaded")
	}

	activity, ok := s.store.Activities[id]
	if !ok {
		return models.Activity{}, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}

	return activity, nil
}

func (s *JSONStore) GetAllActivities() ([]models.Activity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	activities := make([]models.Activity, 0, len(s.store.Activities))
	for _, a := range s.store.Activities {
		activities = append(activities, a)
	}

	return activities, nil
}

func (s *JSONStore) UpdateActivity(activity models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Activities[activity.ID]; !ok {
		return fmt.Errorf("activity %s: %w", activity.ID, ErrNotFound)
	}

	s.store.Activities[activity.ID] = activity
	return s.save()
}

func (s *JSONStore) GetDailyHabit(date string) (models.DailyHabit, error) {
	if s.store == nil {
		return models.DailyHabit{}, fmt.Errorf("storage not loaded")
	}

	habit, ok := s.store.DailyHabits[date]
	if !ok {
		return models.DailyHabit{}, fmt.Errorf("daily habit %s: %w", date, ErrNotFound)
	}

	return habit, nil
}

func (s *JSONStore) GetAllDailyHabits() ([]models.DailyHabit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.DailyHabit, 0, len(s.store.DailyHabits))
	for _, h := range s.store.DailyHabits {
		habits = append(habits, h)
	}

	return habits, nil
}

func (s *JSONStore) SaveDailyHabit(habit models.DailyHabit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.DailyHabits[habit.Date] = habit
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
