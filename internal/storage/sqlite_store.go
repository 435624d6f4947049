package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/habita-dev/habita/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS activities (
	id           TEXT PRIMARY KEY,
	text         TEXT NOT NULL,
	category     TEXT NOT NULL,
	timestamp    TEXT NOT NULL,
	points       INTEGER NOT NULL,
	status       TEXT NOT NULL,
	planned_date TEXT
);

CREATE INDEX IF NOT EXISTS idx_activities_status ON activities(status);

CREATE TABLE IF NOT EXISTS daily_habits (
	date                 TEXT PRIMARY KEY,
	category_progress    TEXT NOT NULL,
	completed_categories INTEGER NOT NULL,
	bonus_earned         INTEGER NOT NULL,
	total_points         INTEGER NOT NULL,
	premium_habits       TEXT NOT NULL
);
`

// SQLiteStore persists the ledger and habit history in a local SQLite
// database. Progress maps are stored as JSON columns; the engine always
// reads and writes whole records, so per-field columns buy nothing.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habita init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema application is idempotent; running it on Load keeps older
	// databases usable after a table is added.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) AddActivity(activity models.Activity) error {
	var planned sql.NullString
	if activity.PlannedDate != nil {
		planned = sql.NullString{String: activity.PlannedDate.Format(time.RFC3339), Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO activities (id, text, category, timestamp, points, status, planned_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.Text, activity.Category,
		activity.Timestamp.Format(time.RFC3339), activity.Points,
		string(activity.Status), planned)

	return err
}

func (s *SQLiteStore) GetActivity(id string) (models.Activity, error) {
	row := s.db.QueryRow(`
		SELECT id, text, category, timestamp, points, status, planned_date
		FROM activities WHERE id = ?`, id)

	activity, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return models.Activity{}, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return activity, err
}

func (s *SQLiteStore) GetAllActivities() ([]models.Activity, error) {
	rows, err := s.db.Query(`
		SELECT id, text, category, timestamp, points, status, planned_date
		FROM activities ORDER BY timestamp`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	return activities, rows.Err()
}

func (s *SQLiteStore) UpdateActivity(activity models.Activity) error {
	var planned sql.NullString
	if activity.PlannedDate != nil {
		planned = sql.NullString{String: activity.PlannedDate.Format(time.RFC3339), Valid: true}
	}

	result, err := s.db.Exec(`
		UPDATE activities
		SET text = ?, category = ?, timestamp = ?, points = ?, status = ?, planned_date = ?
		WHERE id = ?`,
		activity.Text, activity.Category, activity.Timestamp.Format(time.RFC3339),
		activity.Points, string(activity.Status), planned, activity.ID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("activity %s: %w", activity.ID, ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (models.Activity, error) {
	var a models.Activity
	var timestamp, status string
	var planned sql.NullString

	err := row.Scan(&a.ID, &a.Text, &a.Category, &timestamp, &a.Points, &status, &planned)
	if err != nil {
		return models.Activity{}, err
	}

	a.Status = models.ActivityStatus(status)
	a.Timestamp, err = time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return models.Activity{}, fmt.Errorf("failed to parse timestamp for activity %s: %w", a.ID, err)
	}
	if planned.Valid {
		t, err := time.Parse(time.RFC3339, planned.String)
		if err != nil {
			return models.Activity{}, fmt.Errorf("failed to parse planned_date for activity %s: %w", a.ID, err)
		}
		a.PlannedDate = &t
	}

	return a, nil
}

func (s *SQLiteStore) GetDailyHabit(date string) (models.DailyHabit, error) {
	row := s.db.QueryRow(`
		SELECT date, category_progress, completed_categories, bonus_earned, total_points, premium_habits
		FROM daily_habits WHERE date = ?`, date)

	habit, err := scanDailyHabit(row)
	if err == sql.ErrNoRows {
		return models.DailyHabit{}, fmt.Errorf("daily habit %s: %w", date, ErrNotFound)
	}
	return habit, err
}

func (s *SQLiteStore) GetAllDailyHabits() ([]models.DailyHabit, error) {
	rows, err := s.db.Query(`
		SELECT date, category_progress, completed_categories, bonus_earned, total_points, premium_habits
		FROM daily_habits ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.DailyHabit
	for rows.Next() {
		habit, err := scanDailyHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}

	return habits, rows.Err()
}

func scanDailyHabit(row rowScanner) (models.DailyHabit, error) {
	var h models.DailyHabit
	var progress, premium string
	var bonus int

	err := row.Scan(&h.Date, &progress, &h.CompletedCategories, &bonus, &h.TotalPoints, &premium)
	if err != nil {
		return models.DailyHabit{}, err
	}

	h.BonusEarned = bonus != 0
	if err := json.Unmarshal([]byte(progress), &h.CategoryProgress); err != nil {
		return models.DailyHabit{}, fmt.Errorf("failed to parse category_progress for %s: %w", h.Date, err)
	}
	if err := json.Unmarshal([]byte(premium), &h.PremiumHabits); err != nil {
		return models.DailyHabit{}, fmt.Errorf("failed to parse premium_habits for %s: %w", h.Date, err)
	}

	return h, nil
}

func (s *SQLiteStore) SaveDailyHabit(habit models.DailyHabit) error {
	progress, err := json.Marshal(habit.CategoryProgress)
	if err != nil {
		return fmt.Errorf("failed to serialize category_progress: %w", err)
	}
	premium, err := json.Marshal(habit.PremiumHabits)
	if err != nil {
		return fmt.Errorf("failed to serialize premium_habits: %w", err)
	}

	bonus := 0
	if habit.BonusEarned {
		bonus = 1
	}

	_, err = s.db.Exec(`
		INSERT INTO daily_habits (date, category_progress, completed_categories, bonus_earned, total_points, premium_habits)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			category_progress = excluded.category_progress,
			completed_categories = excluded.completed_categories,
			bonus_earned = excluded.bonus_earned,
			total_points = excluded.total_points,
			premium_habits = excluded.premium_habits`,
		habit.Date, string(progress), habit.CompletedCategories, bonus,
		habit.TotalPoints, string(premium))

	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
