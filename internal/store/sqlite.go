package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS users (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        email TEXT UNIQUE NOT NULL,
        password_hash TEXT NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS journal_entries (
        id TEXT PRIMARY KEY, -- UUID
        text TEXT NOT NULL,
        date TEXT NOT NULL,
        image TEXT,
        analysis_json TEXT,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE TABLE IF NOT EXISTS events (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user TEXT NOT NULL,
        kind TEXT NOT NULL,
        label TEXT NOT NULL,
        value REAL NOT NULL DEFAULT 0,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_events_kind_label ON events (kind, label);

    CREATE TABLE IF NOT EXISTS survey_scores (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        kind TEXT NOT NULL CHECK (kind IN ('sus', 'nps', 'csat')),
        score REAL NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// User methods

func (s *SQLiteStore) GetUserByEmail(email string) (*User, error) {
	var user User
	err := s.db.QueryRow("SELECT id, email, password_hash, created_at FROM users WHERE email = ?", email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

func (s *SQLiteStore) CreateUser(email, passwordHash string) (*User, error) {
	res, err := s.db.Exec("INSERT INTO users (email, password_hash) VALUES (?, ?)", email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	id, _ := res.LastInsertId()

	var user User
	err = s.db.QueryRow("SELECT id, email, password_hash, created_at FROM users WHERE id = ?", id).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return &user, nil
}

// Journal methods

func (s *SQLiteStore) CreateJournalEntry(entry *JournalEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	entry.CreatedAt = time.Now()

	stmt, err := s.db.Prepare("INSERT INTO journal_entries (id, text, date, image, analysis_json, created_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare journal insert: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(entry.ID, entry.Text, entry.Date, entry.Image, entry.AnalysisJSON, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to execute journal insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateJournalAnalysis(entryID, analysisJSON string) error {
	res, err := s.db.Exec("UPDATE journal_entries SET analysis_json = ? WHERE id = ?", analysisJSON, entryID)
	if err != nil {
		return fmt.Errorf("failed to update journal analysis: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("journal entry not found, analysis not updated")
	}
	return nil
}

func (s *SQLiteStore) ListJournalEntries(limit int) ([]JournalEntry, error) {
	query := "SELECT id, text, date, image, analysis_json, created_at FROM journal_entries ORDER BY created_at DESC LIMIT ?"
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []JournalEntry
	for rows.Next() {
		var entry JournalEntry
		var image, analysis sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Text, &entry.Date, &image, &analysis, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		entry.Image = image.String
		entry.AnalysisJSON = analysis.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Analytics methods

func (s *SQLiteStore) LogEvent(user, kind, label string, value float64) error {
	if user == "" {
		user = "anonymous"
	}
	_, err := s.db.Exec("INSERT INTO events (user, kind, label, value) VALUES (?, ?, ?, ?)", user, kind, label, value)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// CountEvents returns per-label counts for one event kind.
func (s *SQLiteStore) CountEvents(kind string) (map[string]int64, error) {
	rows, err := s.db.Query("SELECT label, COUNT(*) FROM events WHERE kind = ? GROUP BY label", kind)
	if err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var label string
		var n int64
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("failed to scan event count: %w", err)
		}
		counts[label] = n
	}
	return counts, rows.Err()
}

// AverageEventValue returns per-label value averages for one event kind.
func (s *SQLiteStore) AverageEventValue(kind string) (map[string]float64, error) {
	rows, err := s.db.Query("SELECT label, AVG(value) FROM events WHERE kind = ? GROUP BY label", kind)
	if err != nil {
		return nil, fmt.Errorf("failed to average events: %w", err)
	}
	defer rows.Close()

	averages := make(map[string]float64)
	for rows.Next() {
		var label string
		var avg float64
		if err := rows.Scan(&label, &avg); err != nil {
			return nil, fmt.Errorf("failed to scan event average: %w", err)
		}
		averages[label] = avg
	}
	return averages, rows.Err()
}

// Survey methods

func (s *SQLiteStore) CreateSurveyScore(kind string, score float64) error {
	_, err := s.db.Exec("INSERT INTO survey_scores (kind, score) VALUES (?, ?)", kind, score)
	if err != nil {
		return fmt.Errorf("failed to insert survey score: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AverageSurveyScore(kind string) (float64, int64, error) {
	var avg sql.NullFloat64
	var n int64
	err := s.db.QueryRow("SELECT AVG(score), COUNT(*) FROM survey_scores WHERE kind = ?", kind).Scan(&avg, &n)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query survey scores: %w", err)
	}
	return avg.Float64, n, nil
}
