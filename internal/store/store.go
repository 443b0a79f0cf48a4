package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pethoang/ExamGen10/internal/model"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		text TEXT NOT NULL,
		matrix TEXT NOT NULL DEFAULT '',
		analysis TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sample_id INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (sample_id) REFERENCES samples(id)
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'teacher',
		active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS auth_sessions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS app_metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// InsertSample stores an uploaded sample text.
func (s *Store) InsertSample(smp model.Sample) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO samples (name, text, matrix, created_at) VALUES (?, ?, ?, ?)`,
		smp.Name, smp.Text, smp.Matrix, time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetSample returns a sample by ID.
func (s *Store) GetSample(id int64) (model.Sample, error) {
	var smp model.Sample
	err := s.db.QueryRow(
		`SELECT id, name, text, matrix, created_at FROM samples WHERE id = ?`, id,
	).Scan(&smp.ID, &smp.Name, &smp.Text, &smp.Matrix, &smp.CreatedAt)
	return smp, err
}

// ListSamples returns all samples, newest first, without their full text.
func (s *Store) ListSamples() ([]model.Sample, error) {
	rows, err := s.db.Query(`SELECT id, name, matrix, created_at FROM samples ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var samples []model.Sample
	for rows.Next() {
		var smp model.Sample
		if err := rows.Scan(&smp.ID, &smp.Name, &smp.Matrix, &smp.CreatedAt); err != nil {
			return nil, err
		}
		samples = append(samples, smp)
	}
	return samples, rows.Err()
}

// UpdateSampleMatrix replaces the structure matrix for a sample.
func (s *Store) UpdateSampleMatrix(id int64, matrix string) error {
	_, err := s.db.Exec(`UPDATE samples SET matrix = ? WHERE id = ?`, matrix, id)
	return err
}

// SetAnalysis replaces a sample's analysis with a new value. The whole value
// is replaced on every edit; there are no partial updates.
func (s *Store) SetAnalysis(sampleID int64, a model.Analysis) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	_, err = s.db.Exec(`UPDATE samples SET analysis = ? WHERE id = ?`, string(data), sampleID)
	return err
}

// GetAnalysis returns a sample's analysis, or nil if none is stored yet.
func (s *Store) GetAnalysis(sampleID int64) (*model.Analysis, error) {
	var data sql.NullString
	err := s.db.QueryRow(`SELECT analysis FROM samples WHERE id = ?`, sampleID).Scan(&data)
	if err != nil {
		return nil, err
	}
	if !data.Valid || data.String == "" {
		return nil, nil
	}
	var a model.Analysis
	if err := json.Unmarshal([]byte(data.String), &a); err != nil {
		return nil, fmt.Errorf("unmarshal analysis: %w", err)
	}
	return &a, nil
}
