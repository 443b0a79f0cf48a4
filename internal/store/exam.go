package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pethoang/ExamGen10/internal/model"
)

// InsertExam stores a generated exam. The section tree is kept as a JSON
// document; numbering is always derived at render time, never persisted.
func (s *Store) InsertExam(sampleID int64, exam model.Exam) (int64, error) {
	data, err := json.Marshal(exam)
	if err != nil {
		return 0, fmt.Errorf("marshal exam: %w", err)
	}
	res, err := s.db.Exec(
		`INSERT INTO exams (sample_id, title, data, created_at) VALUES (?, ?, ?, ?)`,
		sampleID, exam.Title, string(data), time.Now(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetExam returns a stored exam by ID.
func (s *Store) GetExam(id int64) (model.Exam, error) {
	var data string
	var exam model.Exam
	err := s.db.QueryRow(
		`SELECT data, created_at FROM exams WHERE id = ?`, id,
	).Scan(&data, &exam.CreatedAt)
	if err != nil {
		return model.Exam{}, err
	}
	createdAt := exam.CreatedAt
	if err := json.Unmarshal([]byte(data), &exam); err != nil {
		return model.Exam{}, fmt.Errorf("unmarshal exam %d: %w", id, err)
	}
	exam.ID = id
	exam.CreatedAt = createdAt
	return exam, nil
}

// UpdateExam replaces a stored exam's content wholesale.
func (s *Store) UpdateExam(id int64, exam model.Exam) error {
	data, err := json.Marshal(exam)
	if err != nil {
		return fmt.Errorf("marshal exam: %w", err)
	}
	_, err = s.db.Exec(`UPDATE exams SET title = ?, data = ? WHERE id = ?`, exam.Title, string(data), id)
	return err
}

// DeleteExam removes a stored exam.
func (s *Store) DeleteExam(id int64) error {
	_, err := s.db.Exec(`DELETE FROM exams WHERE id = ?`, id)
	return err
}

// ExamSummary is one row in the saved-exams listing.
type ExamSummary struct {
	ID        int64
	SampleID  int64
	Title     string
	CreatedAt time.Time
}

// ListExams returns summaries of all stored exams, newest first.
func (s *Store) ListExams() ([]ExamSummary, error) {
	rows, err := s.db.Query(`SELECT id, sample_id, title, created_at FROM exams ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var exams []ExamSummary
	for rows.Next() {
		var e ExamSummary
		if err := rows.Scan(&e.ID, &e.SampleID, &e.Title, &e.CreatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// ExamCount returns the number of stored exams.
func (s *Store) ExamCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM exams`).Scan(&count)
	return count, err
}
