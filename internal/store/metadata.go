package store

import "database/sql"

// SetMetadata upserts a key-value pair in the app_metadata table.
func (s *Store) SetMetadata(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO app_metadata (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = ?`,
		key, value, value,
	)
	return err
}

// GetMetadata returns the value for a metadata key.
// Returns empty string and nil error if the key is missing.
func (s *Store) GetMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM app_metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

const defaultMatrixKey = "default_matrix"

// SetDefaultMatrix stores the matrix text pre-filled for new samples.
func (s *Store) SetDefaultMatrix(matrix string) error {
	return s.SetMetadata(defaultMatrixKey, matrix)
}

// GetDefaultMatrix returns the stored default matrix, empty if unset.
func (s *Store) GetDefaultMatrix() (string, error) {
	return s.GetMetadata(defaultMatrixKey)
}
