package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
)

// SettingRepository provides data access methods for the system_setting table.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves a setting value and whether it is stored encrypted.
func (s *SettingRepository) GetSetting(key string) (string, bool, error) {
	query := `
		SELECT value, is_encrypted
		FROM system_setting
		WHERE key = ?
	`
	var value string
	var isEncrypted bool

	err := s.db.QueryRow(query, key).Scan(&value, &isEncrypted)
	if err == sql.ErrNoRows {
		return "", false, apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query system_setting table: %w", err)
	}

	return value, isEncrypted, nil
}

// SetSetting stores a setting value, overwriting any existing entry.
func (s *SettingRepository) SetSetting(key, value string, isEncrypted bool) error {
	query := `
		INSERT INTO system_setting (key, value, is_encrypted, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value, is_encrypted = excluded.is_encrypted, updated_at = excluded.updated_at
	`
	_, err := s.db.Exec(query, key, value, isEncrypted, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store setting: %w", err)
	}
	return nil
}
