package store

import (
	"database/sql"
	"errors"
)

// SetSetting writes one key-value pair in the settings table.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.conn.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return wrapErr("setting "+key, err)
	}
	return nil
}

// GetSetting reads one settings value, returning ErrNotFound when unset.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", wrapErr("reading setting "+key, err)
	}
	return value, nil
}
