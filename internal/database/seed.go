package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// author account (with its profile row) and a starter set of categories.
// It does nothing if users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("inkwell"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	var userID string
	err = tx.QueryRow(`
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "author@inkwell.local", string(hash), "Inkwell Author").Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO profiles (user_id) VALUES ($1)`, userID); err != nil {
		return fmt.Errorf("seed insert profile: %w", err)
	}

	categories := [][2]string{
		{"General", "general"},
		{"Engineering", "engineering"},
		{"Announcements", "announcements"},
	}
	for _, c := range categories {
		if _, err := tx.Exec(`
			INSERT INTO categories (name, slug) VALUES ($1, $2)
			ON CONFLICT (name) DO NOTHING
		`, c[0], c[1]); err != nil {
			return fmt.Errorf("seed insert category %s: %w", c[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with default author",
		"email", "author@inkwell.local",
		"password", "inkwell",
	)

	return nil
}
