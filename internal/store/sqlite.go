package store

import (
	"context"
	"database/sql"

	"bramble/internal/models"
)

// PageBackend keeps page revisions in sqlite. Every Append inserts a fresh
// (url, version) row; LoadAll surfaces only the newest revision per url.
type PageBackend struct {
	DB *sql.DB
}

// NewPageBackend creates a sqlite backend for the pages collection.
func NewPageBackend(db *sql.DB) *PageBackend {
	return &PageBackend{DB: db}
}

func (b *PageBackend) LoadAll(ctx context.Context) (map[string]models.Page, error) {
	rows, err := b.DB.QueryContext(ctx, `
		SELECT url, subject, content, created_by, version, created, last_edited
		FROM pages
		WHERE id IN (SELECT MAX(id) FROM pages GROUP BY url)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := make(map[string]models.Page)
	for rows.Next() {
		var p models.Page
		if err := rows.Scan(&p.URL, &p.Subject, &p.Content, &p.CreatedBy, &p.Version, &p.Created, &p.LastEdited); err != nil {
			return nil, err
		}
		pages[p.URL] = p
	}
	return pages, rows.Err()
}

func (b *PageBackend) Append(ctx context.Context, key string, page models.Page) error {
	_, err := b.DB.ExecContext(ctx,
		"INSERT INTO pages (url, subject, content, created_by, version, created, last_edited) VALUES (?, ?, ?, ?, ?, ?, ?)",
		key, page.Subject, page.Content, page.CreatedBy, page.Version, page.Created, page.LastEdited)
	return err
}

// UserBackend keeps accounts in sqlite. There is no account update flow, so
// Append is a plain insert.
type UserBackend struct {
	DB *sql.DB
}

// NewUserBackend creates a sqlite backend for the users collection.
func NewUserBackend(db *sql.DB) *UserBackend {
	return &UserBackend{DB: db}
}

func (b *UserBackend) LoadAll(ctx context.Context) (map[string]models.User, error) {
	rows, err := b.DB.QueryContext(ctx,
		"SELECT username, email, password_hash, created FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make(map[string]models.User)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Username, &u.Email, &u.PasswordHash, &u.Created); err != nil {
			return nil, err
		}
		users[u.Username] = u
	}
	return users, rows.Err()
}

func (b *UserBackend) Append(ctx context.Context, key string, u models.User) error {
	_, err := b.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, created) VALUES (?, ?, ?, ?)",
		key, u.Email, u.PasswordHash, u.Created)
	return err
}
