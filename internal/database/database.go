package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func New(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
-- BRAMBLE Database Schema

-- Pages are append-only: every accepted edit inserts a new row, so the
-- table holds one row per (url, version). Readers only ever see the
-- highest version for a url.
CREATE TABLE IF NOT EXISTS pages (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL,
    subject TEXT NOT NULL,
    content TEXT NOT NULL,
    created_by TEXT NOT NULL DEFAULT '',
    version INTEGER NOT NULL,
    created TIMESTAMP NOT NULL,
    last_edited TIMESTAMP NOT NULL,
    UNIQUE (url, version)
);

-- Users are insert-only; there is no account update flow.
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    email TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created TIMESTAMP NOT NULL
);
`)
	return err
}
