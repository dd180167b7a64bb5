package dao

import (
	"context"
	"database/sql"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS rule_book(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		book_id TEXT NOT NULL UNIQUE,
		code TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		created_timestamp TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chapter(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		chapter_id TEXT NOT NULL UNIQUE,
		rule_book_id INTEGER NOT NULL REFERENCES rule_book(id),
		number INTEGER NOT NULL,
		title TEXT NOT NULL,
		section TEXT,
		created_timestamp TIMESTAMP NOT NULL,
		UNIQUE(rule_book_id, number)
	)`,
	`CREATE TABLE IF NOT EXISTS rule(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		rule_id TEXT NOT NULL UNIQUE,
		chapter_id INTEGER NOT NULL REFERENCES chapter(id),
		number TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		display_order INTEGER NOT NULL,
		word_count INTEGER NOT NULL DEFAULT 0,
		created_timestamp TIMESTAMP NOT NULL,
		updated_timestamp TIMESTAMP NOT NULL,
		UNIQUE(chapter_id, number)
	)`,
	`CREATE TABLE IF NOT EXISTS manual(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		manual_id TEXT NOT NULL UNIQUE,
		code TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT,
		created_timestamp TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS circular(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		circular_id TEXT NOT NULL UNIQUE,
		code TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT,
		number TEXT,
		created_timestamp TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS amendment(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		amendment_id TEXT NOT NULL UNIQUE,
		rule_id INTEGER NOT NULL REFERENCES rule(id),
		rule_number TEXT NOT NULL,
		chapter_number INTEGER NOT NULL,
		old_title TEXT NOT NULL,
		new_title TEXT NOT NULL,
		old_content TEXT NOT NULL,
		new_content TEXT NOT NULL,
		supporting_doc TEXT NOT NULL,
		change_reason TEXT NOT NULL,
		doc_type TEXT NOT NULL,
		uploaded_file_url TEXT,
		created_timestamp TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS uploaded_file(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		size INTEGER NOT NULL,
		type TEXT NOT NULL,
		created_timestamp TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rule_chapter ON rule(chapter_id)`,
	`CREATE INDEX IF NOT EXISTS idx_amendment_rule ON amendment(rule_id)`,
	`CREATE INDEX IF NOT EXISTS idx_amendment_created ON amendment(created_timestamp)`,
}

// InitSchema creates all tables and indexes if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error initializing schema: %w", err)
		}
	}
	return nil
}
