package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theopendraft/rule-clarifier/server/data"
)

type CircularDAO struct {
	Db *sql.DB
}

// Insert inserts a new circular, replacing mutable fields if the code
// already exists
func (d *CircularDAO) Insert(
	ctx context.Context,
	circular *data.Circular,
) error {
	id := uuid.New().String()

	_, err := d.Db.ExecContext(
		ctx,
		`INSERT INTO circular(circular_id, code, title, description, number, created_timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (code) DO UPDATE
		SET title = excluded.title, description = excluded.description, number = excluded.number`,
		id,
		circular.Code,
		circular.Title,
		circular.Description,
		circular.Number,
		time.Now().UTC(),
	)

	if err != nil {
		return fmt.Errorf("error inserting circular: %w", err)
	}

	return nil
}

// FindAll finds all circulars ordered by code
func (d *CircularDAO) FindAll(
	ctx context.Context,
) ([]*data.Circular, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT id, circular_id, code, title, description, number, created_timestamp
		FROM circular
		ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding circulars: %w", err)
	}
	defer rows.Close()

	var circulars []*data.Circular
	for rows.Next() {
		var circular data.Circular
		err := rows.Scan(
			&circular.InternalId,
			&circular.Id,
			&circular.Code,
			&circular.Title,
			&circular.Description,
			&circular.Number,
			&circular.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning circular row: %w", err)
		}

		circulars = append(circulars, &circular)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating circular rows: %w", err)
	}

	return circulars, nil
}
