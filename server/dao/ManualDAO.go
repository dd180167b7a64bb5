package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theopendraft/rule-clarifier/server/data"
)

type ManualDAO struct {
	Db *sql.DB
}

// Insert inserts a new manual, replacing the title and description
// if the code already exists
func (d *ManualDAO) Insert(
	ctx context.Context,
	manual *data.Manual,
) error {
	id := uuid.New().String()

	_, err := d.Db.ExecContext(
		ctx,
		`INSERT INTO manual(manual_id, code, title, description, created_timestamp)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (code) DO UPDATE
		SET title = excluded.title, description = excluded.description`,
		id,
		manual.Code,
		manual.Title,
		manual.Description,
		time.Now().UTC(),
	)

	if err != nil {
		return fmt.Errorf("error inserting manual: %w", err)
	}

	return nil
}

// FindAll finds all manuals ordered by code
func (d *ManualDAO) FindAll(
	ctx context.Context,
) ([]*data.Manual, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT id, manual_id, code, title, description, created_timestamp
		FROM manual
		ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding manuals: %w", err)
	}
	defer rows.Close()

	var manuals []*data.Manual
	for rows.Next() {
		var manual data.Manual
		err := rows.Scan(
			&manual.InternalId,
			&manual.Id,
			&manual.Code,
			&manual.Title,
			&manual.Description,
			&manual.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning manual row: %w", err)
		}

		manuals = append(manuals, &manual)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manual rows: %w", err)
	}

	return manuals, nil
}

// FindByCode finds a manual by its code
func (d *ManualDAO) FindByCode(
	ctx context.Context,
	code string,
) (*data.Manual, error) {
	var manual data.Manual
	err := d.Db.QueryRowContext(
		ctx,
		`SELECT id, manual_id, code, title, description, created_timestamp
		FROM manual
		WHERE code = ?`,
		code,
	).Scan(
		&manual.InternalId,
		&manual.Id,
		&manual.Code,
		&manual.Title,
		&manual.Description,
		&manual.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding manual by code: %w", err)
	}

	return &manual, nil
}
