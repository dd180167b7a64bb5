package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theopendraft/rule-clarifier/server/data"
)

type AmendmentDAO struct {
	Db *sql.DB
}

// Insert inserts a new amendment audit entry
func (d *AmendmentDAO) Insert(
	ctx context.Context,
	amendment *data.Amendment,
) error {
	id := uuid.New().String()

	_, err := d.Db.ExecContext(
		ctx,
		`INSERT INTO amendment(
			amendment_id, rule_id, rule_number, chapter_number,
			old_title, new_title, old_content, new_content,
			supporting_doc, change_reason, doc_type, uploaded_file_url,
			created_timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		amendment.RuleId,
		amendment.RuleNumber,
		amendment.ChapterNumber,
		amendment.OldTitle,
		amendment.NewTitle,
		amendment.OldContent,
		amendment.NewContent,
		amendment.SupportingDoc,
		amendment.ChangeReason,
		amendment.DocType,
		amendment.UploadedFileUrl,
		time.Now().UTC(),
	)

	if err != nil {
		return fmt.Errorf("error inserting amendment: %w", err)
	}

	return nil
}

// FindByRuleId finds all amendments for a rule, newest first
func (d *AmendmentDAO) FindByRuleId(
	ctx context.Context,
	ruleId int,
) ([]*data.Amendment, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT id, amendment_id, rule_id, rule_number, chapter_number,
			old_title, new_title, old_content, new_content,
			supporting_doc, change_reason, doc_type, uploaded_file_url,
			created_timestamp
		FROM amendment
		WHERE rule_id = ?
		ORDER BY created_timestamp DESC`,
		ruleId,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding amendments by rule: %w", err)
	}
	defer rows.Close()

	return d.scanAmendments(rows)
}

// FindByDateRange finds all amendments within a date range, oldest first
func (d *AmendmentDAO) FindByDateRange(
	ctx context.Context,
	startDate time.Time,
	endDate time.Time,
) ([]*data.Amendment, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT id, amendment_id, rule_id, rule_number, chapter_number,
			old_title, new_title, old_content, new_content,
			supporting_doc, change_reason, doc_type, uploaded_file_url,
			created_timestamp
		FROM amendment
		WHERE created_timestamp BETWEEN ? AND ?
		ORDER BY created_timestamp`,
		startDate,
		endDate,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding amendments by date range: %w", err)
	}
	defer rows.Close()

	return d.scanAmendments(rows)
}

// scanAmendments scans multiple rows into an Amendment slice
func (d *AmendmentDAO) scanAmendments(rows *sql.Rows) ([]*data.Amendment, error) {
	var amendments []*data.Amendment

	for rows.Next() {
		var amendment data.Amendment
		err := rows.Scan(
			&amendment.InternalId,
			&amendment.Id,
			&amendment.RuleId,
			&amendment.RuleNumber,
			&amendment.ChapterNumber,
			&amendment.OldTitle,
			&amendment.NewTitle,
			&amendment.OldContent,
			&amendment.NewContent,
			&amendment.SupportingDoc,
			&amendment.ChangeReason,
			&amendment.DocType,
			&amendment.UploadedFileUrl,
			&amendment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning amendment row: %w", err)
		}

		amendments = append(amendments, &amendment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating amendment rows: %w", err)
	}

	return amendments, nil
}
