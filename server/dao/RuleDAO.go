package dao

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/theopendraft/rule-clarifier/server/data"
)

type RuleDAO struct {
	Db *sql.DB
}

// FindByChapterId finds all rules of a chapter in display order
func (d *RuleDAO) FindByChapterId(
	ctx context.Context,
	chapterId int,
) ([]*data.Rule, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT id, rule_id, chapter_id, number, title, content, display_order,
			word_count, created_timestamp, updated_timestamp
		FROM rule
		WHERE chapter_id = ?
		ORDER BY display_order`,
		chapterId,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding rules by chapter: %w", err)
	}
	defer rows.Close()

	return d.scanRules(rows)
}

// FindById finds a rule by its external id
func (d *RuleDAO) FindById(
	ctx context.Context,
	ruleId string,
) (*data.Rule, error) {
	var rule data.Rule
	err := d.Db.QueryRowContext(
		ctx,
		`SELECT id, rule_id, chapter_id, number, title, content, display_order,
			word_count, created_timestamp, updated_timestamp
		FROM rule
		WHERE rule_id = ?`,
		ruleId,
	).Scan(
		&rule.InternalId,
		&rule.Id,
		&rule.ChapterId,
		&rule.Number,
		&rule.Title,
		&rule.Content,
		&rule.DisplayOrder,
		&rule.WordCount,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding rule by id: %w", err)
	}

	return &rule, nil
}

// Update replaces the title and content of a rule. The word count is
// recomputed from the new content.
func (d *RuleDAO) Update(
	ctx context.Context,
	internalId int,
	title string,
	content string,
) error {
	wordCount := len(strings.Fields(content))

	res, err := d.Db.ExecContext(
		ctx,
		`UPDATE rule
		SET title = ?, content = ?, word_count = ?, updated_timestamp = ?
		WHERE id = ?`,
		title,
		content,
		wordCount,
		time.Now().UTC(),
		internalId,
	)
	if err != nil {
		return fmt.Errorf("error updating rule %d: %w", internalId, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("rule %d not found", internalId)
	}

	return nil
}

// ChapterNumberForRule resolves the chapter number a rule belongs to
func (d *RuleDAO) ChapterNumberForRule(
	ctx context.Context,
	ruleInternalId int,
) (int, error) {
	var number int
	err := d.Db.QueryRowContext(
		ctx,
		`SELECT c.number
		FROM rule r JOIN chapter c ON r.chapter_id = c.id
		WHERE r.id = ?`,
		ruleInternalId,
	).Scan(&number)

	if err != nil {
		return 0, fmt.Errorf("error resolving chapter for rule %d: %w", ruleInternalId, err)
	}

	return number, nil
}

// scanRules scans multiple rows into a Rule slice
func (d *RuleDAO) scanRules(rows *sql.Rows) ([]*data.Rule, error) {
	var rules []*data.Rule

	for rows.Next() {
		var rule data.Rule
		err := rows.Scan(
			&rule.InternalId,
			&rule.Id,
			&rule.ChapterId,
			&rule.Number,
			&rule.Title,
			&rule.Content,
			&rule.DisplayOrder,
			&rule.WordCount,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning rule row: %w", err)
		}

		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rule rows: %w", err)
	}

	return rules, nil
}
