package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theopendraft/rule-clarifier/server/data"
)

type ChapterDAO struct {
	Db *sql.DB
}

// BatchInsert inserts chapters together with their rules in a single
// transaction. Internal ids are assigned by the database and written
// back into the passed records.
func (d *ChapterDAO) BatchInsert(
	ctx context.Context,
	ruleBookId int,
	chapters []*data.Chapter,
) error {
	if len(chapters) == 0 {
		return nil
	}

	tx, err := d.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := d.insertChapters(ctx, tx, ruleBookId, chapters); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// ReplaceForRuleBook replaces a rule book's entire content in one
// transaction: existing chapters and rules are deleted and the new
// chapters inserted together, so a failed replace rolls back to the
// previous content instead of leaving the book partially emptied.
func (d *ChapterDAO) ReplaceForRuleBook(
	ctx context.Context,
	ruleBookId int,
	chapters []*data.Chapter,
) error {
	tx, err := d.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		`DELETE FROM rule
		WHERE chapter_id IN (SELECT id FROM chapter WHERE rule_book_id = ?)`,
		ruleBookId,
	)
	if err != nil {
		return fmt.Errorf("error deleting rules for rule book %d: %w", ruleBookId, err)
	}

	_, err = tx.ExecContext(
		ctx,
		`DELETE FROM chapter WHERE rule_book_id = ?`,
		ruleBookId,
	)
	if err != nil {
		return fmt.Errorf("error deleting chapters for rule book %d: %w", ruleBookId, err)
	}

	if err := d.insertChapters(ctx, tx, ruleBookId, chapters); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

// insertChapters inserts chapters with their rules inside the given
// transaction, writing generated ids back into the records.
func (d *ChapterDAO) insertChapters(
	ctx context.Context,
	tx *sql.Tx,
	ruleBookId int,
	chapters []*data.Chapter,
) error {
	chapterStmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO chapter(
			chapter_id, rule_book_id, number, title, section, created_timestamp
		) VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("error preparing chapter statement: %w", err)
	}
	defer chapterStmt.Close()

	ruleStmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO rule(
			rule_id, chapter_id, number, title, content, display_order,
			word_count, created_timestamp, updated_timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("error preparing rule statement: %w", err)
	}
	defer ruleStmt.Close()

	now := time.Now().UTC()

	for _, chapter := range chapters {
		chapter.Id = uuid.New().String()
		chapter.RuleBookId = ruleBookId

		res, err := chapterStmt.ExecContext(
			ctx,
			chapter.Id,
			ruleBookId,
			chapter.Number,
			chapter.Title,
			chapter.Section,
			now,
		)
		if err != nil {
			return fmt.Errorf("error inserting chapter %d: %w", chapter.Number, err)
		}

		chapterId, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("error reading chapter id: %w", err)
		}
		chapter.InternalId = int(chapterId)

		for _, rule := range chapter.Rules {
			rule.Id = uuid.New().String()
			rule.ChapterId = chapter.InternalId

			res, err := ruleStmt.ExecContext(
				ctx,
				rule.Id,
				chapter.InternalId,
				rule.Number,
				rule.Title,
				rule.Content,
				rule.DisplayOrder,
				rule.WordCount,
				now,
				now,
			)
			if err != nil {
				return fmt.Errorf("error inserting rule %s: %w", rule.Number, err)
			}

			ruleId, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("error reading rule id: %w", err)
			}
			rule.InternalId = int(ruleId)
		}
	}

	return nil
}

// FindByRuleBookId finds all chapters for a rule book, without rules,
// ordered by chapter number
func (d *ChapterDAO) FindByRuleBookId(
	ctx context.Context,
	ruleBookId int,
) ([]*data.Chapter, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT id, chapter_id, rule_book_id, number, title, section, created_timestamp
		FROM chapter
		WHERE rule_book_id = ?
		ORDER BY number`,
		ruleBookId,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding chapters by rule book: %w", err)
	}
	defer rows.Close()

	return d.scanChapters(rows)
}

// scanChapters scans multiple rows into a Chapter slice
func (d *ChapterDAO) scanChapters(rows *sql.Rows) ([]*data.Chapter, error) {
	var chapters []*data.Chapter

	for rows.Next() {
		var chapter data.Chapter
		err := rows.Scan(
			&chapter.InternalId,
			&chapter.Id,
			&chapter.RuleBookId,
			&chapter.Number,
			&chapter.Title,
			&chapter.Section,
			&chapter.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning chapter row: %w", err)
		}

		chapters = append(chapters, &chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chapter rows: %w", err)
	}

	return chapters, nil
}
