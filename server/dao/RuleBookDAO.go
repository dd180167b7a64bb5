package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theopendraft/rule-clarifier/server/data"
)

type RuleBookDAO struct {
	Db *sql.DB
}

// Insert inserts a new rule book
func (d *RuleBookDAO) Insert(
	ctx context.Context,
	book *data.RuleBook,
) error {
	id := uuid.New().String()

	_, err := d.Db.ExecContext(
		ctx,
		`INSERT INTO rule_book(book_id, code, title, created_timestamp)
		VALUES (?, ?, ?, ?)`,
		id,
		book.Code,
		book.Title,
		time.Now().UTC(),
	)

	if err != nil {
		return fmt.Errorf("error inserting rule book: %w", err)
	}

	return nil
}

// FindAll finds all rule books ordered by code
func (d *RuleBookDAO) FindAll(
	ctx context.Context,
) ([]*data.RuleBook, error) {
	rows, err := d.Db.QueryContext(
		ctx,
		`SELECT id, book_id, code, title, created_timestamp
		FROM rule_book
		ORDER BY code`,
	)
	if err != nil {
		return nil, fmt.Errorf("error finding rule books: %w", err)
	}
	defer rows.Close()

	var books []*data.RuleBook
	for rows.Next() {
		var book data.RuleBook
		err := rows.Scan(
			&book.InternalId,
			&book.Id,
			&book.Code,
			&book.Title,
			&book.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning rule book row: %w", err)
		}

		books = append(books, &book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rule book rows: %w", err)
	}

	return books, nil
}

// FindByCode finds a rule book by its code
func (d *RuleBookDAO) FindByCode(
	ctx context.Context,
	code string,
) (*data.RuleBook, error) {
	var book data.RuleBook
	err := d.Db.QueryRowContext(
		ctx,
		`SELECT id, book_id, code, title, created_timestamp
		FROM rule_book
		WHERE code = ?`,
		code,
	).Scan(
		&book.InternalId,
		&book.Id,
		&book.Code,
		&book.Title,
		&book.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding rule book by code: %w", err)
	}

	return &book, nil
}

// FindById finds a rule book by its external id
func (d *RuleBookDAO) FindById(
	ctx context.Context,
	bookId string,
) (*data.RuleBook, error) {
	var book data.RuleBook
	err := d.Db.QueryRowContext(
		ctx,
		`SELECT id, book_id, code, title, created_timestamp
		FROM rule_book
		WHERE book_id = ?`,
		bookId,
	).Scan(
		&book.InternalId,
		&book.Id,
		&book.Code,
		&book.Title,
		&book.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding rule book by id: %w", err)
	}

	return &book, nil
}
