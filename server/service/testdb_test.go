package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/theopendraft/rule-clarifier/server/dao"
	"github.com/theopendraft/rule-clarifier/server/data"
)

// newTestDB opens a fresh in-memory database with the schema applied.
// The pool is pinned to one connection so the memory database survives
// for the whole test.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	require.NoError(t, dao.InitSchema(context.Background(), db))

	t.Cleanup(func() { db.Close() })
	return db
}

// seedBook inserts a rule book and returns it with ids populated.
func seedBook(t *testing.T, db *sql.DB, code string) *data.RuleBook {
	t.Helper()

	bookDAO := &dao.RuleBookDAO{Db: db}
	require.NoError(t, bookDAO.Insert(context.Background(), &data.RuleBook{
		Code:  code,
		Title: code,
	}))

	book, err := bookDAO.FindByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, book)
	return book
}

// seedChapter inserts one chapter with the given rules.
func seedChapter(t *testing.T, db *sql.DB, book *data.RuleBook, number int, rules ...*data.Rule) *data.Chapter {
	t.Helper()

	for i, rule := range rules {
		if rule.DisplayOrder == 0 {
			rule.DisplayOrder = i + 1
		}
	}
	chapter := &data.Chapter{
		Number: number,
		Title:  "Chapter title",
		Rules:  rules,
	}

	chapterDAO := &dao.ChapterDAO{Db: db}
	require.NoError(t, chapterDAO.BatchInsert(context.Background(), book.InternalId, []*data.Chapter{chapter}))
	return chapter
}
