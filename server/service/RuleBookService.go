package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2/log"

	"github.com/theopendraft/rule-clarifier/server/dao"
	"github.com/theopendraft/rule-clarifier/server/data"
)

type RuleBookService struct {
	RuleBookDAO *dao.RuleBookDAO
	ChapterDAO  *dao.ChapterDAO
	RuleDAO     *dao.RuleDAO
}

// LoadMergedChapters loads the chapters of every rule book, merges
// them by chapter number and returns them sorted ascending. When two
// books carry the same chapter number, the variant with more rules
// wins.
func (s *RuleBookService) LoadMergedChapters(
	ctx context.Context,
) ([]*data.Chapter, error) {
	books, err := s.RuleBookDAO.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find rule books: %w", err)
	}

	var all []*data.Chapter
	for _, book := range books {
		chapters, err := s.loadBookChapters(ctx, book)
		if err != nil {
			return nil, err
		}
		all = append(all, chapters...)
	}

	merged := MergeChapters(all)
	s.logInfo(fmt.Sprintf("Merged %d chapters from %d rule books into %d", len(all), len(books), len(merged)))

	return merged, nil
}

// GetChapter returns one merged chapter by number, or nil when no rule
// book carries it.
func (s *RuleBookService) GetChapter(
	ctx context.Context,
	number int,
) (*data.Chapter, error) {
	chapters, err := s.LoadMergedChapters(ctx)
	if err != nil {
		return nil, err
	}

	for _, chapter := range chapters {
		if chapter.Number == number {
			return chapter, nil
		}
	}

	return nil, nil
}

// loadBookChapters loads the chapters of one book with rules attached.
func (s *RuleBookService) loadBookChapters(
	ctx context.Context,
	book *data.RuleBook,
) ([]*data.Chapter, error) {
	chapters, err := s.ChapterDAO.FindByRuleBookId(ctx, book.InternalId)
	if err != nil {
		return nil, fmt.Errorf("failed to find chapters for book %s: %w", book.Code, err)
	}

	for _, chapter := range chapters {
		rules, err := s.RuleDAO.FindByChapterId(ctx, chapter.InternalId)
		if err != nil {
			return nil, fmt.Errorf("failed to find rules for chapter %d of book %s: %w",
				chapter.Number, book.Code, err)
		}
		chapter.Rules = rules
	}

	return chapters, nil
}

// MergeChapters de-duplicates chapters by number, keeping the variant
// with more rules, and sorts the result by number ascending.
func MergeChapters(chapters []*data.Chapter) []*data.Chapter {
	byNumber := make(map[int]*data.Chapter)
	for _, chapter := range chapters {
		existing, ok := byNumber[chapter.Number]
		if !ok || len(chapter.Rules) > len(existing.Rules) {
			byNumber[chapter.Number] = chapter
		}
	}

	merged := make([]*data.Chapter, 0, len(byNumber))
	for _, chapter := range byNumber {
		merged = append(merged, chapter)
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].Number < merged[j].Number })

	return merged
}

func (s *RuleBookService) logInfo(message string) {
	log.Info(fmt.Sprintf("Rule Book Process: %v", message))
}
