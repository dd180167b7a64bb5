package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/theopendraft/rule-clarifier/server/dao"
	"github.com/theopendraft/rule-clarifier/server/data"
)

type AmendmentService struct {
	AmendmentDAO *dao.AmendmentDAO
	RuleDAO      *dao.RuleDAO
}

// GetHistory returns the amendment history of a rule, newest first.
func (s *AmendmentService) GetHistory(
	ctx context.Context,
	ruleId string,
) ([]*data.Amendment, error) {
	rule, err := s.RuleDAO.FindById(ctx, ruleId)
	if err != nil {
		return nil, fmt.Errorf("failed to find rule %s: %w", ruleId, err)
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}

	amendments, err := s.AmendmentDAO.FindByRuleId(ctx, rule.InternalId)
	if err != nil {
		return nil, fmt.Errorf("failed to find amendments for rule %s: %w", ruleId, err)
	}

	return amendments, nil
}

// GetSummary aggregates amendment activity per chapter over a window.
func (s *AmendmentService) GetSummary(
	ctx context.Context,
	startDate time.Time,
	endDate time.Time,
) ([]*data.AmendmentSummary, error) {
	amendments, err := s.AmendmentDAO.FindByDateRange(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to find amendments: %w", err)
	}

	byChapter := make(map[int]*data.AmendmentSummary)
	rulesTouched := make(map[int]map[string]bool)

	for _, amendment := range amendments {
		summary, ok := byChapter[amendment.ChapterNumber]
		if !ok {
			summary = &data.AmendmentSummary{
				ChapterNumber: amendment.ChapterNumber,
				FirstChange:   amendment.CreatedAt,
				LastChange:    amendment.CreatedAt,
			}
			byChapter[amendment.ChapterNumber] = summary
			rulesTouched[amendment.ChapterNumber] = make(map[string]bool)
		}

		summary.AmendmentCount++
		rulesTouched[amendment.ChapterNumber][amendment.RuleNumber] = true

		if amendment.CreatedAt.Before(summary.FirstChange) {
			summary.FirstChange = amendment.CreatedAt
		}
		if amendment.CreatedAt.After(summary.LastChange) {
			summary.LastChange = amendment.CreatedAt
		}
	}

	summaries := make([]*data.AmendmentSummary, 0, len(byChapter))
	for number, summary := range byChapter {
		summary.RulesTouched = len(rulesTouched[number])
		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ChapterNumber < summaries[j].ChapterNumber
	})

	return summaries, nil
}

// GenerateReport generates a human-readable report of amendment
// activity over a window.
func (s *AmendmentService) GenerateReport(
	ctx context.Context,
	startDate time.Time,
	endDate time.Time,
) (string, error) {
	summaries, err := s.GetSummary(ctx, startDate, endDate)
	if err != nil {
		return "", err
	}

	var report strings.Builder
	report.WriteString(fmt.Sprintf("Rule Amendment Report: %s to %s\n\n",
		startDate.Format("2006-01-02"),
		endDate.Format("2006-01-02")))

	totalAmendments := 0
	totalRules := 0

	for _, summary := range summaries {
		totalAmendments += summary.AmendmentCount
		totalRules += summary.RulesTouched

		report.WriteString(fmt.Sprintf("Chapter %d:\n", summary.ChapterNumber))
		report.WriteString(fmt.Sprintf("  Amendments: %d across %d rules\n",
			summary.AmendmentCount,
			summary.RulesTouched))
		report.WriteString(fmt.Sprintf("  First change: %s, last change: %s\n\n",
			summary.FirstChange.Format("2006-01-02"),
			summary.LastChange.Format("2006-01-02")))
	}

	report.WriteString("Total across all chapters:\n")
	report.WriteString(fmt.Sprintf("  Amendments: %d\n", totalAmendments))
	report.WriteString(fmt.Sprintf("  Rules touched: %d\n", totalRules))

	s.logInfo(fmt.Sprintf("Generated report covering %d chapters", len(summaries)))

	return report.String(), nil
}

func (s *AmendmentService) logInfo(message string) {
	log.Info(fmt.Sprintf("Amendment Process: %v", message))
}
