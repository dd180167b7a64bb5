package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/theopendraft/rule-clarifier/server/dao"
	"github.com/theopendraft/rule-clarifier/server/data"
)

// Validation errors for the edit gate. Both inputs are required before
// any write is issued.
var (
	ErrMissingSupportingDoc = errors.New("a supporting document reference is required")
	ErrMissingChangeReason  = errors.New("a change reason is required")
	ErrRuleNotFound         = errors.New("rule not found")
)

type RuleEditService struct {
	RuleDAO      *dao.RuleDAO
	AmendmentDAO *dao.AmendmentDAO
}

// UpdateRule applies an edit to a rule after the validation gate:
// the save is rejected, with no write of any kind, unless both a
// supporting document reference and a non-empty change reason are
// present. On success the rule is updated and an amendment audit
// entry records the change. Last writer wins; there is no version
// check.
func (s *RuleEditService) UpdateRule(
	ctx context.Context,
	ruleId string,
	update *data.RuleUpdate,
) (*data.Rule, error) {
	if err := ValidateRuleUpdate(update); err != nil {
		return nil, err
	}

	rule, err := s.RuleDAO.FindById(ctx, ruleId)
	if err != nil {
		return nil, fmt.Errorf("failed to find rule %s: %w", ruleId, err)
	}
	if rule == nil {
		return nil, ErrRuleNotFound
	}

	chapterNumber, err := s.RuleDAO.ChapterNumberForRule(ctx, rule.InternalId)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chapter for rule %s: %w", ruleId, err)
	}

	oldTitle := rule.Title
	oldContent := rule.Content

	err = s.RuleDAO.Update(ctx, rule.InternalId, update.Title, update.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to update rule %s: %w", ruleId, err)
	}

	amendment := &data.Amendment{
		RuleId:        rule.InternalId,
		RuleNumber:    rule.Number,
		ChapterNumber: chapterNumber,
		OldTitle:      oldTitle,
		NewTitle:      update.Title,
		OldContent:    oldContent,
		NewContent:    update.Content,
		SupportingDoc: update.SupportingDoc,
		ChangeReason:  update.ChangeReason,
		DocType:       update.DocType,
	}
	if update.UploadedFile != nil {
		amendment.UploadedFileUrl = &update.UploadedFile.Url
	}

	err = s.AmendmentDAO.Insert(ctx, amendment)
	if err != nil {
		// The rule update already landed; surface the audit failure
		// rather than silently losing the trail.
		return nil, fmt.Errorf("failed to record amendment for rule %s: %w", ruleId, err)
	}

	rule.Title = update.Title
	rule.Content = update.Content

	s.logInfo(fmt.Sprintf("Updated rule %s in chapter %d", rule.Number, chapterNumber))

	return rule, nil
}

// GetRule returns one rule by external id, or nil when it does not exist.
func (s *RuleEditService) GetRule(
	ctx context.Context,
	ruleId string,
) (*data.Rule, error) {
	rule, err := s.RuleDAO.FindById(ctx, ruleId)
	if err != nil {
		return nil, fmt.Errorf("failed to find rule %s: %w", ruleId, err)
	}
	return rule, nil
}

// ValidateRuleUpdate enforces the save gate without touching storage.
func ValidateRuleUpdate(update *data.RuleUpdate) error {
	if strings.TrimSpace(update.SupportingDoc) == "" {
		return ErrMissingSupportingDoc
	}
	if strings.TrimSpace(update.ChangeReason) == "" {
		return ErrMissingChangeReason
	}
	return nil
}

func (s *RuleEditService) logInfo(message string) {
	log.Info(fmt.Sprintf("Rule Edit Process: %v", message))
}
