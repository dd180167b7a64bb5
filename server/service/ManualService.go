package service

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/theopendraft/rule-clarifier/server/concurrent"
	"github.com/theopendraft/rule-clarifier/server/dao"
	"github.com/theopendraft/rule-clarifier/server/data"
)

type ManualService struct {
	ManualDAO   *dao.ManualDAO
	CircularDAO *dao.CircularDAO
}

// referenceSeedEntry is one built-in manual or circular for the seed
// upsert. Exactly one of the two fields is set.
type referenceSeedEntry struct {
	manual   *data.Manual
	circular *data.Circular
}

func referenceSeedEntries() []referenceSeedEntry {
	return []referenceSeedEntry{
		{manual: &data.Manual{
			Code:        "IRPWM",
			Title:       "Indian Railways Permanent Way Manual",
			Description: seedText("Maintenance of track, works affecting the line and patrolling."),
		}},
		{manual: &data.Manual{
			Code:        "G&SR",
			Title:       "General and Subsidiary Rules",
			Description: seedText("General rules for working of trains and subsidiary rules of the zone."),
		}},
		{manual: &data.Manual{
			Code:        "IRSEM",
			Title:       "Indian Railways Signal Engineering Manual",
			Description: seedText("Installation, maintenance and testing of signalling installations."),
		}},
		{circular: &data.Circular{
			Code:        "JPO-CAUTION",
			Title:       "Joint Procedure Order on issue of caution orders",
			Description: seedText("Procedure for imposing and cancelling speed restrictions."),
			Number:      seedText("JPO/Optg/04"),
		}},
		{circular: &data.Circular{
			Code:        "SC-AUTO-SIG",
			Title:       "Safety circular on working through automatic signalling sections",
			Description: seedText("Duties of the loco pilot and guard when signals are blank or at danger."),
			Number:      seedText("SC/11"),
		}},
	}
}

func seedText(s string) *string {
	return &s
}

// SeedReferenceData upserts the built-in reference manuals and
// circulars through the bounded-concurrency runner. Entries already
// present are updated in place, so repeated runs are safe.
func (s *ManualService) SeedReferenceData(ctx context.Context) error {
	entries := referenceSeedEntries()

	runner := concurrent.NewRunner[referenceSeedEntry, string](concurrent.RunnerConfig{
		MaxConcurrency: 2,
		LogPrefix:      "Reference Seed",
	})

	result := runner.Run(entries, func(
		entry referenceSeedEntry,
		messages chan<- string,
		results chan<- string,
		errors chan<- error,
	) {
		switch {
		case entry.manual != nil:
			if err := s.ManualDAO.Insert(ctx, entry.manual); err != nil {
				errors <- fmt.Errorf("manual %s: %w", entry.manual.Code, err)
				return
			}
			messages <- fmt.Sprintf("Seeded manual %s", entry.manual.Code)
			results <- entry.manual.Code
		case entry.circular != nil:
			if err := s.CircularDAO.Insert(ctx, entry.circular); err != nil {
				errors <- fmt.Errorf("circular %s: %w", entry.circular.Code, err)
				return
			}
			messages <- fmt.Sprintf("Seeded circular %s", entry.circular.Code)
			results <- entry.circular.Code
		}
	})

	if len(result.Errors) > 0 {
		return fmt.Errorf("seeded %d of %d reference entries: %w",
			len(result.Results), len(entries), result.Errors[0])
	}

	s.logInfo(fmt.Sprintf("Seeded %d reference entries", len(result.Results)))

	return nil
}

// ListManuals returns all reference manuals.
func (s *ManualService) ListManuals(ctx context.Context) ([]*data.Manual, error) {
	manuals, err := s.ManualDAO.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find manuals: %w", err)
	}
	return manuals, nil
}

// ListCirculars returns all circulars.
func (s *ManualService) ListCirculars(ctx context.Context) ([]*data.Circular, error) {
	circulars, err := s.CircularDAO.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find circulars: %w", err)
	}
	return circulars, nil
}

func (s *ManualService) logInfo(message string) {
	log.Info(fmt.Sprintf("Reference Data Process: %v", message))
}
