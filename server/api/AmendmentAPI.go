package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/theopendraft/rule-clarifier/server/httpresponse"
	"github.com/theopendraft/rule-clarifier/server/service"
)

type AmendmentAPI struct {
	Router           fiber.Router
	AmendmentService *service.AmendmentService
}

func (api *AmendmentAPI) Register() {
	// Public endpoint to get the amendment history of a rule
	api.Router.Get(
		"/rules/:id/amendments", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			ruleId := c.Params("id")
			if ruleId == "" {
				return httpresponse.ApplyValidationErrorToResponse(c, "Rule id is required")
			}

			amendments, err := api.AmendmentService.GetHistory(ctx, ruleId)
			if err != nil {
				if errors.Is(err, service.ErrRuleNotFound) {
					return httpresponse.ApplyNotFoundToResponse(c, "Rule not found")
				}
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}

			return httpresponse.ApplySuccessToResponse(c, amendments)
		},
	)

	// Public endpoint to get the per-chapter amendment summary
	api.Router.Get(
		"/amendments/summary", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			startDate, endDate, err := parseDateRange(c)
			if err != nil {
				return httpresponse.ApplyValidationErrorToResponse(c, err.Error())
			}

			summaries, err := api.AmendmentService.GetSummary(ctx, startDate, endDate)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}

			return httpresponse.ApplySuccessToResponse(c, summaries)
		},
	)

	// Public endpoint to generate an amendment report
	api.Router.Get(
		"/amendments/report", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			startDate, endDate, err := parseDateRange(c)
			if err != nil {
				return httpresponse.ApplyValidationErrorToResponse(c, err.Error())
			}

			report, err := api.AmendmentService.GenerateReport(ctx, startDate, endDate)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}

			// Return as plain text
			c.Set("Content-Type", "text/plain")
			return c.SendString(report)
		},
	)
}

// parseDateRange reads the required startDate/endDate query parameters
// (format: YYYY-MM-DD). The end date is extended to the end of its day
// so the range is inclusive.
func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	startDateStr := c.Query("startDate")
	endDateStr := c.Query("endDate")

	if startDateStr == "" || endDateStr == "" {
		return time.Time{}, time.Time{}, errors.New("startDate and endDate parameters are required (format: YYYY-MM-DD)")
	}

	startDate, err := time.Parse("2006-01-02", startDateStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("Invalid startDate format. Use YYYY-MM-DD")
	}

	endDate, err := time.Parse("2006-01-02", endDateStr)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("Invalid endDate format. Use YYYY-MM-DD")
	}

	return startDate, endDate.Add(24*time.Hour - time.Nanosecond), nil
}
