package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/theopendraft/rule-clarifier/server/data"
	"github.com/theopendraft/rule-clarifier/server/httpresponse"
	"github.com/theopendraft/rule-clarifier/server/service"
)

type RuleAPI struct {
	Router          fiber.Router
	RuleEditService *service.RuleEditService
}

func (api *RuleAPI) Register() {
	// Public endpoint to get one rule
	api.Router.Get(
		"/rules/:id", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			ruleId := c.Params("id")
			if ruleId == "" {
				return httpresponse.ApplyValidationErrorToResponse(c, "Rule id is required")
			}

			rule, err := api.RuleEditService.GetRule(ctx, ruleId)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}
			if rule == nil {
				return httpresponse.ApplyNotFoundToResponse(c, "Rule not found")
			}

			return httpresponse.ApplySuccessToResponse(c, rule)
		},
	)

	// Admin endpoint to save a rule edit. The edit is rejected without
	// a write unless both the supporting document and change reason
	// are present.
	api.Router.Put(
		"/rules/:id", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			ruleId := c.Params("id")
			if ruleId == "" {
				return httpresponse.ApplyValidationErrorToResponse(c, "Rule id is required")
			}

			var update data.RuleUpdate
			if err := c.BodyParser(&update); err != nil {
				return httpresponse.ApplyValidationErrorToResponse(c, "Invalid request body")
			}

			rule, err := api.RuleEditService.UpdateRule(ctx, ruleId, &update)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrMissingSupportingDoc),
					errors.Is(err, service.ErrMissingChangeReason):
					return httpresponse.ApplyValidationErrorToResponse(c, err.Error())
				case errors.Is(err, service.ErrRuleNotFound):
					return httpresponse.ApplyNotFoundToResponse(c, "Rule not found")
				default:
					return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
				}
			}

			return httpresponse.ApplySuccessToResponse(c, rule)
		},
	)
}
