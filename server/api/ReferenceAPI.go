package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theopendraft/rule-clarifier/server/data"
	"github.com/theopendraft/rule-clarifier/server/httpresponse"
	"github.com/theopendraft/rule-clarifier/server/render"
)

type ReferenceAPI struct {
	Router    fiber.Router
	Navigator *render.ReferenceNavigator
}

type activateRequest struct {
	Reference string `json:"reference"`
}

func (api *ReferenceAPI) Register() {
	// Public endpoint to activate an inline reference: records the
	// transient highlight, triggers navigation and returns the
	// reference-detail payload. The highlight clears on its own after
	// the configured delay.
	api.Router.Post(
		"/references/activate", func(c *fiber.Ctx) error {
			var req activateRequest
			if err := c.BodyParser(&req); err != nil {
				return httpresponse.ApplyValidationErrorToResponse(c, "Invalid request body")
			}
			if req.Reference == "" {
				return httpresponse.ApplyValidationErrorToResponse(c, "reference is required")
			}

			description, ok := data.ReferenceCatalog[req.Reference]
			if !ok {
				return httpresponse.ApplyNotFoundToResponse(c, "Unknown reference")
			}

			ref := data.RuleReference{
				Text:        req.Reference,
				Reference:   req.Reference,
				Description: description,
			}
			api.Navigator.Activate(ref)

			return httpresponse.ApplySuccessToResponse(c, render.NavigationPayload{
				Reference:   ref.Reference,
				Description: ref.Description,
			})
		},
	)

	// Public endpoint to read the currently highlighted reference
	api.Router.Get(
		"/references/highlighted", func(c *fiber.Ctx) error {
			return httpresponse.ApplySuccessToResponse(c, fiber.Map{
				"reference": api.Navigator.Highlighted(),
			})
		},
	)
}
