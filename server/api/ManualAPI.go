package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theopendraft/rule-clarifier/server/httpresponse"
	"github.com/theopendraft/rule-clarifier/server/service"
)

type ManualAPI struct {
	Router        fiber.Router
	ManualService *service.ManualService
}

func (api *ManualAPI) Register() {
	// Public endpoint to list reference manuals
	api.Router.Get(
		"/manuals", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			manuals, err := api.ManualService.ListManuals(ctx)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}

			return httpresponse.ApplySuccessToResponse(c, manuals)
		},
	)

	// Public endpoint to list circulars
	api.Router.Get(
		"/circulars", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			circulars, err := api.ManualService.ListCirculars(ctx)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}

			return httpresponse.ApplySuccessToResponse(c, circulars)
		},
	)
}
