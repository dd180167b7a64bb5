package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/theopendraft/rule-clarifier/server/httpresponse"
	"github.com/theopendraft/rule-clarifier/server/render"
	"github.com/theopendraft/rule-clarifier/server/service"
)

type RuleBookAPI struct {
	Router          fiber.Router
	RuleBookService *service.RuleBookService
}

func (api *RuleBookAPI) Register() {
	// Public endpoint to get all chapters merged across rule books
	api.Router.Get(
		"/rule-books", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			chapters, err := api.RuleBookService.LoadMergedChapters(ctx)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}

			return httpresponse.ApplySuccessToResponse(c, fiber.Map{"chapters": chapters})
		},
	)

	// Public endpoint to get one merged chapter with its rules
	api.Router.Get(
		"/chapters/:number", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			number, err := c.ParamsInt("number")
			if err != nil {
				return httpresponse.ApplyValidationErrorToResponse(c, "Chapter number must be an integer")
			}

			chapter, err := api.RuleBookService.GetChapter(ctx, number)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}
			if chapter == nil {
				return httpresponse.ApplyNotFoundToResponse(c, "Chapter not found")
			}

			return httpresponse.ApplySuccessToResponse(c, chapter)
		},
	)

	// Public endpoint to get the composed chapter document, with
	// optional search-term highlighting
	api.Router.Get(
		"/chapters/:number/view", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			number, err := c.ParamsInt("number")
			if err != nil {
				return httpresponse.ApplyValidationErrorToResponse(c, "Chapter number must be an integer")
			}

			searchTerm := c.Query("search")

			chapter, err := api.RuleBookService.GetChapter(ctx, number)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}
			if chapter == nil {
				return httpresponse.ApplyNotFoundToResponse(c, "Chapter not found")
			}

			c.Set("Content-Type", "text/html; charset=utf-8")
			return c.SendString(render.ComposeChapter(chapter, searchTerm))
		},
	)
}
