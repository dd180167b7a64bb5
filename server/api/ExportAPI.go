package api

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/theopendraft/rule-clarifier/server/httpresponse"
	"github.com/theopendraft/rule-clarifier/server/service"
)

type ExportAPI struct {
	Router        fiber.Router
	ExportService *service.ExportService
}

func (api *ExportAPI) Register() {
	// Public endpoint to download a chapter. Responds with a PDF when
	// the rendering service succeeds, otherwise with the HTML document.
	api.Router.Get(
		"/chapters/:number/download", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			number, err := c.ParamsInt("number")
			if err != nil {
				return httpresponse.ApplyValidationErrorToResponse(c, "Chapter number must be an integer")
			}

			result, err := api.ExportService.ExportChapter(ctx, number)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}

			c.Set("Content-Type", result.ContentType)
			c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, result.Filename))
			return c.Send(result.Data)
		},
	)
}
