package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/theopendraft/rule-clarifier/server/dao"
	"github.com/theopendraft/rule-clarifier/server/httpresponse"
	"github.com/theopendraft/rule-clarifier/server/service"
	"github.com/theopendraft/rule-clarifier/server/upload"
)

type UploadAPI struct {
	Router          fiber.Router
	Store           *upload.Store
	UploadedFileDAO *dao.UploadedFileDAO
	IngestService   *service.IngestService
}

func (api *UploadAPI) Register() {
	// Admin endpoint to upload one supporting-document or manual PDF
	api.Router.Post(
		"/uploads", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			form, err := c.MultipartForm()
			if err != nil {
				return httpresponse.ApplyValidationErrorToResponse(c, "A multipart form with one file is required")
			}

			files := form.File["file"]
			if len(files) == 0 {
				return httpresponse.ApplyValidationErrorToResponse(c, "A file is required")
			}
			if err := api.Store.ValidateCount(len(files)); err != nil {
				return httpresponse.ApplyValidationErrorToResponse(c, err.Error())
			}

			stored, err := api.Store.Save(files[0])
			if err != nil {
				if errors.Is(err, upload.ErrNotPDF) || errors.Is(err, upload.ErrTooLarge) {
					return httpresponse.ApplyValidationErrorToResponse(c, err.Error())
				}
				return httpresponse.ApplyErrorToResponse(c, "Upload failed", err)
			}

			if err := api.UploadedFileDAO.Insert(ctx, stored); err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Upload failed", err)
			}

			return httpresponse.ApplySuccessToResponse(c, stored)
		},
	)

	// Admin endpoint to ingest an uploaded manual into a rule book
	api.Router.Post(
		"/rule-books/:id/ingest", func(c *fiber.Ctx) error {
			ctx := c.UserContext()

			bookId := c.Params("id")
			fileId := c.Query("fileId")
			if fileId == "" {
				return httpresponse.ApplyValidationErrorToResponse(c, "fileId parameter is required")
			}

			result, err := api.IngestService.IngestUpload(ctx, bookId, fileId)
			if err != nil {
				return httpresponse.ApplyErrorToResponse(c, "Unexpected error", err)
			}

			return httpresponse.ApplySuccessToResponse(c, result)
		},
	)
}
