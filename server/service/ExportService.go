package service

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2/log"

	"github.com/theopendraft/rule-clarifier/server/data"
	"github.com/theopendraft/rule-clarifier/server/httpclient"
	"github.com/theopendraft/rule-clarifier/server/render"
)

type ExportService struct {
	RuleBookService *RuleBookService
	PDFClient       *httpclient.PDFRenderClient
}

// ExportResult is a downloadable chapter document. PDF reports whether
// the PDF service produced it; when false the payload is the HTML
// document itself, the deliberate fallback.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
	PDF         bool
}

// ExportChapter serializes a chapter into an HTML document and asks
// the PDF service to render it. Any service failure degrades to
// returning the HTML document; the caller never sees an error for
// that path.
func (s *ExportService) ExportChapter(
	ctx context.Context,
	number int,
) (*ExportResult, error) {
	chapter, err := s.RuleBookService.GetChapter(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to load chapter %d: %w", number, err)
	}
	if chapter == nil {
		return nil, fmt.Errorf("chapter %d not found", number)
	}

	html := render.ComposeChapter(chapter, "")
	filename := fmt.Sprintf("chapter-%d.pdf", number)

	pdf, err := s.renderPDF(ctx, html, filename)
	if err != nil {
		s.logInfo(fmt.Sprintf("PDF service unavailable for chapter %d, falling back to HTML: %v", number, err))
		return s.htmlFallback(chapter, html), nil
	}

	return &ExportResult{
		Data:        pdf,
		ContentType: "application/pdf",
		Filename:    filename,
		PDF:         true,
	}, nil
}

func (s *ExportService) renderPDF(
	ctx context.Context,
	html string,
	filename string,
) ([]byte, error) {
	if s.PDFClient == nil || s.PDFClient.BaseURL == "" {
		return nil, fmt.Errorf("pdf service not configured")
	}

	resp, err := s.PDFClient.Render(ctx, html, filename)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pdf service returned status %d", resp.StatusCode)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf response: %w", err)
	}

	return pdf, nil
}

func (s *ExportService) htmlFallback(chapter *data.Chapter, html string) *ExportResult {
	return &ExportResult{
		Data:        []byte(html),
		ContentType: "text/html; charset=utf-8",
		Filename:    fmt.Sprintf("chapter-%d.html", chapter.Number),
		PDF:         false,
	}
}

func (s *ExportService) logInfo(message string) {
	log.Info(fmt.Sprintf("Chapter Export Process: %v", message))
}
