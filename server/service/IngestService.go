package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2/log"

	"github.com/theopendraft/rule-clarifier/server/dao"
	"github.com/theopendraft/rule-clarifier/server/data"
	"github.com/theopendraft/rule-clarifier/server/httpclient"
	"github.com/theopendraft/rule-clarifier/server/parser"
)

type IngestService struct {
	ExtractClient   *httpclient.TextExtractClient
	RuleBookDAO     *dao.RuleBookDAO
	ChapterDAO      *dao.ChapterDAO
	UploadedFileDAO *dao.UploadedFileDAO
}

// extractResponse is the extraction service's payload.
type extractResponse struct {
	Text string `json:"text"`
}

// IngestResult reports what an ingestion run stored.
type IngestResult struct {
	RuleBookCode string `json:"ruleBookCode"`
	ChapterCount int    `json:"chapterCount"`
	RuleCount    int    `json:"ruleCount"`
	TotalWords   int    `json:"totalWords"`
}

// IngestUpload runs the full pipeline for an uploaded manual: fetch
// the extracted text from the extraction service, parse it, and
// replace the rule book's chapters with the parsed content.
func (s *IngestService) IngestUpload(
	ctx context.Context,
	bookId string,
	fileId string,
) (*IngestResult, error) {
	book, err := s.RuleBookDAO.FindById(ctx, bookId)
	if err != nil {
		return nil, fmt.Errorf("failed to find rule book %s: %w", bookId, err)
	}
	if book == nil {
		return nil, fmt.Errorf("rule book %s not found", bookId)
	}

	file, err := s.UploadedFileDAO.FindById(ctx, fileId)
	if err != nil {
		return nil, fmt.Errorf("failed to find uploaded file %s: %w", fileId, err)
	}
	if file == nil {
		return nil, fmt.Errorf("uploaded file %s not found", fileId)
	}

	text, err := s.extractText(ctx, file)
	if err != nil {
		return nil, err
	}

	return s.IngestText(ctx, book, file.Name, text)
}

// IngestText parses extracted manual text and replaces the book's
// chapters. The replace runs as one transaction: a failed ingest
// leaves the previous content in place.
func (s *IngestService) IngestText(
	ctx context.Context,
	book *data.RuleBook,
	sourceName string,
	text string,
) (*IngestResult, error) {
	s.logInfo(fmt.Sprintf("Start - Ingesting %s into book %s", sourceName, book.Code))

	manualParser := parser.NewManualParser(sourceName)
	parseResult, err := manualParser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manual text: %w", err)
	}

	err = s.ChapterDAO.ReplaceForRuleBook(ctx, book.InternalId, parseResult.Chapters)
	if err != nil {
		return nil, fmt.Errorf("failed to replace chapters for book %s: %w", book.Code, err)
	}

	ruleCount := 0
	for _, chapter := range parseResult.Chapters {
		ruleCount += len(chapter.Rules)
	}

	s.logInfo(fmt.Sprintf("Complete - %d chapters, %d rules, %d words",
		len(parseResult.Chapters), ruleCount, parseResult.TotalWords))

	return &IngestResult{
		RuleBookCode: book.Code,
		ChapterCount: len(parseResult.Chapters),
		RuleCount:    ruleCount,
		TotalWords:   parseResult.TotalWords,
	}, nil
}

// extractText fetches the extracted text for an uploaded manual.
func (s *IngestService) extractText(
	ctx context.Context,
	file *data.UploadedFile,
) (string, error) {
	if s.ExtractClient == nil || s.ExtractClient.BaseURL == "" {
		return "", fmt.Errorf("extract service not configured")
	}

	resp, err := s.ExtractClient.Extract(ctx, file.Url)
	if err != nil {
		return "", fmt.Errorf("failed to call extract service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extract service returned status %d", resp.StatusCode)
	}

	var extracted extractResponse
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&extracted); err != nil {
		return "", fmt.Errorf("failed to unmarshal extract response: %w", err)
	}

	return extracted.Text, nil
}

func (s *IngestService) logInfo(message string) {
	log.Info(fmt.Sprintf("Manual Ingest Process: %v", message))
}
