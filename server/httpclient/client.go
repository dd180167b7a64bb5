package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PDFRenderClient talks to the external HTML-to-PDF rendering service.
type PDFRenderClient struct {
	BaseURL string
	Client  *http.Client
}

// NewPDFRenderClient creates a client for the PDF service.
func NewPDFRenderClient(baseURL string) *PDFRenderClient {
	return &PDFRenderClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// RenderRequest is the payload the PDF service accepts.
type RenderRequest struct {
	Html     string `json:"html"`
	Filename string `json:"filename"`
}

// Render posts an HTML document for rendering. The caller owns the
// response body; a non-200 status is the caller's signal to fall back.
func (c *PDFRenderClient) Render(
	ctx context.Context,
	html string,
	filename string,
) (*http.Response, error) {
	payload, err := json.Marshal(RenderRequest{Html: html, Filename: filename})
	if err != nil {
		return nil, fmt.Errorf("error marshalling render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error building render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling pdf service: %w", err)
	}

	return resp, nil
}

// TextExtractClient talks to the external PDF text-extraction service.
type TextExtractClient struct {
	BaseURL string
	Client  *http.Client
}

// NewTextExtractClient creates a client for the extraction service.
func NewTextExtractClient(baseURL string) *TextExtractClient {
	return &TextExtractClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 120 * time.Second},
	}
}

// ExtractRequest points the extraction service at a stored upload.
type ExtractRequest struct {
	Url string `json:"url"`
}

// Extract asks the service to extract text from the PDF at the given
// url. The caller owns the response body and decodes the payload.
func (c *TextExtractClient) Extract(
	ctx context.Context,
	fileUrl string,
) (*http.Response, error) {
	payload, err := json.Marshal(ExtractRequest{Url: fileUrl})
	if err != nil {
		return nil, fmt.Errorf("error marshalling extract request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error building extract request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling extract service: %w", err)
	}

	return resp, nil
}
