package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theopendraft/rule-clarifier/server/dao"
	"github.com/theopendraft/rule-clarifier/server/data"
	"github.com/theopendraft/rule-clarifier/server/httpclient"
)

func exportFixture(t *testing.T) *ExportService {
	db := newTestDB(t)

	book := seedBook(t, db, "GSR")
	seedChapter(t, db, book, 4, &data.Rule{
		Number: "4.09", Title: "Caution Orders", Content: "<p>Body</p>",
	})

	return &ExportService{
		RuleBookService: &RuleBookService{
			RuleBookDAO: &dao.RuleBookDAO{Db: db},
			ChapterDAO:  &dao.ChapterDAO{Db: db},
			RuleDAO:     &dao.RuleDAO{Db: db},
		},
	}
}

func TestExportChapter_PDF(t *testing.T) {
	svc := exportFixture(t)

	pdfBytes := []byte("%PDF-1.7 fake")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req httpclient.RenderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Html, `id="rule-4.09"`)
		assert.Equal(t, "chapter-4.pdf", req.Filename)

		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdfBytes)
	}))
	defer server.Close()

	svc.PDFClient = httpclient.NewPDFRenderClient(server.URL)

	result, err := svc.ExportChapter(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, result.PDF)
	assert.Equal(t, pdfBytes, result.Data)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "chapter-4.pdf", result.Filename)
}

func TestExportChapter_FallsBackToHTMLOnServiceError(t *testing.T) {
	svc := exportFixture(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc.PDFClient = httpclient.NewPDFRenderClient(server.URL)

	result, err := svc.ExportChapter(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, result.PDF)
	assert.Equal(t, "text/html; charset=utf-8", result.ContentType)
	assert.Equal(t, "chapter-4.html", result.Filename)
	assert.Contains(t, string(result.Data), "Caution Orders")
}

func TestExportChapter_FallsBackWhenUnconfigured(t *testing.T) {
	svc := exportFixture(t)

	result, err := svc.ExportChapter(context.Background(), 4)
	require.NoError(t, err)
	assert.False(t, result.PDF)
}

func TestExportChapter_UnknownChapter(t *testing.T) {
	svc := exportFixture(t)

	_, err := svc.ExportChapter(context.Background(), 99)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
