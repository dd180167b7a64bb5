package upload

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// formFile builds a parsed multipart file header the way a request
// handler would receive it.
func formFile(t *testing.T, filename string, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func newTestStore(t *testing.T, maxSize int64) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir(), maxSize, 1)
	require.NoError(t, err)
	return store
}

func TestStore_SavePDF(t *testing.T) {
	store := newTestStore(t, 16<<20)

	header := formFile(t, "circular.pdf", "application/pdf", []byte("%PDF-1.7 data"))

	stored, err := store.Save(header)
	require.NoError(t, err)
	assert.Equal(t, "circular.pdf", stored.Name)
	assert.Equal(t, int64(len("%PDF-1.7 data")), stored.Size)
	assert.Equal(t, "application/pdf", stored.Type)
	assert.True(t, strings.HasPrefix(stored.Url, "/uploads/"))
	assert.True(t, strings.HasSuffix(stored.Url, "_circular.pdf"))

	// The file landed on disk under its stored name
	onDisk, err := os.ReadFile(filepath.Join(store.Dir(), strings.TrimPrefix(stored.Url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.7 data"), onDisk)
}

func TestStore_AcceptsPDFByExtension(t *testing.T) {
	store := newTestStore(t, 16<<20)

	header := formFile(t, "circular.PDF", "application/octet-stream", []byte("%PDF-1.7"))

	_, err := store.Save(header)
	assert.NoError(t, err)
}

func TestStore_RejectsNonPDF(t *testing.T) {
	store := newTestStore(t, 16<<20)

	header := formFile(t, "notes.txt", "text/plain", []byte("not a pdf"))

	_, err := store.Save(header)
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestStore_RejectsOversizedFile(t *testing.T) {
	store := newTestStore(t, 8)

	header := formFile(t, "big.pdf", "application/pdf", []byte("more than eight bytes"))

	_, err := store.Save(header)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestStore_ValidateCount(t *testing.T) {
	store := newTestStore(t, 16<<20)

	assert.NoError(t, store.ValidateCount(1))
	assert.ErrorIs(t, store.ValidateCount(2), ErrTooManyFiles)
}
