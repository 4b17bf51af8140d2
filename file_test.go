package intakekit

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFile(t *testing.T) {
	f := NewFile("a.png", -1, "image/png")
	assert.Equal(t, int64(0), f.Size)
	assert.False(t, f.HasContent())

	_, err := f.Open()
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestFileFromBytes(t *testing.T) {
	f := FileFromBytes("cake.png", pngHeader, "")
	assert.Equal(t, "image/png", f.MIMEType)
	assert.Equal(t, int64(len(pngHeader)), f.Size)
	require.True(t, f.HasContent())

	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	declared := FileFromBytes("cake.png", pngHeader, "image/x-custom")
	assert.Equal(t, "image/x-custom", declared.MIMEType)
}

func TestFileFromPath(t *testing.T) {
	dir := t.TempDir()

	// sniffed content beats a misleading extension
	disguised := filepath.Join(dir, "photo.txt")
	require.NoError(t, os.WriteFile(disguised, pngHeader, 0o644))

	f, err := FileFromPath(disguised)
	require.NoError(t, err)
	assert.Equal(t, "photo.txt", f.Name)
	assert.Equal(t, int64(len(pngHeader)), f.Size)
	assert.Equal(t, "image/png", f.MIMEType)

	// plain text content defers to the extension
	csv := filepath.Join(dir, "menu.csv")
	require.NoError(t, os.WriteFile(csv, []byte("dish,price\nsoup,4\n"), 0o644))
	f, err = FileFromPath(csv)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", f.MIMEType)

	_, err = FileFromPath(filepath.Join(dir, "missing.png"))
	var intakeErr *IntakeError
	require.ErrorAs(t, err, &intakeErr)
	assert.Equal(t, "stat", intakeErr.Op)

	_, err = FileFromPath(dir)
	assert.Error(t, err)
}

func TestFileFromHeader(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		data        []byte
		want        string
	}{
		{"declared type kept", "image/jpeg", pngHeader, "image/jpeg"},
		{"missing type sniffed", "", pngHeader, "image/png"},
		{"generic type sniffed", "application/octet-stream", pngHeader, "image/png"},
		{"parameters stripped", "text/plain; charset=utf-8", []byte("hi"), "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fh := multipartHeader(t, "upload.bin", tt.contentType, tt.data)

			f, err := FileFromHeader(fh)
			require.NoError(t, err)
			assert.Equal(t, "upload.bin", f.Name)
			assert.Equal(t, int64(len(tt.data)), f.Size)
			assert.Equal(t, tt.want, f.MIMEType)
			assert.True(t, f.HasContent())
		})
	}
}

func TestGuessContentType(t *testing.T) {
	assert.Equal(t, "image/png", GuessContentType("x.bin", pngHeader))
	assert.Equal(t, "image/jpeg", GuessContentType("x.JPG", nil))
	assert.Equal(t, MIMETypeOctetStream, GuessContentType("noext", nil))
	assert.Equal(t, "application/pdf", GuessContentType("menu", []byte("%PDF-1.4\n")))
}

func multipartHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	files := req.MultipartForm.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
