package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/candidate-screener/internal/models"
)

func TestDetectMediaType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		declared string
		data     []byte
		want     string
		wantErr  bool
	}{
		{name: "pdf", filename: "cv.pdf", data: minimalPDF(), want: models.MediaTypePDF},
		{name: "pdf with wrong extension", filename: "cv.txt", data: minimalPDF(), want: models.MediaTypePDF},
		{name: "txt", filename: "cv.txt", data: []byte("Jane Doe\nGo engineer"), want: models.MediaTypeText},
		{name: "declared text", filename: "cv", declared: "text/plain; charset=utf-8", data: []byte("Jane Doe"), want: models.MediaTypeText},
		{name: "text under another extension", filename: "cv.md", data: []byte("# Jane Doe"), wantErr: true},
		{name: "zip", filename: "cv.docx", data: []byte("PK\x03\x04\x14\x00\x06\x00"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectMediaType(tt.filename, tt.declared, tt.data)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputPrecondition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jane Doe"), 0o600))

	file, err := NewUploadService(1024).ReadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "resume.txt", file.Name)
	assert.Equal(t, models.MediaTypeText, file.MediaType)
	assert.Equal(t, []byte("Jane Doe"), file.Data)
}

func TestReadPath_Errors(t *testing.T) {
	dir := t.TempDir()

	big := filepath.Join(dir, "big.txt")
	require.NoError(t, os.WriteFile(big, []byte("0123456789"), 0o600))

	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	uploads := NewUploadService(5)

	_, err := uploads.ReadPath(big)
	var fileErr *FileReadError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "big.txt", fileErr.Input)

	_, err = uploads.ReadPath(empty)
	assert.ErrorIs(t, err, ErrInputPrecondition)

	_, err = uploads.ReadPath(filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.As(err, &fileErr))
}
