package services

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"alfredoptarigan/candidate-screener/internal/models"
)

// UploadService reads user documents into memory. Nothing is written to disk.
type UploadService interface {
	ReadUpload(file *multipart.FileHeader) (models.File, error)
	ReadPath(path string) (models.File, error)
}

type uploadService struct {
	maxFileSize int64
}

func NewUploadService(maxFileSize int64) UploadService {
	return &uploadService{
		maxFileSize: maxFileSize,
	}
}

// ReadUpload implements UploadService.
func (s *uploadService) ReadUpload(file *multipart.FileHeader) (models.File, error) {
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return models.File{}, preconditionError("%s is too large. Max size: %d bytes", file.Filename, s.maxFileSize)
	}

	src, err := file.Open()
	if err != nil {
		return models.File{}, &FileReadError{Input: file.Filename, Err: err}
	}
	defer src.Close()

	data, err := s.readLimited(src)
	if err != nil {
		return models.File{}, &FileReadError{Input: file.Filename, Err: err}
	}

	return s.toFile(file.Filename, file.Header.Get("Content-Type"), data)
}

// ReadPath implements UploadService.
func (s *uploadService) ReadPath(path string) (models.File, error) {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return models.File{}, &FileReadError{Input: name, Err: err}
	}
	defer f.Close()

	data, err := s.readLimited(f)
	if err != nil {
		return models.File{}, &FileReadError{Input: name, Err: err}
	}

	return s.toFile(name, "", data)
}

func (s *uploadService) readLimited(r io.Reader) ([]byte, error) {
	if s.maxFileSize <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("file exceeds %d bytes", s.maxFileSize)
	}
	return data, nil
}

func (s *uploadService) toFile(name, declared string, data []byte) (models.File, error) {
	if len(data) == 0 {
		return models.File{}, preconditionError("%s is empty", name)
	}

	mediaType, err := DetectMediaType(name, declared, data)
	if err != nil {
		return models.File{}, err
	}

	return models.File{
		Name:      name,
		MediaType: mediaType,
		Data:      data,
	}, nil
}

// DetectMediaType decides whether a document is a PDF or plain text from its
// content. Text is accepted only from .txt (or extensionless) files or when
// declared as text/plain; everything else is rejected.
func DetectMediaType(filename, declared string, data []byte) (string, error) {
	detected := mimetype.Detect(data)

	if detected.Is(models.MediaTypePDF) {
		return models.MediaTypePDF, nil
	}

	if isText(detected) {
		ext := strings.ToLower(filepath.Ext(filename))
		if ext == ".txt" || ext == "" || baseMediaType(declared) == models.MediaTypeText {
			return models.MediaTypeText, nil
		}
	}

	return "", preconditionError("unsupported file type for %s (%s). Please upload a PDF or TXT file", filename, detected.String())
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is(models.MediaTypeText) {
			return true
		}
	}
	return false
}

func baseMediaType(declared string) string {
	if declared == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return ""
	}
	return mediaType
}
