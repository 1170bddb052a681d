package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	"alfredoptarigan/candidate-screener/internal/models"
)

// EncodedDocument is a file in transport form: base64 data plus its media type.
type EncodedDocument struct {
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type DocumentEncoder interface {
	Encode(file models.File) (*EncodedDocument, error)
}

type documentEncoder struct {
	pdfParser PDFParserService
}

func NewDocumentEncoder(pdfParser PDFParserService) DocumentEncoder {
	return &documentEncoder{pdfParser: pdfParser}
}

// SupportedMediaType reports whether the model accepts documents of this type.
func SupportedMediaType(mediaType string) bool {
	return mediaType == models.MediaTypePDF || mediaType == models.MediaTypeText
}

// Encode implements DocumentEncoder.
func (e *documentEncoder) Encode(file models.File) (*EncodedDocument, error) {
	if !SupportedMediaType(file.MediaType) {
		return nil, fmt.Errorf("unsupported media type %q", file.MediaType)
	}

	if len(file.Data) == 0 {
		return nil, errors.New("file is empty")
	}

	// The model reads the PDF itself; the local probe only informs the log.
	if file.MediaType == models.MediaTypePDF {
		info, err := e.pdfParser.Inspect(file.Data)
		if err != nil {
			log.Printf("⚠️  %s: could not inspect PDF, sending as is: %v\n", displayName(file), err)
		} else {
			log.Printf("📄 %s: %d pages, %d bytes\n", displayName(file), info.PageCount, info.Size)
		}
	}

	return &EncodedDocument{
		MediaType: file.MediaType,
		Data:      base64.StdEncoding.EncodeToString(file.Data),
	}, nil
}

// DecodeDocument returns the raw bytes of an encoded document.
func DecodeDocument(doc *EncodedDocument) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return data, nil
}

func displayName(file models.File) string {
	if file.Name == "" {
		return "document"
	}
	return file.Name
}
