package services

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// PDFParserService reports page counts of PDFs before they are sent to the
// model. Text is never extracted locally.
type PDFParserService interface {
	Inspect(data []byte) (*PDFInfo, error)
}

type PDFInfo struct {
	PageCount int
	Size      int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) Inspect(data []byte) (info *PDFInfo, err error) {
	// the pdf package panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			info = nil
			err = fmt.Errorf("failed to open PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	totalPage := r.NumPage()
	if totalPage == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	return &PDFInfo{
		PageCount: totalPage,
		Size:      len(data),
	}, nil
}
