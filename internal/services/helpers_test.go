package services

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"alfredoptarigan/candidate-screener/internal/models"
)

// minimalPDF builds a valid one-page PDF with a correct xref table.
func minimalPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

func textFile(name, text string) models.File {
	return models.File{Name: name, MediaType: models.MediaTypeText, Data: []byte(text)}
}

func pdfFile(name string) models.File {
	return models.File{Name: name, MediaType: models.MediaTypePDF, Data: minimalPDF()}
}

// fakeGemini records every request and answers with a canned response.
type fakeGemini struct {
	mu       sync.Mutex
	response string
	err      error
	requests []*Request
	schemas  []*genai.Schema
}

func (f *fakeGemini) GenerateStructured(_ context.Context, req *Request, schema *genai.Schema) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	f.schemas = append(f.schemas, schema)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeGemini) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// failingEncoder fails for files with the given name.
type failingEncoder struct {
	DocumentEncoder
	failName string
}

func (e failingEncoder) Encode(file models.File) (*EncodedDocument, error) {
	if file.Name == e.failName {
		return nil, fmt.Errorf("unreadable")
	}
	return e.DocumentEncoder.Encode(file)
}
