package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/candidate-screener/internal/models"
)

func newTestBuilder() *PromptBuilder {
	return NewPromptBuilder(NewDocumentEncoder(NewPDFParserService()))
}

func TestBuildScreeningRequest_PartOrder(t *testing.T) {
	builder := newTestBuilder()

	resumes := []models.Resume{
		{ID: 1, Source: models.TextSource{Text: "first resume"}},
		{ID: 2, Source: models.FileSource{File: pdfFile("second.pdf")}},
		{ID: 3, Source: models.TextSource{Text: "third resume"}},
	}

	req, err := builder.BuildScreeningRequest(context.Background(), models.JobDescriptionFromText("Senior Go engineer"), resumes)
	require.NoError(t, err)

	assert.Equal(t, OperationScreen, req.Operation)
	require.Len(t, req.Parts, 3+2*len(resumes)+1)

	assert.Equal(t, screeningPreamble, req.Parts[0].Text)
	assert.Equal(t, "Senior Go engineer", req.Parts[1].Text)
	assert.Contains(t, req.Parts[2].Text, "CANDIDATE RESUMES")

	for i := range resumes {
		label := req.Parts[3+2*i]
		assert.Equal(t, ResumeLabel(i+1), label.Text)
	}

	assert.Equal(t, "first resume", req.Parts[4].Text)
	require.True(t, req.Parts[6].IsDocument())
	assert.Equal(t, models.MediaTypePDF, req.Parts[6].Document.MediaType)
	assert.Equal(t, "third resume", req.Parts[8].Text)

	assert.Equal(t, screeningClosing, req.Parts[len(req.Parts)-1].Text)
}

func TestBuildScreeningRequest_ManyFilesKeepOrder(t *testing.T) {
	builder := newTestBuilder()

	resumes := make([]models.Resume, 10)
	for i := range resumes {
		resumes[i] = models.Resume{
			ID:     i + 1,
			Source: models.FileSource{File: textFile(fmt.Sprintf("r%d.txt", i+1), fmt.Sprintf("resume body %d", i+1))},
		}
	}

	req, err := builder.BuildScreeningRequest(context.Background(), models.JobDescriptionFromFile(pdfFile("jd.pdf")), resumes)
	require.NoError(t, err)

	require.True(t, req.Parts[1].IsDocument())
	for i := range resumes {
		part := req.Parts[4+2*i]
		require.True(t, part.IsDocument())
		data, err := DecodeDocument(part.Document)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("resume body %d", i+1), string(data))
	}
}

func TestBuildScreeningRequest_EncodingFailureNamesInput(t *testing.T) {
	builder := NewPromptBuilder(failingEncoder{
		DocumentEncoder: NewDocumentEncoder(NewPDFParserService()),
		failName:        "broken.txt",
	})

	resumes := []models.Resume{
		{ID: 1, Source: models.TextSource{Text: "ok"}},
		{ID: 2, Source: models.FileSource{File: textFile("broken.txt", "x")}},
	}

	_, err := builder.BuildScreeningRequest(context.Background(), models.JobDescriptionFromText("jd"), resumes)

	var fileErr *FileReadError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "resume 2", fileErr.Input)
}

func TestBuildScreeningRequest_MissingSource(t *testing.T) {
	builder := newTestBuilder()

	_, err := builder.BuildScreeningRequest(context.Background(), models.JobDescription{}, []models.Resume{
		{ID: 1, Source: models.TextSource{Text: "ok"}},
	})
	assert.ErrorIs(t, err, ErrInputPrecondition)
}

func TestBuildComparisonRequest(t *testing.T) {
	builder := newTestBuilder()

	shortlist := []models.CandidateScreeningResult{
		{Name: "Jane Doe", MatchScore: 90, Summary: "Strong Go", Strengths: []string{"Go", "Kubernetes"}, Weaknesses: []string{"No Rust"}},
		{Name: "John Roe", MatchScore: 70, Summary: "Solid", Strengths: []string{"Python"}, Weaknesses: []string{"Little Go", "No cloud"}},
	}

	t.Run("text job description", func(t *testing.T) {
		req, err := builder.BuildComparisonRequest(context.Background(), models.JobDescriptionFromText("Senior Go engineer"), shortlist)
		require.NoError(t, err)

		assert.Equal(t, OperationCompare, req.Operation)
		require.Len(t, req.Parts, 1)

		prompt := req.Parts[0].Text
		assert.Contains(t, prompt, "Senior Go engineer")
		assert.Contains(t, prompt, "CANDIDATE: Jane Doe\nMATCH SCORE: 90\nSUMMARY: Strong Go\nSTRENGTHS: Go, Kubernetes\nWEAKNESSES: No Rust\n")
		assert.Contains(t, prompt, "WEAKNESSES: Little Go, No cloud")
		assert.NotContains(t, prompt, JobDescriptionFilePlaceholder)
	})

	t.Run("file job description", func(t *testing.T) {
		req, err := builder.BuildComparisonRequest(context.Background(), models.JobDescriptionFromFile(pdfFile("jd.pdf")), shortlist)
		require.NoError(t, err)

		require.Len(t, req.Parts, 2)
		assert.Contains(t, req.Parts[0].Text, JobDescriptionFilePlaceholder)
		require.True(t, req.Parts[1].IsDocument())
		assert.Equal(t, models.MediaTypePDF, req.Parts[1].Document.MediaType)
	})
}

func TestFormatCandidateSummaries_Separator(t *testing.T) {
	out := FormatCandidateSummaries([]models.CandidateScreeningResult{{Name: "A"}, {Name: "B"}})
	assert.Equal(t, 1, strings.Count(out, "\n---\n"))
}
