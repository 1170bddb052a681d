package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/candidate-screener/internal/models"
	"alfredoptarigan/candidate-screener/internal/services"
	"alfredoptarigan/candidate-screener/internal/workspace"
)

type noopService struct{}

func (noopService) ScreenCandidates(context.Context, models.JobDescription, []models.Resume) ([]models.CandidateScreeningResult, error) {
	return nil, nil
}

func (noopService) CompareCandidates(context.Context, models.JobDescription, []models.CandidateScreeningResult) (*models.ComparisonAnalysis, error) {
	return nil, nil
}

func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		screenJDText, screenJDFile = "", ""
		screenResumeTexts, screenResumeFiles = nil, nil
	})
}

func TestLoadInputs(t *testing.T) {
	resetFlags(t)

	dir := t.TempDir()
	resumePath := filepath.Join(dir, "alex.txt")
	require.NoError(t, os.WriteFile(resumePath, []byte("Alex Kim"), 0o600))

	screenJDText = "Senior Go engineer"
	screenResumeTexts = []string{"Jane Doe", "John Roe"}
	screenResumeFiles = []string{resumePath}

	ws := workspace.New(noopService{})
	require.NoError(t, loadInputs(ws, services.NewUploadService(1024)))

	assert.Equal(t, models.JobDescriptionFromText("Senior Go engineer"), ws.JobDescription())

	resumes := ws.Resumes()
	require.Len(t, resumes, 3)
	assert.Equal(t, models.TextSource{Text: "Jane Doe"}, resumes[0].Source)
	assert.Equal(t, models.TextSource{Text: "John Roe"}, resumes[1].Source)

	file, ok := resumes[2].Source.(models.FileSource)
	require.True(t, ok)
	assert.Equal(t, "alex.txt", file.File.Name)
}

func TestLoadInputs_Missing(t *testing.T) {
	resetFlags(t)

	ws := workspace.New(noopService{})
	assert.Error(t, loadInputs(ws, services.NewUploadService(1024)))

	screenJDText = "jd"
	assert.Error(t, loadInputs(ws, services.NewUploadService(1024)))
}

func TestPrintComparison(t *testing.T) {
	candidates := []models.CandidateScreeningResult{
		{ID: "a", Name: "Jane Doe"},
		{ID: "b", Name: "John Roe"},
	}
	analysis := &models.ComparisonAnalysis{
		OverallRecommendation: "Hire Jane.",
		ComparisonTable: []models.ComparisonRow{{
			Criteria:    "Go",
			Assessments: []models.Assessment{{Name: "Jane Doe", Assessment: "Expert", CandidateID: "a"}},
		}},
	}

	var buf bytes.Buffer
	printComparison(&buf, candidates, analysis)

	out := buf.String()
	assert.Contains(t, out, "Hire Jane.")
	assert.Contains(t, out, "Jane Doe: Expert")
	assert.Contains(t, out, "John Roe: "+models.NotApplicable)
}

func TestPrintResults_Ranked(t *testing.T) {
	var buf bytes.Buffer
	printResults(&buf, []models.CandidateScreeningResult{
		{Name: "John Roe", MatchScore: 40},
		{Name: "Jane Doe", MatchScore: 88, Strengths: []string{"Go"}},
	})

	out := buf.String()
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Jane Doe")), bytes.Index(buf.Bytes(), []byte("John Roe")))
	assert.Contains(t, out, "1. Jane Doe  88% (strong)")
	assert.Contains(t, out, "     - Go")
}
