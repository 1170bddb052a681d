// Package workspace holds one user's screening session: the inputs being
// edited, the last screening run, the shortlist and its comparison.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"alfredoptarigan/candidate-screener/internal/models"
	"alfredoptarigan/candidate-screener/internal/services"
)

var (
	ErrBusy           = errors.New("an operation of this kind is already running")
	ErrShortlistFull  = fmt.Errorf("at most %d candidates can be selected", services.MaxShortlist)
	ErrResumeNotFound = errors.New("resume not found")
	ErrLastResume     = errors.New("the last resume cannot be removed")
	ErrResultNotFound = errors.New("result not found")
)

type ScreeningStatus string

const (
	ScreeningIdle      ScreeningStatus = "idle"
	ScreeningLoading   ScreeningStatus = "loading"
	ScreeningSucceeded ScreeningStatus = "succeeded"
	ScreeningFailed    ScreeningStatus = "failed"
)

type ComparisonStatus string

const (
	ComparisonClosed    ComparisonStatus = "closed"
	ComparisonLoading   ComparisonStatus = "loading"
	ComparisonSucceeded ComparisonStatus = "succeeded"
	ComparisonFailed    ComparisonStatus = "failed"
)

type ScreeningState struct {
	Status  ScreeningStatus
	Results []models.CandidateScreeningResult
	Err     error
}

type ComparisonState struct {
	Status     ComparisonStatus
	Candidates []models.CandidateScreeningResult
	Analysis   *models.ComparisonAnalysis
	Err        error
}

type Workspace struct {
	service services.ScreeningService

	mu             sync.Mutex
	jobDescription models.JobDescription
	resumes        []models.Resume
	nextResumeID   int
	screening      ScreeningState
	comparison     ComparisonState
	selected       []string
}

// New returns a workspace with a single empty resume.
func New(service services.ScreeningService) *Workspace {
	w := &Workspace{
		service:        service,
		jobDescription: models.JobDescriptionFromText(""),
		nextResumeID:   1,
		screening:      ScreeningState{Status: ScreeningIdle},
		comparison:     ComparisonState{Status: ComparisonClosed},
	}
	w.AddResume()
	return w
}

func (w *Workspace) SetJobDescriptionText(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.jobDescription = models.JobDescriptionFromText(text)
}

func (w *Workspace) SetJobDescriptionFile(file models.File) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.jobDescription = models.JobDescriptionFromFile(file)
}

func (w *Workspace) JobDescription() models.JobDescription {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.jobDescription
}

// AddResume appends an empty resume and returns its ID.
func (w *Workspace) AddResume() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextResumeID
	w.nextResumeID++
	w.resumes = append(w.resumes, models.Resume{ID: id, Source: models.TextSource{}})
	return id
}

func (w *Workspace) RemoveResume(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.resumeIndex(id)
	if i < 0 {
		return ErrResumeNotFound
	}
	if len(w.resumes) == 1 {
		return ErrLastResume
	}
	w.resumes = slices.Delete(w.resumes, i, i+1)
	return nil
}

// SetResumeText replaces the resume's content with text, dropping any file.
func (w *Workspace) SetResumeText(id int, text string) error {
	return w.setResumeSource(id, models.TextSource{Text: text})
}

// SetResumeFile replaces the resume's content with a file, dropping any text.
func (w *Workspace) SetResumeFile(id int, file models.File) error {
	return w.setResumeSource(id, models.FileSource{File: file})
}

func (w *Workspace) setResumeSource(id int, source models.Source) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.resumeIndex(id)
	if i < 0 {
		return ErrResumeNotFound
	}
	w.resumes[i].Source = source
	return nil
}

func (w *Workspace) resumeIndex(id int) int {
	return slices.IndexFunc(w.resumes, func(r models.Resume) bool {
		return r.ID == id
	})
}

func (w *Workspace) Resumes() []models.Resume {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.resumes)
}

// CanScreen reports whether a screening run may start now.
func (w *Workspace) CanScreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.screening.Status != ScreeningLoading &&
		w.jobDescription.Provided() &&
		len(services.UsableResumes(w.resumes)) > 0
}

// Screen runs a screening over the current inputs. Previous results and the
// selection are cleared when the run starts. Inputs edited while the run is
// in flight do not affect it.
func (w *Workspace) Screen(ctx context.Context) ([]models.CandidateScreeningResult, error) {
	w.mu.Lock()
	if w.screening.Status == ScreeningLoading {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	jobDescription := w.jobDescription
	resumes := slices.Clone(w.resumes)
	w.screening = ScreeningState{Status: ScreeningLoading}
	w.selected = nil
	w.mu.Unlock()

	results, err := w.service.ScreenCandidates(ctx, jobDescription, resumes)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		log.Printf("❌ Screening failed: %v\n", err)
		w.screening = ScreeningState{Status: ScreeningFailed, Err: err}
		return nil, err
	}
	w.screening = ScreeningState{Status: ScreeningSucceeded, Results: results}
	return slices.Clone(results), nil
}

func (w *Workspace) Screening() ScreeningState {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.screening
	s.Results = slices.Clone(s.Results)
	return s
}

// ToggleSelection selects or deselects a screening result by ID and reports
// whether it is selected afterwards.
func (w *Workspace) ToggleSelection(resultID string) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if i := slices.Index(w.selected, resultID); i >= 0 {
		w.selected = slices.Delete(w.selected, i, i+1)
		return false, nil
	}

	if w.resultIndex(resultID) < 0 {
		return false, ErrResultNotFound
	}
	if len(w.selected) >= services.MaxShortlist {
		return false, ErrShortlistFull
	}
	w.selected = append(w.selected, resultID)
	return true, nil
}

func (w *Workspace) IsSelected(resultID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Contains(w.selected, resultID)
}

// Shortlist returns the selected results in selection order.
func (w *Workspace) Shortlist() []models.CandidateScreeningResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shortlist()
}

func (w *Workspace) shortlist() []models.CandidateScreeningResult {
	out := make([]models.CandidateScreeningResult, 0, len(w.selected))
	for _, id := range w.selected {
		if i := w.resultIndex(id); i >= 0 {
			out = append(out, w.screening.Results[i])
		}
	}
	return out
}

func (w *Workspace) resultIndex(id string) int {
	return slices.IndexFunc(w.screening.Results, func(r models.CandidateScreeningResult) bool {
		return r.ID == id
	})
}

// Compare runs a head-to-head comparison of the current shortlist. A
// shortlist outside the allowed size fails the comparison without calling
// the model.
func (w *Workspace) Compare(ctx context.Context) (*models.ComparisonAnalysis, error) {
	w.mu.Lock()
	if w.comparison.Status == ComparisonLoading {
		w.mu.Unlock()
		return nil, ErrBusy
	}
	jobDescription := w.jobDescription
	shortlist := w.shortlist()
	w.comparison = ComparisonState{Status: ComparisonLoading, Candidates: shortlist}
	w.mu.Unlock()

	analysis, err := w.service.CompareCandidates(ctx, jobDescription, shortlist)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		log.Printf("❌ Comparison failed: %v\n", err)
		w.comparison = ComparisonState{Status: ComparisonFailed, Candidates: shortlist, Err: err}
		return nil, err
	}
	w.comparison = ComparisonState{Status: ComparisonSucceeded, Candidates: shortlist, Analysis: analysis}
	return analysis, nil
}

func (w *Workspace) Comparison() ComparisonState {
	w.mu.Lock()
	defer w.mu.Unlock()
	c := w.comparison
	c.Candidates = slices.Clone(c.Candidates)
	return c
}

// CloseComparison discards the comparison outcome. A running comparison
// still finishes and records its result.
func (w *Workspace) CloseComparison() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.comparison.Status == ComparisonLoading {
		return
	}
	w.comparison = ComparisonState{Status: ComparisonClosed}
}

// ComparisonCell returns what to show for one candidate in one row.
func ComparisonCell(row models.ComparisonRow, candidate models.CandidateScreeningResult) string {
	if assessment, ok := row.AssessmentFor(candidate); ok {
		return assessment
	}
	return models.NotApplicable
}
