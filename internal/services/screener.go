package services

import (
	"context"
	"fmt"
	"log"

	"alfredoptarigan/candidate-screener/internal/models"
)

const (
	MinShortlist = 2
	MaxShortlist = 5
)

// ScreeningService exposes the two operations offered to callers.
type ScreeningService interface {
	ScreenCandidates(ctx context.Context, jobDescription models.JobDescription, resumes []models.Resume) ([]models.CandidateScreeningResult, error)
	CompareCandidates(ctx context.Context, jobDescription models.JobDescription, shortlist []models.CandidateScreeningResult) (*models.ComparisonAnalysis, error)
}

type screeningService struct {
	geminiService GeminiService
	promptBuilder *PromptBuilder
	mapper        *ResultMapper
	maxResumes    int
}

// NewScreeningService wires the request builder, model adapter and mapper.
// maxResumes <= 0 disables the resume count limit.
func NewScreeningService(
	geminiService GeminiService,
	encoder DocumentEncoder,
	maxResumes int,
) ScreeningService {
	return &screeningService{
		geminiService: geminiService,
		promptBuilder: NewPromptBuilder(encoder),
		mapper:        NewResultMapper(),
		maxResumes:    maxResumes,
	}
}

// UsableResumes drops resumes that have neither text nor a file.
func UsableResumes(resumes []models.Resume) []models.Resume {
	usable := make([]models.Resume, 0, len(resumes))
	for _, r := range resumes {
		if r.Usable() {
			usable = append(usable, r)
		}
	}
	return usable
}

// ScreenCandidates implements ScreeningService.
func (s *screeningService) ScreenCandidates(ctx context.Context, jobDescription models.JobDescription, resumes []models.Resume) ([]models.CandidateScreeningResult, error) {
	if !jobDescription.Provided() {
		return nil, preconditionError("please provide a job description")
	}

	usable := UsableResumes(resumes)
	if len(usable) == 0 {
		return nil, preconditionError("please provide at least one resume")
	}
	if s.maxResumes > 0 && len(usable) > s.maxResumes {
		return nil, preconditionError("too many resumes: %d (max %d)", len(usable), s.maxResumes)
	}

	log.Printf("🔄 Screening %d resumes\n", len(usable))

	req, err := s.promptBuilder.BuildScreeningRequest(ctx, jobDescription, usable)
	if err != nil {
		log.Printf("❌ Failed to build screening request: %v\n", err)
		return nil, fmt.Errorf("failed to build screening request: %w", err)
	}

	log.Printf("📝 Screening request: %d parts\n", len(req.Parts))

	response, err := s.geminiService.GenerateStructured(ctx, req, ScreeningSchema())
	if err != nil {
		return nil, err
	}

	results, err := s.mapper.ParseScreeningResults(response, len(usable))
	if err != nil {
		log.Printf("❌ Failed to parse screening response: %v\n", err)
		return nil, err
	}

	log.Printf("✅ Screening completed: %d candidates\n", len(results))
	return results, nil
}

// CompareCandidates implements ScreeningService.
func (s *screeningService) CompareCandidates(ctx context.Context, jobDescription models.JobDescription, shortlist []models.CandidateScreeningResult) (*models.ComparisonAnalysis, error) {
	if len(shortlist) < MinShortlist || len(shortlist) > MaxShortlist {
		return nil, preconditionError("select %d to %d candidates to compare, got %d", MinShortlist, MaxShortlist, len(shortlist))
	}
	if !jobDescription.Provided() {
		return nil, preconditionError("please provide a job description")
	}

	log.Printf("🔄 Comparing %d candidates\n", len(shortlist))

	req, err := s.promptBuilder.BuildComparisonRequest(ctx, jobDescription, shortlist)
	if err != nil {
		log.Printf("❌ Failed to build comparison request: %v\n", err)
		return nil, fmt.Errorf("failed to build comparison request: %w", err)
	}

	response, err := s.geminiService.GenerateStructured(ctx, req, ComparisonSchema())
	if err != nil {
		return nil, err
	}

	analysis, err := s.mapper.ParseComparison(response, shortlist)
	if err != nil {
		log.Printf("❌ Failed to parse comparison response: %v\n", err)
		return nil, err
	}

	log.Printf("✅ Comparison completed: %d criteria\n", len(analysis.ComparisonTable))
	return analysis, nil
}
