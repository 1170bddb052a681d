package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"alfredoptarigan/candidate-screener/internal/models"
)

type Operation string

const (
	OperationScreen  Operation = "screen"
	OperationCompare Operation = "compare"
)

// ContentPart is one unit of a request: literal text or an encoded document.
type ContentPart struct {
	Text     string           `json:"text,omitempty"`
	Document *EncodedDocument `json:"document,omitempty"`
}

func TextPart(text string) ContentPart {
	return ContentPart{Text: text}
}

func (p ContentPart) IsDocument() bool {
	return p.Document != nil
}

// Request is the ordered sequence of parts sent for one operation.
type Request struct {
	Operation Operation
	Parts     []ContentPart
}

const screeningPreamble = `You are an expert technical recruiter with 20 years of experience. Your task is to analyze candidate resumes against a provided job description. Evaluate each candidate strictly based on the provided texts. Do not invent information.

**JOB DESCRIPTION:**
---
`

const screeningDivider = `
---

**CANDIDATE RESUMES:**
`

const screeningClosing = `
For each resume, provide a detailed analysis in JSON format according to the provided schema. The JSON must be an array of objects, one for each candidate resume provided, in the same order as the resumes.`

// JobDescriptionFilePlaceholder replaces the job description text in the
// comparison prompt when the description was supplied as a document.
const JobDescriptionFilePlaceholder = "Provided as a file."

type PromptBuilder struct {
	encoder DocumentEncoder
}

func NewPromptBuilder(encoder DocumentEncoder) *PromptBuilder {
	return &PromptBuilder{encoder: encoder}
}

// BuildScreeningRequest creates the request asking for one result per resume.
// Resumes keep their input order.
func (pb *PromptBuilder) BuildScreeningRequest(ctx context.Context, jobDescription models.JobDescription, resumes []models.Resume) (*Request, error) {
	inputs := make([]sourceInput, 0, len(resumes)+1)
	inputs = append(inputs, sourceInput{name: "job description", source: jobDescription.Source})
	for i, resume := range resumes {
		inputs = append(inputs, sourceInput{name: fmt.Sprintf("resume %d", i+1), source: resume.Source})
	}

	encoded, err := pb.encodeAll(ctx, inputs)
	if err != nil {
		return nil, err
	}

	parts := make([]ContentPart, 0, 2*len(resumes)+4)
	parts = append(parts, TextPart(screeningPreamble), encoded[0], TextPart(screeningDivider))
	for i := range resumes {
		parts = append(parts, TextPart(ResumeLabel(i+1)), encoded[i+1])
	}
	parts = append(parts, TextPart(screeningClosing))

	return &Request{Operation: OperationScreen, Parts: parts}, nil
}

// BuildComparisonRequest creates the head-to-head request for a shortlist.
// The shortlist size is checked by the caller.
func (pb *PromptBuilder) BuildComparisonRequest(ctx context.Context, jobDescription models.JobDescription, shortlist []models.CandidateScreeningResult) (*Request, error) {
	jdText := JobDescriptionFilePlaceholder
	if src, ok := jobDescription.Source.(models.TextSource); ok {
		jdText = src.Text
	}

	prompt := fmt.Sprintf(`You are an experienced hiring manager responsible for making a final decision. Your task is to compare a shortlist of candidates for a specific role.

First, review the job description carefully. Then, review the provided summaries for each shortlisted candidate.

Provide a final recommendation and a detailed, side-by-side comparison table. Focus on the most critical requirements from the job description.

**JOB DESCRIPTION:**
---
%s
---

**SHORTLISTED CANDIDATES:**
---
%s
---

Please provide your analysis in JSON format according to the schema.`,
		jdText, FormatCandidateSummaries(shortlist))

	parts := []ContentPart{TextPart(prompt)}

	if jobDescription.IsFile() {
		encoded, err := pb.encodeAll(ctx, []sourceInput{{name: "job description", source: jobDescription.Source}})
		if err != nil {
			return nil, err
		}
		parts = append(parts, encoded[0])
	}

	return &Request{Operation: OperationCompare, Parts: parts}, nil
}

func ResumeLabel(n int) string {
	return fmt.Sprintf("\n\n--- RESUME %d ---\n", n)
}

// FormatCandidateSummaries condenses screening results for the comparison prompt.
func FormatCandidateSummaries(results []models.CandidateScreeningResult) string {
	summaries := make([]string, 0, len(results))
	for _, r := range results {
		summaries = append(summaries, fmt.Sprintf("CANDIDATE: %s\nMATCH SCORE: %d\nSUMMARY: %s\nSTRENGTHS: %s\nWEAKNESSES: %s\n",
			r.Name, r.MatchScore, r.Summary,
			strings.Join(r.Strengths, ", "),
			strings.Join(r.Weaknesses, ", ")))
	}

	return strings.Join(summaries, "\n---\n")
}

type sourceInput struct {
	name   string
	source models.Source
}

// encodeAll turns every source into a content part. Files are encoded
// concurrently; the result keeps input order.
func (pb *PromptBuilder) encodeAll(ctx context.Context, inputs []sourceInput) ([]ContentPart, error) {
	for _, in := range inputs {
		if in.source == nil {
			return nil, preconditionError("%s has no content", in.name)
		}
	}

	parts := make([]ContentPart, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		switch src := in.source.(type) {
		case models.TextSource:
			parts[i] = TextPart(src.Text)
		case models.FileSource:
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				doc, err := pb.encoder.Encode(src.File)
				if err != nil {
					return &FileReadError{Input: in.name, Err: err}
				}
				parts[i] = ContentPart{Document: doc}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return parts, nil
}
