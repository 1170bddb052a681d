package models

// NotApplicable is shown for a comparison cell with no assessment.
const NotApplicable = "not applicable"

type ScoreBand string

const (
	BandStrong   ScoreBand = "strong"
	BandModerate ScoreBand = "moderate"
	BandWeak     ScoreBand = "weak"
)

// CandidateScreeningResult is the model's verdict for one resume.
// ID and Position are assigned locally and are not part of the model output.
type CandidateScreeningResult struct {
	ID         string   `json:"id,omitempty"`
	Position   int      `json:"position,omitempty"`
	Name       string   `json:"name" validate:"required"`
	MatchScore int      `json:"match_score" validate:"min=0,max=100"`
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	RedFlags   []string `json:"red_flags"`
}

func (r CandidateScreeningResult) ScoreBand() ScoreBand {
	switch {
	case r.MatchScore >= 75:
		return BandStrong
	case r.MatchScore >= 50:
		return BandModerate
	default:
		return BandWeak
	}
}

type ComparisonAnalysis struct {
	OverallRecommendation string          `json:"overall_recommendation"`
	ComparisonTable       []ComparisonRow `json:"comparison_table"`
}

type ComparisonRow struct {
	Criteria    string       `json:"criteria"`
	Assessments []Assessment `json:"assessments"`
}

type Assessment struct {
	Name        string `json:"name"`
	Assessment  string `json:"assessment"`
	CandidateID string `json:"candidate_id,omitempty"`
}

// AssessmentFor finds the row's assessment of a candidate. Assessments
// resolved to an ID win; otherwise the name must match exactly one
// unresolved assessment.
func (r ComparisonRow) AssessmentFor(candidate CandidateScreeningResult) (string, bool) {
	if candidate.ID != "" {
		for _, a := range r.Assessments {
			if a.CandidateID == candidate.ID {
				return a.Assessment, true
			}
		}
	}

	var match string
	count := 0
	for _, a := range r.Assessments {
		if a.CandidateID == "" && a.Name == candidate.Name {
			match = a.Assessment
			count++
		}
	}
	if count == 1 {
		return match, true
	}
	return "", false
}
