package services

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"alfredoptarigan/candidate-screener/internal/models"
)

const (
	opScreen  = "screen candidates"
	opCompare = "compare candidates"
)

// ResultMapper turns model output into results. It never returns partial
// data: any problem fails the whole response.
type ResultMapper struct {
	newID func() string
}

func NewResultMapper() *ResultMapper {
	return &ResultMapper{newID: uuid.NewString}
}

// ParseScreeningResults parses a screening response. expected is the number
// of resumes submitted; a different number of results is a contract
// violation.
func (m *ResultMapper) ParseScreeningResults(raw string, expected int) ([]models.CandidateScreeningResult, error) {
	text := cleanJSON(raw)

	if !gjson.Valid(text) {
		return nil, contractError(opScreen, "response is not valid JSON")
	}
	if !gjson.Parse(text).IsArray() {
		return nil, contractError(opScreen, "expected a JSON array of candidate results")
	}

	if err := ValidateDocument(ScreeningSchema(), text); err != nil {
		return nil, contractError(opScreen, "%w", err)
	}

	var results []models.CandidateScreeningResult
	if err := json.Unmarshal([]byte(text), &results); err != nil {
		return nil, contractError(opScreen, "failed to unmarshal results: %w", err)
	}

	if len(results) != expected {
		return nil, contractError(opScreen, "expected %d results, got %d", expected, len(results))
	}

	for i := range results {
		results[i].ID = m.newID()
		results[i].Position = i + 1
	}

	return results, nil
}

// ParseComparison parses a comparison response and links every assessment
// whose name matches exactly one shortlisted candidate to that candidate.
func (m *ResultMapper) ParseComparison(raw string, shortlist []models.CandidateScreeningResult) (*models.ComparisonAnalysis, error) {
	text := cleanJSON(raw)

	if !gjson.Valid(text) {
		return nil, contractError(opCompare, "response is not valid JSON")
	}
	if !gjson.Parse(text).IsObject() {
		return nil, contractError(opCompare, "expected a JSON object")
	}

	if err := ValidateDocument(ComparisonSchema(), text); err != nil {
		return nil, contractError(opCompare, "%w", err)
	}

	var analysis models.ComparisonAnalysis
	if err := json.Unmarshal([]byte(text), &analysis); err != nil {
		return nil, contractError(opCompare, "failed to unmarshal analysis: %w", err)
	}

	idsByName := make(map[string][]string, len(shortlist))
	for _, c := range shortlist {
		idsByName[c.Name] = append(idsByName[c.Name], c.ID)
	}

	for r := range analysis.ComparisonTable {
		row := &analysis.ComparisonTable[r]
		for a := range row.Assessments {
			assessment := &row.Assessments[a]
			assessment.CandidateID = ""

			ids := idsByName[assessment.Name]
			switch {
			case len(ids) == 1:
				assessment.CandidateID = ids[0]
			case len(ids) > 1:
				log.Printf("⚠️  Assessment for %q in %q matches %d candidates\n", assessment.Name, row.Criteria, len(ids))
			}
		}
	}

	return &analysis, nil
}

// cleanJSON strips a markdown code fence the model may wrap around JSON.
func cleanJSON(input string) string {
	clean := strings.TrimSpace(input)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")

	return strings.TrimSpace(clean)
}
