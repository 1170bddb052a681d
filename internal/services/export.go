package services

import (
	"cmp"
	"encoding/csv"
	"io"
	"slices"
	"strconv"
	"strings"

	"alfredoptarigan/candidate-screener/internal/models"
)

const ExportFilename = "resume-screening-results.csv"

var exportHeader = []string{
	"Rank",
	"Name",
	"Matching Percentage",
	"Summary",
	"Strengths",
	"Weaknesses",
	"Red Flags",
}

// RankResults returns a copy of results ordered by match score, highest
// first. Ties keep their original order.
func RankResults(results []models.CandidateScreeningResult) []models.CandidateScreeningResult {
	ranked := slices.Clone(results)
	slices.SortStableFunc(ranked, func(a, b models.CandidateScreeningResult) int {
		return cmp.Compare(b.MatchScore, a.MatchScore)
	})
	return ranked
}

// ExportCSV writes ranked results as CSV. List cells hold one item per line.
func ExportCSV(w io.Writer, results []models.CandidateScreeningResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(exportHeader); err != nil {
		return err
	}

	for i, r := range RankResults(results) {
		row := []string{
			strconv.Itoa(i + 1),
			r.Name,
			strconv.Itoa(r.MatchScore),
			r.Summary,
			strings.Join(r.Strengths, "\n"),
			strings.Join(r.Weaknesses, "\n"),
			strings.Join(r.RedFlags, "\n"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
