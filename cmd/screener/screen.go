package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/candidate-screener/internal/config"
	"alfredoptarigan/candidate-screener/internal/models"
	"alfredoptarigan/candidate-screener/internal/services"
	"alfredoptarigan/candidate-screener/internal/workspace"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Screen resumes against a job description",
	Long:  "Screen every resume against the job description, print the ranked results and optionally compare the top candidates or export a CSV.",
	RunE:  runScreen,
}

var (
	screenJDText      string
	screenJDFile      string
	screenResumeTexts []string
	screenResumeFiles []string
	screenCompareTop  int
	screenCSVPath     string
	screenJSON        bool
)

func init() {
	screenCmd.Flags().StringVar(&screenJDText, "jd-text", "", "Job description text")
	screenCmd.Flags().StringVar(&screenJDFile, "jd-file", "", "Path to a PDF or TXT job description")
	screenCmd.Flags().StringArrayVar(&screenResumeTexts, "resume-text", nil, "Resume text (repeatable)")
	screenCmd.Flags().StringArrayVar(&screenResumeFiles, "resume-file", nil, "Path to a PDF or TXT resume (repeatable)")
	screenCmd.Flags().IntVar(&screenCompareTop, "compare-top", 0, "Compare the N best candidates (2-5)")
	screenCmd.Flags().StringVar(&screenCSVPath, "csv", "", "Write ranked results to this CSV file")
	screenCmd.Flags().BoolVar(&screenJSON, "json", false, "Print results as JSON")

	screenCmd.MarkFlagsMutuallyExclusive("jd-text", "jd-file")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, _ []string) error {
	if screenCompareTop != 0 && (screenCompareTop < services.MinShortlist || screenCompareTop > services.MaxShortlist) {
		return fmt.Errorf("--compare-top must be between %d and %d", services.MinShortlist, services.MaxShortlist)
	}

	cfg := config.Load()

	uploadService := services.NewUploadService(cfg.Storage.MaxFileSize)
	encoder := services.NewDocumentEncoder(services.NewPDFParserService())

	geminiService, err := services.NewGeminiService(cfg.Gemini)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini: %w", err)
	}

	ws := workspace.New(services.NewScreeningService(geminiService, encoder, cfg.Screening.MaxResumes))

	if err := loadInputs(ws, uploadService); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log.Printf("🚀 Screening %d resumes...\n", len(ws.Resumes()))
	results, err := ws.Screen(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if screenJSON {
		if err := writeJSON(out, models.ScreenResponse{Results: results}); err != nil {
			return err
		}
	} else {
		printResults(out, results)
	}

	if screenCSVPath != "" {
		if err := writeCSV(screenCSVPath, results); err != nil {
			return err
		}
		log.Printf("💾 Results exported to %s\n", screenCSVPath)
	}

	if screenCompareTop == 0 {
		return nil
	}

	ranked := services.RankResults(results)
	if len(ranked) < screenCompareTop {
		return fmt.Errorf("only %d candidates screened, cannot compare top %d", len(ranked), screenCompareTop)
	}
	for _, r := range ranked[:screenCompareTop] {
		if _, err := ws.ToggleSelection(r.ID); err != nil {
			return err
		}
	}

	analysis, err := ws.Compare(ctx)
	if err != nil {
		return err
	}

	if screenJSON {
		return writeJSON(out, models.CompareResponse{Analysis: analysis})
	}
	printComparison(out, ws.Comparison().Candidates, analysis)
	return nil
}

// loadInputs fills the workspace from the command line flags. The first
// resume slot already exists in a new workspace.
func loadInputs(ws *workspace.Workspace, uploads services.UploadService) error {
	switch {
	case screenJDFile != "":
		file, err := uploads.ReadPath(screenJDFile)
		if err != nil {
			return err
		}
		ws.SetJobDescriptionFile(file)
	case screenJDText != "":
		ws.SetJobDescriptionText(screenJDText)
	default:
		return fmt.Errorf("must provide either --jd-text or --jd-file")
	}

	if len(screenResumeTexts)+len(screenResumeFiles) == 0 {
		return fmt.Errorf("must provide at least one --resume-text or --resume-file")
	}

	slot := ws.Resumes()[0].ID
	next := func() int {
		if slot != 0 {
			id := slot
			slot = 0
			return id
		}
		return ws.AddResume()
	}

	for _, text := range screenResumeTexts {
		if err := ws.SetResumeText(next(), text); err != nil {
			return err
		}
	}
	for _, path := range screenResumeFiles {
		file, err := uploads.ReadPath(path)
		if err != nil {
			return err
		}
		if err := ws.SetResumeFile(next(), file); err != nil {
			return err
		}
	}

	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, results []models.CandidateScreeningResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := services.ExportCSV(f, results); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func printResults(w io.Writer, results []models.CandidateScreeningResult) {
	for i, r := range services.RankResults(results) {
		fmt.Fprintf(w, "%d. %s  %d%% (%s)\n", i+1, r.Name, r.MatchScore, r.ScoreBand())
		fmt.Fprintf(w, "   %s\n", r.Summary)
		printList(w, "Strengths", r.Strengths)
		printList(w, "Weaknesses", r.Weaknesses)
		printList(w, "Red flags", r.RedFlags)
		fmt.Fprintln(w)
	}
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "   %s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "     - %s\n", item)
	}
}

func printComparison(w io.Writer, candidates []models.CandidateScreeningResult, analysis *models.ComparisonAnalysis) {
	fmt.Fprintln(w, "Recommendation:")
	fmt.Fprintf(w, "  %s\n\n", analysis.OverallRecommendation)

	for _, row := range analysis.ComparisonTable {
		fmt.Fprintf(w, "%s\n", row.Criteria)
		for _, c := range candidates {
			fmt.Fprintf(w, "  %s: %s\n", c.Name, workspace.ComparisonCell(row, c))
		}
		fmt.Fprintln(w, strings.Repeat("-", 40))
	}
}
