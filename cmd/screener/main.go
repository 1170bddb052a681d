// Package main provides the command line front end of the candidate screener.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screener",
	Short: "AI resume screener",
	Long:  "Screener scores resumes against a job description with Gemini and compares the best candidates head to head.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
