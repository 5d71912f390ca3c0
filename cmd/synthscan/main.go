package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "synthscan",
	Short: "Heuristic synthetic-vs-authentic file scorer",
	Long: `synthscan assigns a heuristic "synthetic vs. authentic" score to files by
combining metadata inspection, OCR keyword scanning, pixel statistics, and
text stylometry. It is an explainable rule engine, not a trained classifier.`,
}

func main() {
	rootCmd.Version = version
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
