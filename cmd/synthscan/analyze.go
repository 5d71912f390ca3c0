package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mkrasov/synthscan"
	"github.com/mkrasov/synthscan/tesseract"
)

var (
	analyzeJSON bool
	analyzeOCR  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Score files from disk",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit full result records as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeOCR, "ocr", false, "enable tesseract OCR")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	analyzer := &synthscan.Config{}
	if analyzeOCR {
		engine := tesseract.New()
		defer engine.Close()
		analyzer.OCR = engine
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		result := analyzer.Analyze(cmd.Context(), data, filepath.Base(path))

		if analyzeJSON {
			if err := enc.Encode(result); err != nil {
				return err
			}
			continue
		}
		printResult(path, result)
	}
	return nil
}

func printResult(path string, result synthscan.AnalysisResult) {
	verdict := color.GreenString(string(result.Verdict))
	switch result.Verdict {
	case synthscan.VerdictSynthetic:
		verdict = color.RedString(string(result.Verdict))
	case synthscan.VerdictError:
		verdict = color.YellowString(string(result.Verdict))
	}

	fmt.Printf("%s: %s (score %.2f)\n", path, verdict, result.Score)
	fmt.Printf("  %s\n", result.Reason)

	if bd, ok := result.Details["breakdown"].(map[string]float64); ok && len(bd) > 0 {
		rules := make([]string, 0, len(bd))
		for rule := range bd {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		for _, rule := range rules {
			fmt.Printf("  %-22s +%.2f\n", rule, bd[rule])
		}
	}
}
