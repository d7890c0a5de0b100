// bench - TOON benchmark runner
//
// Compares TOON encoding vs JSON-minified for one or more JSON files:
//   - Bytes on wire
//   - Approximate token counts (heuristic estimator)
//
// Usage: bench file.json [file.json ...]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tokeneff/toon/toon"
)

type caseResult struct {
	Name        string
	JSONBytes   int
	TOONBytes   int
	JSONTokens  int
	TOONTokens  int
	TokenSaving float64
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: bench file.json [file.json ...]")
		os.Exit(1)
	}

	counter := toon.Estimator{}
	var results []caseResult

	for _, path := range os.Args[1:] {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bench: %v\n", err)
			os.Exit(1)
		}

		tree, err := toon.FromJSON(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "bench: %s: %v\n", path, err)
			os.Exit(1)
		}

		encoded, err := toon.EncodeWithOptions(tree, toon.Options{
			Delimiter: ",",
			Indent:    2,
			Fallback:  toon.FallbackJSON,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "bench: %s: %v\n", path, err)
			os.Exit(1)
		}

		// Both sides of the comparison use the same serializer.
		minified := toon.ToJSON(tree)
		saving, _ := toon.Savings(minified, encoded, counter)

		jsonTokens, _ := counter.Count(minified)
		toonTokens, _ := counter.Count(encoded)

		results = append(results, caseResult{
			Name:        filepath.Base(path),
			JSONBytes:   len(minified),
			TOONBytes:   len(encoded),
			JSONTokens:  jsonTokens,
			TOONTokens:  toonTokens,
			TokenSaving: saving,
		})
	}

	fmt.Printf("%-30s %10s %10s %10s %10s %8s\n",
		"case", "json B", "toon B", "json tok", "toon tok", "saved")
	for _, r := range results {
		fmt.Printf("%-30s %10d %10d %10d %10d %7.1f%%\n",
			r.Name, r.JSONBytes, r.TOONBytes, r.JSONTokens, r.TOONTokens, r.TokenSaving)
	}
}
