// Package main provides the entry point for the leaksplit CLI.
//
// leaksplit reads a gitleaks JSON report and splits its findings into
// unique findings and duplicates of an earlier finding with the same
// secret and rule.
//
// Usage:
//
//	leaksplit gitleaks-report.json            # duplicate fingerprints
//	leaksplit --unique gitleaks-report.json   # unique fingerprints
//	leaksplit -f json gitleaks-report.json    # full duplicate records
//
// See --help for all available options.
package main

// main is the entry point for leaksplit.
func main() {
	Execute()
}
