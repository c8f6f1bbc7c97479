package preflight

import (
	"fmt"
	"strings"

	"snapsort/internal/config"
	"snapsort/internal/outcome"
)

// Result reports the outcome of a single preflight check. A failed Fatal
// check stops the run; other failures are warnings.
type Result struct {
	Name   string
	Passed bool
	Fatal  bool
	Detail string
}

// RunAll checks the source and target trees and the external tools.
func RunAll(cfg *config.Config, source, target string) []Result {
	results := []Result{
		CheckSource(source),
		CheckTarget(target),
	}
	if cfg != nil {
		results = append(results, depResults(CheckSystemDeps(cfg))...)
	}
	return results
}

// Err joins every failed fatal check into a configuration error, or returns
// nil when the run may proceed.
func Err(results []Result) error {
	var problems []string
	for _, r := range results {
		if r.Fatal && !r.Passed {
			problems = append(problems, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return outcome.Wrap(outcome.ErrConfiguration, "preflight", "check paths", strings.Join(problems, "; "), nil)
}

// Warnings returns the failed checks that do not stop the run.
func Warnings(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Fatal && !r.Passed {
			out = append(out, r)
		}
	}
	return out
}
