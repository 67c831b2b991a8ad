// Package doctor runs health checks over the config and the task slot.
package doctor

import "context"

// Status is the outcome of a single check item.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// CheckItem is one line of a check's report.
type CheckItem struct {
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Fixable bool   `json:"fixable,omitempty"`
}

// Result groups the items produced by one check.
type Result struct {
	Name  string      `json:"name"`
	Items []CheckItem `json:"items"`
}

// Check is a named diagnostic.
type Check interface {
	Name() string
	Run(ctx context.Context) Result
}

// RunAll runs checks in order.
func RunAll(ctx context.Context, checks []Check) []Result {
	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		results = append(results, check.Run(ctx))
	}
	return results
}

// Summary counts items by status across results.
func Summary(results []Result) (passed, warned, failed int) {
	for _, r := range results {
		for _, item := range r.Items {
			switch item.Status {
			case StatusPass:
				passed++
			case StatusWarn:
				warned++
			case StatusFail:
				failed++
			}
		}
	}
	return passed, warned, failed
}

// CountFixable counts warn or fail items that --autofix can repair.
func CountFixable(results []Result) int {
	count := 0
	for _, r := range results {
		for _, item := range r.Items {
			if item.Fixable && item.Status != StatusPass {
				count++
			}
		}
	}
	return count
}
