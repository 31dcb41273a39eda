package report

import (
	"github.com/liam-witterick/phpaudit/internal/findings"
)

// Report is the severity-sorted result of one scan
type Report struct {
	File     string
	Findings []findings.Finding
	Counts   map[findings.Severity]int
	Total    int
}

// New builds a report for file from findings in the order they were produced
func New(file string, all []findings.Finding) *Report {
	sorted := findings.SortBySeverity(all)
	return &Report{
		File:     file,
		Findings: sorted,
		Counts:   findings.CountBySeverity(sorted),
		Total:    len(sorted),
	}
}

// HasCritical reports whether any finding is critical
func (r *Report) HasCritical() bool {
	return findings.HasCritical(r.Findings)
}

// Filter returns a report holding only findings at or above minSeverity
func (r *Report) Filter(minSeverity findings.Severity) *Report {
	return New(r.File, findings.FilterBySeverity(r.Findings, minSeverity))
}
