package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/liam-witterick/phpaudit/internal/findings"
)

type jsonReport struct {
	File     string             `json:"file"`
	Total    int                `json:"total"`
	Critical bool               `json:"has_critical_issues"`
	Counts   map[string]int     `json:"counts"`
	Findings []findings.Finding `json:"findings"`
}

// RenderJSON writes the report to w as an indented JSON document
func RenderJSON(w io.Writer, r *Report) error {
	counts := make(map[string]int, len(findings.Severities))
	for _, sev := range findings.Severities {
		counts[sev.String()] = r.Counts[sev]
	}

	items := r.Findings
	if items == nil {
		items = []findings.Finding{}
	}

	data, err := json.MarshalIndent(jsonReport{
		File:     r.File,
		Total:    r.Total,
		Critical: r.HasCritical(),
		Counts:   counts,
		Findings: items,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
