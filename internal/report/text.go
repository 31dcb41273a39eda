package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/liam-witterick/phpaudit/internal/findings"
)

// NoIssuesMessage is printed instead of the full layout for a clean file
const NoIssuesMessage = "✅ No security issues found!"

var (
	ruleWide   = strings.Repeat("=", 60)
	ruleNarrow = strings.Repeat("-", 40)
)

// Lipgloss styles for each severity heading
var (
	styleCritical = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9"))
	styleHigh     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	styleMedium   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	styleLow      = lipgloss.NewStyle().Faint(true)
	styleCategory = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// TextOptions controls text rendering
type TextOptions struct {
	Color bool
}

// RenderText writes the human-readable report to w
func RenderText(w io.Writer, r *Report, opts TextOptions) error {
	_, err := io.WriteString(w, FormatText(r, opts)+"\n")
	return err
}

// FormatText formats the report as human-readable text
func FormatText(r *Report, opts TextOptions) string {
	if r.Total == 0 {
		return NoIssuesMessage
	}

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteString("\n")
	}

	line("\n🔒 Security Audit Report for: %s", r.File)
	line("%s", ruleWide)

	line("\n📊 Statistics:")
	line("   Total Issues: %d", r.Total)
	for _, sev := range findings.Severities {
		line("   %s: %d", sev.Label(), r.Counts[sev])
	}

	line("\n%s", ruleWide)
	line("📋 Issues Found:")
	line("")

	first := true
	var current findings.Severity
	for _, f := range r.Findings {
		if first || f.Severity != current {
			first = false
			current = f.Severity
			line("\n%s", styleHeading(current, opts.Color))
			line("%s", ruleNarrow)
		}

		category := "[" + f.Category + "]"
		if opts.Color {
			category = styleCategory.Render(category)
		}
		line("\n  Line %d: %s", f.Line, category)
		line("  ⚠️  %s", f.Description)
		line("  💡 %s", f.Recommendation)
	}

	b.WriteString("\n" + ruleWide)
	return b.String()
}

// styleHeading applies the severity colour to a heading label
func styleHeading(sev findings.Severity, color bool) string {
	label := sev.Label()
	if !color {
		return label
	}
	switch sev {
	case findings.SeverityCritical:
		return styleCritical.Render(label)
	case findings.SeverityHigh:
		return styleHigh.Render(label)
	case findings.SeverityMedium:
		return styleMedium.Render(label)
	case findings.SeverityLow:
		return styleLow.Render(label)
	default:
		return label
	}
}
