package findings

import (
	"fmt"
	"sort"
	"strings"
)

// Severity is the risk ranking of a finding. Lower values are more severe.
type Severity int

// Severity levels
const (
	SeverityCritical Severity = iota
	SeverityHigh
	SeverityMedium
	SeverityLow
)

// Severities lists every severity in rank order
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

var severityNames = map[Severity]string{
	SeverityCritical: "critical",
	SeverityHigh:     "high",
	SeverityMedium:   "medium",
	SeverityLow:      "low",
}

// Finding represents a single issue discovered on one line of the scanned file
type Finding struct {
	Line           int      `json:"line"`
	Severity       Severity `json:"severity"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Recommendation string   `json:"recommendation"`
	Check          string   `json:"check"`
}

// String returns the lower-case name of the severity
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// Label returns the display label used in text reports
func (s Severity) Label() string {
	switch s {
	case SeverityCritical:
		return "🔴 Critical"
	case SeverityHigh:
		return "🟠 High"
	case SeverityMedium:
		return "🟡 Medium"
	case SeverityLow:
		return "🟢 Low"
	default:
		return "⚪ Unknown"
	}
}

// MarshalText encodes the severity by name so JSON output reads "critical"
func (s Severity) MarshalText() ([]byte, error) {
	name, ok := severityNames[s]
	if !ok {
		return nil, fmt.Errorf("invalid severity: %d", int(s))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a severity name
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSeverity converts a severity name (case-insensitive) into a Severity
func ParseSeverity(name string) (Severity, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, sev := range Severities {
		if severityNames[sev] == needle {
			return sev, nil
		}
	}
	return 0, fmt.Errorf("invalid severity: %q (must be critical, high, medium, or low)", name)
}

// ValidateSeverity checks if a severity string is valid
func ValidateSeverity(name string) bool {
	_, err := ParseSeverity(name)
	return err == nil
}

// BySeverity implements sort.Interface for []Finding based on severity rank
type BySeverity []Finding

func (a BySeverity) Len() int           { return len(a) }
func (a BySeverity) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a BySeverity) Less(i, j int) bool { return a[i].Severity < a[j].Severity }

// SortBySeverity returns a copy of findings ordered Critical first.
// Findings of equal severity keep the order they were produced in.
func SortBySeverity(findings []Finding) []Finding {
	sorted := make([]Finding, len(findings))
	copy(sorted, findings)
	sort.Stable(BySeverity(sorted))
	return sorted
}
