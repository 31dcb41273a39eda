package findings

// FilterBySeverity returns only findings at or above the given minimum severity
func FilterBySeverity(findings []Finding, minSeverity Severity) []Finding {
	if minSeverity >= SeverityLow {
		// low includes all severities
		return findings
	}

	filtered := make([]Finding, 0, len(findings))
	for _, finding := range findings {
		if finding.Severity <= minSeverity {
			filtered = append(filtered, finding)
		}
	}

	return filtered
}

// CountBySeverity returns the number of findings per severity.
// Every severity is present in the result, even when zero.
func CountBySeverity(findings []Finding) map[Severity]int {
	counts := make(map[Severity]int, len(Severities))
	for _, sev := range Severities {
		counts[sev] = 0
	}
	for _, f := range findings {
		counts[f.Severity]++
	}
	return counts
}

// HasCritical reports whether at least one finding is critical
func HasCritical(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
