package rules

import (
	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/source"
)

// validationMarkers exempt a line from the input validation check.
// Matching is by substring, so "filter" covers filter_input and filter_var.
var validationMarkers = []string{"filter", "isset", "empty"}

var inputPatterns = []pattern{
	newPattern(`\$_GET\[`, "Direct $_GET access without validation"),
	newPattern(`\$_POST\[`, "Direct $_POST access without validation"),
	newPattern(`\$_REQUEST\[`, "Direct $_REQUEST access without validation"),
	newPattern(`\$_COOKIE\[`, "Direct $_COOKIE access without validation"),
}

// checkInputValidation reports at most one finding per line
func checkInputValidation(c Check, doc *source.Document) []findings.Finding {
	var out []findings.Finding
	for i, line := range doc.Lines {
		if containsAny(line, validationMarkers) {
			continue
		}
		for _, p := range inputPatterns {
			if p.re.MatchString(line) {
				out = append(out, c.issue(i+1, "Input Validation", p.desc,
					"Use filter_input() or filter_var() to validate user input"))
				break
			}
		}
	}
	return out
}
