package rules

import (
	"regexp"

	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/source"
)

// Check is a single independent rule evaluated over a document
type Check struct {
	ID       string
	Summary  string
	Severity findings.Severity
	// eval inspects the document and returns findings. It must not mutate doc.
	eval func(c Check, doc *source.Document) []findings.Finding
}

// Run evaluates the check against doc
func (c Check) Run(doc *source.Document) []findings.Finding {
	return c.eval(c, doc)
}

// pattern pairs a compiled expression with the description reported on a match
type pattern struct {
	re   *regexp.Regexp
	desc string
}

func newPattern(expr, desc string) pattern {
	return pattern{re: regexp.MustCompile(expr), desc: desc}
}

// issue builds a finding for the check
func (c Check) issue(line int, category, desc, recommendation string) findings.Finding {
	return findings.Finding{
		Line:           line,
		Severity:       c.Severity,
		Category:       category,
		Description:    desc,
		Recommendation: recommendation,
		Check:          c.ID,
	}
}

// matchEach emits one finding per pattern that matches each line
func matchEach(c Check, doc *source.Document, patterns []pattern, category, recommendation string) []findings.Finding {
	var out []findings.Finding
	for i, line := range doc.Lines {
		for _, p := range patterns {
			if p.re.MatchString(line) {
				out = append(out, c.issue(i+1, category, p.desc, recommendation))
			}
		}
	}
	return out
}
