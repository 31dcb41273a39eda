package rules

import (
	"strings"

	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/source"
)

// escapingCalls exempt a whole line from the XSS check
var escapingCalls = []string{"htmlspecialchars", "htmlentities"}

var xssPatterns = []pattern{
	newPattern(`echo\s+\$_(GET|POST|REQUEST|COOKIE)`,
		"XSS vulnerability: Unescaped user input output"),
	newPattern(`print\s+\$_(GET|POST|REQUEST|COOKIE)`,
		"XSS vulnerability: Unescaped user input output"),
}

// echoVariable is the generic unescaped echo. Superglobals are left to
// xssPatterns.
var echoVariable = newPattern(`echo\s+\$([a-zA-Z_]\w*)`,
	"Potential XSS: Echo without htmlspecialchars")

var superglobals = map[string]bool{
	"_GET":     true,
	"_POST":    true,
	"_REQUEST": true,
	"_COOKIE":  true,
}

// checkXSS reports one finding per matching pattern on each line
func checkXSS(c Check, doc *source.Document) []findings.Finding {
	const rec = "Use htmlspecialchars() or htmlentities() to escape output"

	var out []findings.Finding
	for i, line := range doc.Lines {
		if containsAny(line, escapingCalls) {
			continue
		}
		for _, p := range xssPatterns {
			if p.re.MatchString(line) {
				out = append(out, c.issue(i+1, "XSS", p.desc, rec))
			}
		}
		if echoesPlainVariable(line) {
			out = append(out, c.issue(i+1, "XSS", echoVariable.desc, rec))
		}
	}
	return out
}

func echoesPlainVariable(line string) bool {
	for _, m := range echoVariable.re.FindAllStringSubmatch(line, -1) {
		if !superglobals[m[1]] {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
