package rules

import (
	"regexp"
	"strings"

	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/source"
)

var (
	sessionStartPattern = regexp.MustCompile(`session_start\s*\(\s*\)`)
	postFormPattern     = regexp.MustCompile(`(?i)<form[^>]*method\s*=\s*["']post["'][^>]*>`)
)

const sessionConfigCall = "session_set_cookie_params"

var csrfIndicators = []string{"csrf", "token", "_token", "nonce"}

// checkSessionSecurity flags session_start() unless the cookie parameters were
// configured on this line or any line before it.
func checkSessionSecurity(c Check, doc *source.Document) []findings.Finding {
	var out []findings.Finding
	configured := false
	for i, line := range doc.Lines {
		if strings.Contains(line, sessionConfigCall) {
			configured = true
		}
		if sessionStartPattern.MatchString(line) && !configured {
			out = append(out, c.issue(i+1, "Session Security",
				"Session without security configuration",
				"Configure session security with session_set_cookie_params()"))
		}
	}
	return out
}

// checkCSRF tracks one POST form at a time. A second opening tag before the
// closing tag replaces the tracked form; nested forms are not modelled.
func checkCSRF(c Check, doc *source.Document) []findings.Finding {
	var out []findings.Finding
	inForm := false
	formStart := 0
	for i, line := range doc.Lines {
		if postFormPattern.MatchString(line) {
			inForm = true
			formStart = i
		}

		if inForm && strings.Contains(strings.ToLower(line), "</form>") {
			body := strings.ToLower(strings.Join(doc.Lines[formStart:i+1], "\n"))
			if !containsAny(body, csrfIndicators) {
				out = append(out, c.issue(formStart+1, "CSRF",
					"Form missing CSRF token",
					"Add CSRF token field to prevent cross-site request forgery"))
			}
			inForm = false
		}
	}
	return out
}
