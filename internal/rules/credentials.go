package rules

import (
	"strings"

	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/source"
)

var credentialPatterns = []pattern{
	newPattern(`(?i)(password|passwd|pwd)\s*[=:]\s*["'][^"']+["']`,
		"Hardcoded password"),
	newPattern(`(?i)(api_key|apikey|secret|token)\s*[=:]\s*["'][^"']+["']`,
		"Hardcoded API key/secret"),
	newPattern(`(?i)(mysql|database|db_pass)\s*[=:]\s*["'][^"']+["']`,
		"Hardcoded database credential"),
}

// readsEnvironment reports lines that take the value from the environment
// or are line comments.
func readsEnvironment(line string) bool {
	return strings.Contains(line, "$_ENV") ||
		strings.Contains(line, "getenv") ||
		strings.HasPrefix(strings.TrimSpace(line), "//")
}

func checkHardcodedCredentials(c Check, doc *source.Document) []findings.Finding {
	var out []findings.Finding
	for i, line := range doc.Lines {
		for _, p := range credentialPatterns {
			if !p.re.MatchString(line) || readsEnvironment(line) {
				continue
			}
			out = append(out, c.issue(i+1, "Hardcoded Credential", p.desc,
				"Use environment variables or secure configuration"))
		}
	}
	return out
}
