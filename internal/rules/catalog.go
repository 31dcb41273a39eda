package rules

import (
	"strings"

	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/source"
)

// catalog is evaluated in this order; report ordering within a severity
// depends on it.
var catalog = []Check{
	{ID: "sql-injection", Summary: "Query strings built from variables or request input", Severity: findings.SeverityCritical, eval: checkSQLInjection},
	{ID: "xss", Summary: "Unescaped output of variables or request input", Severity: findings.SeverityCritical, eval: checkXSS},
	{ID: "dangerous-function", Summary: "Calls to code and command execution helpers", Severity: findings.SeverityHigh, eval: checkDangerousFunctions},
	{ID: "hardcoded-credential", Summary: "Passwords, keys and tokens assigned from literals", Severity: findings.SeverityHigh, eval: checkHardcodedCredentials},
	{ID: "file-operation", Summary: "File inclusion and access with dynamic paths", Severity: findings.SeverityHigh, eval: checkFileOperations},
	{ID: "input-validation", Summary: "Request input read without validation", Severity: findings.SeverityMedium, eval: checkInputValidation},
	{ID: "command-injection", Summary: "Request input reaching shell execution", Severity: findings.SeverityCritical, eval: checkCommandInjection},
	{ID: "deserialization", Summary: "unserialize() on variable input", Severity: findings.SeverityHigh, eval: checkDeserialization},
	{ID: "session-security", Summary: "session_start() without cookie parameters", Severity: findings.SeverityMedium, eval: checkSessionSecurity},
	{ID: "csrf", Summary: "POST forms without a CSRF token", Severity: findings.SeverityMedium, eval: checkCSRF},
}

// Options controls a scan
type Options struct {
	// Skip reports whether the check with the given ID should not run
	Skip func(id string) bool
	// OnCheck is called after each check with the number of findings it produced
	OnCheck func(c Check, found int)
}

// List returns the catalog in evaluation order
func List() []Check {
	out := make([]Check, len(catalog))
	copy(out, catalog)
	return out
}

// Get returns a check by ID
func Get(id string) (Check, bool) {
	id = normalizeID(id)
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Check{}, false
}

// Scan runs every check against doc
func Scan(doc *source.Document) []findings.Finding {
	return ScanWith(doc, Options{})
}

// ScanWith runs the checks opts.Skip does not exclude against doc in
// catalog order
func ScanWith(doc *source.Document, opts Options) []findings.Finding {
	all := []findings.Finding{}
	for _, c := range catalog {
		if opts.Skip != nil && opts.Skip(c.ID) {
			continue
		}
		found := c.Run(doc)
		all = append(all, found...)
		if opts.OnCheck != nil {
			opts.OnCheck(c, len(found))
		}
	}
	return all
}

// Enabled returns how many checks a scan with the given skip predicate will run
func Enabled(skip func(id string) bool) int {
	n := 0
	for _, c := range catalog {
		if skip == nil || !skip(c.ID) {
			n++
		}
	}
	return n
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
