package rules

import (
	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/source"
)

var sqlInjectionPatterns = []pattern{
	newPattern(`(?i)(["'])(SELECT|INSERT|UPDATE|DELETE|CREATE|DROP|ALTER).*\$\w+`,
		"SQL injection risk: Variable directly in query string"),
	newPattern(`(?i)\$_(GET|POST|REQUEST)\[.*\].*(SELECT|INSERT|UPDATE|DELETE)`,
		"SQL injection risk: User input in query without sanitization"),
	newPattern(`(?i)->query\s*\(\s*["'].*\$\w+`,
		"SQL injection risk: Direct variable in query method"),
	newPattern(`(?i)->exec\s*\(\s*["'].*\$\w+`,
		"SQL injection risk: Direct variable in exec method"),
}

var commandInjectionPatterns = []pattern{
	newPattern("(?i)`.*\\$_(GET|POST|REQUEST)",
		"Command injection: User input in backtick execution"),
	// The bare "backtick" alternative matches the word anywhere on the line.
	newPattern(`(?i)backtick|shell_exec.*\$_`,
		"Command injection: User input in shell execution"),
}

var deserializationPatterns = []pattern{
	newPattern(`unserialize\s*\(\s*\$`,
		"Unsafe deserialization with user input"),
	newPattern(`unserialize\s*\(\s*\$_(GET|POST|REQUEST|COOKIE)`,
		"Unsafe deserialization: Direct user input"),
}

func checkSQLInjection(c Check, doc *source.Document) []findings.Finding {
	return matchEach(c, doc, sqlInjectionPatterns, "SQL Injection",
		"Use prepared statements with parameter binding")
}

func checkCommandInjection(c Check, doc *source.Document) []findings.Finding {
	return matchEach(c, doc, commandInjectionPatterns, "Command Injection",
		"Use escapeshellarg() or escapeshellcmd() to escape user input")
}

func checkDeserialization(c Check, doc *source.Document) []findings.Finding {
	return matchEach(c, doc, deserializationPatterns, "Deserialization",
		"Use json_decode() instead, or implement __wakeup() validation")
}
