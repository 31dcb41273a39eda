package rules

import (
	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/source"
)

var fileOperationPatterns = []pattern{
	newPattern(`(include|require|include_once|require_once)\s*\(\s*\$`,
		"File inclusion with user input"),
	newPattern(`(fopen|file_get_contents|file_put_contents|readfile)\s*\(\s*\$`,
		"File operation with dynamic path"),
	newPattern(`\$_(GET|POST|REQUEST)\[.*\]\s*\.\s*["']`,
		"Path traversal risk: User input in file path"),
}

func checkFileOperations(c Check, doc *source.Document) []findings.Finding {
	return matchEach(c, doc, fileOperationPatterns, "File Operation",
		"Validate and sanitize file paths. Use basename() or whitelist approach.")
}
