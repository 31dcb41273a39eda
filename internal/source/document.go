package source

import (
	"fmt"
	"os"
	"unicode/utf8"
)

// Document is the loaded content of the file being scanned.
// It is read-only for the duration of a scan.
type Document struct {
	Path  string
	Text  string
	Lines []string
}

// LoadError reports a file that is missing, unreadable or not valid UTF-8
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the file at path and splits it into lines
func Load(path string) (*Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("file not found")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if !utf8.Valid(data) {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("file is not valid UTF-8")}
	}

	doc := New(string(data))
	doc.Path = path
	return doc, nil
}

// New builds a Document from text already in memory
func New(text string) *Document {
	return &Document{
		Text:  text,
		Lines: splitLines(text),
	}
}

// LineCount returns the number of lines in the document
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// splitLines breaks text at every line boundary: \n, \r, \r\n, \v, \f,
// \x1c, \x1d, \x1e, U+0085, U+2028 and U+2029. A trailing boundary does not
// start an extra empty line.
func splitLines(text string) []string {
	lines := []string{}
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, text[start:i])
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
