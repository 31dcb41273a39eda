package rules

import (
	"fmt"
	"regexp"

	"github.com/liam-witterick/phpaudit/internal/findings"
	"github.com/liam-witterick/phpaudit/internal/source"
)

type dangerousFunc struct {
	re   *regexp.Regexp
	name string
	risk string
}

func newDangerousFunc(expr, name, risk string) dangerousFunc {
	return dangerousFunc{re: regexp.MustCompile(expr), name: name, risk: risk}
}

// dangerousFuncs is matched without word boundaries, so shell_exec( also
// matches the exec entry.
var dangerousFuncs = []dangerousFunc{
	newDangerousFunc(`eval\s*\(`, "eval()", "Code injection risk"),
	newDangerousFunc(`exec\s*\(`, "exec()", "Command execution risk"),
	newDangerousFunc(`system\s*\(`, "system()", "Command execution risk"),
	newDangerousFunc(`passthru\s*\(`, "passthru()", "Command execution risk"),
	newDangerousFunc(`shell_exec\s*\(`, "shell_exec()", "Command execution risk"),
	newDangerousFunc(`popen\s*\(`, "popen()", "Process handling risk"),
	newDangerousFunc(`proc_open\s*\(`, "proc_open()", "Process handling risk"),
	newDangerousFunc(`pcntl_exec\s*\(`, "pcntl_exec()", "Process execution risk"),
	newDangerousFunc(`assert\s*\(`, "assert()", "Code injection risk"),
	newDangerousFunc(`create_function\s*\(`, "create_function()", "Deprecated and unsafe"),
	newDangerousFunc(`extract\s*\(`, "extract()", "Variable overwrite risk"),
	newDangerousFunc(`parse_str\s*\(`, "parse_str()", "Variable overwrite risk"),
}

func checkDangerousFunctions(c Check, doc *source.Document) []findings.Finding {
	var out []findings.Finding
	for i, line := range doc.Lines {
		for _, fn := range dangerousFuncs {
			if fn.re.MatchString(line) {
				out = append(out, c.issue(i+1, "Dangerous Function",
					fmt.Sprintf("Use of %s: %s", fn.name, fn.risk),
					fmt.Sprintf("Remove or sanitize %s usage. Use safer alternatives.", fn.name)))
			}
		}
	}
	return out
}
