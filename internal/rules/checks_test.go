package rules

import (
	"strings"
	"testing"

	"github.com/liam-witterick/phpaudit/internal/findings"
)

func TestCheckCategories(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category string
		want     int
	}{
		// SQL injection
		{"sql variable in string", `$q = "SELECT * FROM users WHERE id = $id";`, "SQL Injection", 1},
		{"sql lower case keyword", `$q = 'select name from t where id = $id';`, "SQL Injection", 1},
		{"sql query method", `$db->query("DELETE FROM users WHERE id = $id");`, "SQL Injection", 2},
		{"sql prepared", `$stmt = $db->prepare("SELECT * FROM users WHERE id = ?");`, "SQL Injection", 0},
		{"sql user input", `$id = $_GET['id']; $q = "x" . $id . " SELECT";`, "SQL Injection", 1},

		// XSS
		{"xss superglobal", `echo $_GET['name'];`, "XSS", 1},
		{"xss print", `print $_POST['name'];`, "XSS", 1},
		{"xss variable", `echo $name;`, "XSS", 1},
		{"xss escaped", `echo htmlspecialchars($x);`, "XSS", 0},
		{"xss htmlentities", `echo htmlentities($_GET['q']);`, "XSS", 0},
		{"xss literal", `echo "hello";`, "XSS", 0},
		{"xss echo and print superglobal", `echo $_GET['a']print $_GET['a']`, "XSS", 2},
		{"xss superglobal and variable", `echo $_GET['a']; echo $name;`, "XSS", 2},
		{"xss superglobal prefix", `echo $_GETTER;`, "XSS", 2},
		{"xss cookie", `echo $_COOKIE['sid'];`, "XSS", 1},

		// Hardcoded credentials
		{"password literal", `$password = "hunter2";`, "Hardcoded Credential", 1},
		{"password env", `$password = getenv('DB_PASS');`, "Hardcoded Credential", 0},
		{"api key literal", `$api_key = 'abc123';`, "Hardcoded Credential", 1},
		{"env superglobal", `$secret = $_ENV['SECRET'] ?? 'fallback';`, "Hardcoded Credential", 0},
		{"commented", `// $password = "hunter2";`, "Hardcoded Credential", 0},
		{"config array", `'database' => 'shop', 'pwd' => 'x'`, "Hardcoded Credential", 0},
		{"colon form", `password: "s3cret"`, "Hardcoded Credential", 1},

		// File operations
		{"include variable", `include($page);`, "File Operation", 1},
		{"require_once variable", `require_once($module);`, "File Operation", 1},
		{"file_get_contents variable", `$c = file_get_contents($path);`, "File Operation", 1},
		{"include literal", `include('header.php');`, "File Operation", 0},
		{"path traversal", `$file = $_GET['f'] . '.php';`, "File Operation", 1},

		// Input validation
		{"get access", `$id = $_GET['id'];`, "Input Validation", 1},
		{"two superglobals one finding", `$x = $_GET['a'] . $_POST['b'];`, "Input Validation", 1},
		{"cookie access", `$c = $_COOKIE['c'];`, "Input Validation", 1},
		{"isset guard", `if (isset($_GET['id'])) {`, "Input Validation", 0},
		{"empty guard", `if (!empty($_POST['name'])) {`, "Input Validation", 0},
		{"filter_var", `$id = filter_var($_GET['id'], FILTER_VALIDATE_INT);`, "Input Validation", 0},

		// Command injection
		{"backtick", "$out = `ls $_GET[dir]`;", "Command Injection", 1},
		{"shell_exec", `shell_exec("ls " . $_POST['d']);`, "Command Injection", 1},
		{"shell_exec literal", `shell_exec("ls /tmp");`, "Command Injection", 0},
		{"backtick word", `// avoid backtick operators`, "Command Injection", 1},

		// Deserialization
		{"unserialize variable", `$o = unserialize($data);`, "Deserialization", 1},
		{"unserialize cookie", `$o = unserialize($_COOKIE['d']);`, "Deserialization", 2},
		{"unserialize literal", `$o = unserialize('a:0:{}');`, "Deserialization", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inCategory(scanText(tt.text), tt.category)
			if len(got) != tt.want {
				t.Errorf("expected %d %s finding(s), got %d: %+v", tt.want, tt.category, len(got), got)
			}
		})
	}
}

func TestXSSSeverity(t *testing.T) {
	got := inCategory(scanText(`echo $_GET['name'];`), "XSS")
	if len(got) != 1 {
		t.Fatalf("expected 1 XSS finding, got %d", len(got))
	}
	if got[0].Severity != findings.SeverityCritical {
		t.Errorf("expected critical severity, got %s", got[0].Severity)
	}
	if got[0].Description != "XSS vulnerability: Unescaped user input output" {
		t.Errorf("unexpected description: %s", got[0].Description)
	}
}

func TestXSSPatternsReportedInOrder(t *testing.T) {
	got := inCategory(scanText(`print $_GET['a']; echo $name;`), "XSS")
	want := []string{
		"XSS vulnerability: Unescaped user input output",
		"Potential XSS: Echo without htmlspecialchars",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d XSS findings, got %d: %+v", len(want), len(got), got)
	}
	for i, f := range got {
		if f.Description != want[i] {
			t.Errorf("finding %d: got %q, want %q", i, f.Description, want[i])
		}
		if f.Line != 1 {
			t.Errorf("finding %d: expected line 1, got %d", i, f.Line)
		}
	}
}

func TestDangerousFunction(t *testing.T) {
	all := scanText(`eval($x);`)
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d: %+v", len(all), all)
	}

	f := all[0]
	if f.Severity != findings.SeverityHigh {
		t.Errorf("expected high severity, got %s", f.Severity)
	}
	if f.Category != "Dangerous Function" {
		t.Errorf("expected Dangerous Function category, got %s", f.Category)
	}
	if !strings.Contains(f.Description, "eval()") {
		t.Errorf("expected description to mention eval(), got %s", f.Description)
	}
	if f.Line != 1 {
		t.Errorf("expected line 1, got %d", f.Line)
	}
}

func TestDangerousFunctionEntries(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`system($cmd);`, []string{"system()"}},
		{`passthru ($cmd);`, []string{"passthru()"}},
		{`shell_exec($cmd);`, []string{"exec()", "shell_exec()"}},
		{`proc_open($cmd, $spec, $pipes);`, []string{"proc_open()"}},
		{`$h = popen($cmd, "r");`, []string{"popen()"}},
		{`extract($_POST); parse_str($q);`, []string{"extract()", "parse_str()"}},
		{`strlen($x);`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := inCategory(scanText(tt.line), "Dangerous Function")
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d finding(s), got %d: %+v", len(tt.want), len(got), got)
			}
			for i, name := range tt.want {
				if !strings.Contains(got[i].Description, name) {
					t.Errorf("finding %d: expected %s in %q", i, name, got[i].Description)
				}
			}
		})
	}
}

func TestHardcodedCredential(t *testing.T) {
	all := scanText(`$password = "hunter2";`)
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d: %+v", len(all), all)
	}
	if all[0].Severity != findings.SeverityHigh {
		t.Errorf("expected high severity, got %s", all[0].Severity)
	}

	if all := scanText(`$password = getenv('DB_PASS');`); len(all) != 0 {
		t.Errorf("expected no findings, got %d: %+v", len(all), all)
	}
}

func TestSessionSecurity(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		got := inCategory(scanText("<?php\nsession_start();\n"), "Session Security")
		if len(got) != 1 {
			t.Fatalf("expected 1 finding, got %d", len(got))
		}
		if got[0].Line != 2 {
			t.Errorf("expected line 2, got %d", got[0].Line)
		}
		if got[0].Severity != findings.SeverityMedium {
			t.Errorf("expected medium severity, got %s", got[0].Severity)
		}
	})

	t.Run("configured before", func(t *testing.T) {
		text := "<?php\nsession_set_cookie_params(['secure' => true]);\nsession_start();\n"
		if got := inCategory(scanText(text), "Session Security"); len(got) != 0 {
			t.Errorf("expected no findings, got %d", len(got))
		}
	})

	t.Run("configured on same line", func(t *testing.T) {
		text := "session_set_cookie_params(0); session_start();\n"
		if got := inCategory(scanText(text), "Session Security"); len(got) != 0 {
			t.Errorf("expected no findings, got %d", len(got))
		}
	})

	t.Run("configured after", func(t *testing.T) {
		text := "session_start();\nsession_set_cookie_params(0);\n"
		if got := inCategory(scanText(text), "Session Security"); len(got) != 1 {
			t.Errorf("expected 1 finding, got %d", len(got))
		}
	})

	t.Run("with options", func(t *testing.T) {
		text := "session_start(['cookie_secure' => true]);\n"
		if got := inCategory(scanText(text), "Session Security"); len(got) != 0 {
			t.Errorf("expected no findings, got %d", len(got))
		}
	})
}

func TestCSRF(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines []int
	}{
		{
			name:  "missing token",
			text:  "<p>hi</p>\n<form method=\"post\" action=\"/save\">\n<input name=\"email\">\n</form>\n",
			lines: []int{2},
		},
		{
			name: "csrf field",
			text: "<form method=\"post\">\n<input type=\"hidden\" name=\"csrf_field\">\n</form>\n",
		},
		{
			name: "nonce field",
			text: "<form method='POST'>\n<?php wp_nonce_field(); ?>\n</FORM>\n",
		},
		{
			name: "get form",
			text: "<form method=\"get\">\n<input name=\"q\">\n</form>\n",
		},
		{
			name:  "single line",
			text:  "<FORM METHOD=\"POST\"><input name=\"a\"></form>\n",
			lines: []int{1},
		},
		{
			name:  "unclosed",
			text:  "<form method=\"post\">\n<input name=\"a\">\n",
			lines: nil,
		},
		{
			name:  "second opening replaces first",
			text:  "<form method=\"post\">\n<input name=\"_token\">\n<form method=\"post\">\n<input name=\"a\">\n</form>\n",
			lines: []int{3},
		},
		{
			name:  "two forms",
			text:  "<form method=\"post\">\n</form>\n<form method=\"post\">\n<input name=\"token\">\n</form>\n<form method=\"post\">\n</form>\n",
			lines: []int{1, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inCategory(scanText(tt.text), "CSRF")
			if len(got) != len(tt.lines) {
				t.Fatalf("expected %d finding(s), got %d: %+v", len(tt.lines), len(got), got)
			}
			for i, line := range tt.lines {
				if got[i].Line != line {
					t.Errorf("finding %d: expected line %d, got %d", i, line, got[i].Line)
				}
				if got[i].Severity != findings.SeverityMedium {
					t.Errorf("finding %d: expected medium severity, got %s", i, got[i].Severity)
				}
			}
		})
	}
}
