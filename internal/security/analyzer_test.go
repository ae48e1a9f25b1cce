package security

import (
	"strings"
	"testing"

	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"
)

func analyze(t *testing.T, content string) []Issue {
	t.Helper()
	tree, err := parser.ParseString(content, py.ExecMode)
	if err != nil {
		t.Fatalf("ParseString(%q) error: %v", content, err)
	}
	return NewAnalyzer().Analyze(tree)
}

func TestAnalyzerDangerousBuiltins(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"eval call", "eval(expr)\n", 1},
		{"exec call", "exec(code)\n", 1},
		{"nested eval", "x = [eval(e) for e in exprs]\n", 1},
		{"attribute eval is not a free function", "obj.eval(expr)\n", 0},
		{"name reference without call", "f = eval\n", 0},
		{"unrelated call", "print(expr)\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := analyze(t, tt.content)
			if got := countLevel(issues, LevelCritical); got != tt.want {
				t.Errorf("critical issues = %d, want %d (issues: %+v)", got, tt.want, issues)
			}
		})
	}
}

func TestAnalyzerDangerousBuiltinPosition(t *testing.T) {
	issues := analyze(t, "x = 1\ny = eval(expr)\n")

	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(issues))
	}
	issue := issues[0]
	if issue.Line == nil || *issue.Line != 2 {
		t.Errorf("issue line = %v, want 2", issue.Line)
	}
	if issue.Column == nil {
		t.Error("issue column is nil, want the node's column offset")
	}
	if !strings.Contains(issue.Message, "eval") {
		t.Errorf("message %q does not name the function", issue.Message)
	}
}

func TestAnalyzerShellTrue(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"subprocess.run shell=True", "subprocess.run(cmd, shell=True)\n", 1},
		{"subprocess.call shell=True", "subprocess.call(cmd, shell=True)\n", 1},
		{"subprocess.Popen shell=True", "subprocess.Popen(cmd, shell=True)\n", 1},
		{"shell=False is fine", "subprocess.run(cmd, shell=False)\n", 0},
		{"no shell keyword", "subprocess.run(cmd)\n", 0},
		{"shell from variable is not a literal", "subprocess.run(cmd, shell=use_shell)\n", 0},
		{"other module", "mylib.run(cmd, shell=True)\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := analyze(t, tt.content)
			got := 0
			for _, issue := range issues {
				if strings.Contains(issue.Message, "shell=True") {
					got++
				}
			}
			if got != tt.want {
				t.Errorf("shell=True issues = %d, want %d (issues: %+v)", got, tt.want, issues)
			}
		})
	}
}

func TestAnalyzerShellTrueSeverity(t *testing.T) {
	issues := analyze(t, "subprocess.run(cmd, shell=True)\n")

	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(issues))
	}
	if issues[0].Level != LevelHigh {
		t.Errorf("level = %v, want HIGH", issues[0].Level)
	}
	if issues[0].Line == nil || *issues[0].Line != 1 {
		t.Errorf("line = %v, want 1", issues[0].Line)
	}
}

func TestAnalyzerShellTruePosition(t *testing.T) {
	issues := analyze(t, "import os\nsubprocess.run(cmd, shell=True)\n")

	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1 (issues: %+v)", len(issues), issues)
	}
	if issues[0].Line == nil || *issues[0].Line != 2 {
		t.Errorf("line = %v, want 2", issues[0].Line)
	}
	if issues[0].Column == nil {
		t.Error("column is nil, want the node's column offset")
	}
}
