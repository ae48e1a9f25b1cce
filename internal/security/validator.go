package security

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
	"github.com/go-python/gpython/py"
)

// treeAnalyzer is the syntax-analysis pass run after a successful parse.
type treeAnalyzer interface {
	Analyze(tree ast.Ast) []Issue
}

// Validator runs both detection passes over a single file and merges the
// results into one ordered issue list: line-scanner findings first, then
// syntax-analyzer findings (or a single parse-error issue). Every call
// starts from an empty result; no state carries between invocations.
type Validator struct {
	scanner  *LineScanner
	analyzer treeAnalyzer
}

// NewValidator creates a validator backed by the shared pattern catalog.
func NewValidator() *Validator {
	return &Validator{
		scanner:  NewLineScanner(DefaultCatalog()),
		analyzer: NewAnalyzer(),
	}
}

// ValidateFile validates one file and returns every issue found.
//
// Failures become issues instead of errors: an unreadable file yields a
// single HIGH issue, an unparsable file yields the line-scanner findings
// plus one HIGH parse-error issue, and any unexpected fault is caught
// here so it can never abort a directory scan.
func (v *Validator) ValidateFile(path string) (issues []Issue) {
	// An unexpected fault becomes one more issue on top of whatever the
	// earlier phases already found, never a dropped result.
	defer func() {
		if r := recover(); r != nil {
			issues = append(issues, Issue{
				Level:       LevelHigh,
				Message:     fmt.Sprintf("Error validating file: %v", r),
				CodeSnippet: fmt.Sprint(r),
			})
		}
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		return []Issue{{
			Level:       LevelHigh,
			Message:     fmt.Sprintf("Error validating file: %v", err),
			CodeSnippet: err.Error(),
		}}
	}

	// Best-effort text recovery: undecodable bytes are replaced, never
	// rejected, so the line scanner always runs.
	content := strings.ToValidUTF8(string(data), string(utf8.RuneError))

	issues = v.scanner.Scan(content)

	tree, err := parser.ParseString(content, py.ExecMode)
	if err != nil {
		return append(issues, v.parseErrorIssue(content, err))
	}

	return append(issues, v.analyzer.Analyze(tree)...)
}

// parseErrorIssue converts a parser failure into one HIGH issue carrying
// the reported position and the offending source line when available.
func (v *Validator) parseErrorIssue(content string, err error) Issue {
	issue := Issue{
		Level:   LevelHigh,
		Message: fmt.Sprintf("Syntax error in file: %v", err),
	}

	exc, ok := err.(*py.Exception)
	if !ok {
		return issue
	}
	if n, ok := exc.Dict["lineno"].(py.Int); ok && n > 0 {
		line := int(n)
		issue.Line = intPtr(line)
		if lines := strings.Split(content, "\n"); line <= len(lines) {
			issue.CodeSnippet = lines[line-1]
		}
	}
	if n, ok := exc.Dict["offset"].(py.Int); ok {
		issue.Column = intPtr(int(n))
	}
	return issue
}
