package security

import (
	"fmt"
	"strings"
)

// LineScanner applies the pattern catalog to raw file text, line by line.
// It is a pure text pass: no file access, no side effects, and it never
// fails. Matches are not deduplicated; two categories matching the same
// line report two issues.
type LineScanner struct {
	catalog *Catalog
}

// NewLineScanner creates a line scanner borrowing the given catalog.
func NewLineScanner(catalog *Catalog) *LineScanner {
	return &LineScanner{catalog: catalog}
}

// Scan checks every line of content against every catalog category and
// returns the findings in category order: dangerous imports, insecure
// functions, shell injection, hardcoded secrets, SQL injection, XSS.
// Line numbers are 1-based.
func (ls *LineScanner) Scan(content string) []Issue {
	lines := strings.Split(content, "\n")

	var issues []Issue
	issues = append(issues, ls.scanImports(lines)...)
	issues = append(issues, ls.scanInsecureFunctions(lines)...)
	issues = append(issues, ls.scanSimple(lines, CategoryShellInjection, "Potential shell injection vulnerability")...)
	issues = append(issues, ls.scanSimple(lines, CategoryHardcodedSecrets, "Potential hardcoded secret detected")...)
	issues = append(issues, ls.scanSimple(lines, CategorySQLInjection, "Potential SQL injection via string formatting")...)
	issues = append(issues, ls.scanSimple(lines, CategoryXSS, "Potential XSS vector in generated output")...)
	return issues
}

func (ls *LineScanner) scanImports(lines []string) []Issue {
	cat := CategoryDangerousImports
	var issues []Issue
	for i, line := range lines {
		for _, p := range ls.catalog.Patterns(cat) {
			if p.re.MatchString(line) {
				trimmed := strings.TrimSpace(line)
				issues = append(issues, Issue{
					Level:         ls.catalog.Severity(cat),
					Message:       fmt.Sprintf("Dangerous import detected: %s", trimmed),
					Line:          intPtr(i + 1),
					CodeSnippet:   line,
					FixSuggestion: fmt.Sprintf(ls.catalog.FixSuggestion(cat), trimmed),
				})
			}
		}
	}
	return issues
}

func (ls *LineScanner) scanInsecureFunctions(lines []string) []Issue {
	cat := CategoryInsecureFunctions
	var issues []Issue
	for i, line := range lines {
		// Comment lines are excluded for this category only.
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		for _, p := range ls.catalog.Patterns(cat) {
			if p.re.MatchString(line) {
				issues = append(issues, Issue{
					Level:         ls.catalog.Severity(cat),
					Message:       fmt.Sprintf("Insecure function call: %s", p.name),
					Line:          intPtr(i + 1),
					CodeSnippet:   line,
					FixSuggestion: fmt.Sprintf(ls.catalog.FixSuggestion(cat), p.name),
				})
			}
		}
	}
	return issues
}

// scanSimple handles the categories whose message and fix suggestion do
// not depend on the matched construct.
func (ls *LineScanner) scanSimple(lines []string, cat Category, message string) []Issue {
	var issues []Issue
	for i, line := range lines {
		for _, p := range ls.catalog.Patterns(cat) {
			if p.re.MatchString(line) {
				issues = append(issues, Issue{
					Level:         ls.catalog.Severity(cat),
					Message:       message,
					Line:          intPtr(i + 1),
					CodeSnippet:   line,
					FixSuggestion: ls.catalog.FixSuggestion(cat),
				})
			}
		}
	}
	return issues
}
