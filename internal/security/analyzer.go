package security

import (
	"fmt"

	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/py"
)

// dangerousBuiltins are free functions whose direct call is flagged as
// critical, on top of whatever the line scanner already reported for the
// same call. The two passes are additive.
var dangerousBuiltins = map[ast.Identifier]bool{
	"eval":     true,
	"exec":     true,
	"execfile": true,
}

// shellSpawners are the subprocess entry points checked for a literal
// shell=True keyword argument.
var shellSpawners = map[ast.Identifier]bool{
	"Popen": true,
	"run":   true,
	"call":  true,
}

// Analyzer walks a parsed Python syntax tree and reports structural
// findings that text patterns cannot express reliably. It only fires on
// the exact call and argument shapes it checks for, never on substrings.
type Analyzer struct{}

// NewAnalyzer creates a syntax analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze visits every call expression in the tree. Line and column are
// taken from the node's source position.
func (a *Analyzer) Analyze(tree ast.Ast) []Issue {
	var issues []Issue
	ast.Walk(tree, func(node ast.Ast) bool {
		if call, ok := node.(*ast.Call); ok {
			issues = append(issues, a.checkCall(call)...)
		}
		return true
	})
	return issues
}

func (a *Analyzer) checkCall(call *ast.Call) []Issue {
	var issues []Issue

	// The parser leaves the position zeroed on the Call node itself; the
	// callee expression carries the real source position.
	line, col := call.Func.GetLineno(), call.Func.GetColOffset()

	if name, ok := call.Func.(*ast.Name); ok && dangerousBuiltins[name.Id] {
		issues = append(issues, Issue{
			Level:         LevelCritical,
			Message:       fmt.Sprintf("Use of dangerous function: %s", name.Id),
			Line:          intPtr(line),
			Column:        intPtr(col),
			FixSuggestion: fmt.Sprintf("Avoid using %s, consider safer alternatives", name.Id),
		})
	}

	if a.isShellTrueCall(call) {
		issues = append(issues, Issue{
			Level:         LevelHigh,
			Message:       "Potential shell injection with shell=True",
			Line:          intPtr(line),
			Column:        intPtr(col),
			FixSuggestion: "Avoid shell=True when possible, or use shlex.quote() on arguments",
		})
	}

	return issues
}

// isShellTrueCall reports whether call is subprocess.Popen/run/call with
// a literal shell=True keyword.
func (a *Analyzer) isShellTrueCall(call *ast.Call) bool {
	attr, ok := call.Func.(*ast.Attribute)
	if !ok || !shellSpawners[attr.Attr] {
		return false
	}
	mod, ok := attr.Value.(*ast.Name)
	if !ok || mod.Id != "subprocess" {
		return false
	}
	for _, kw := range call.Keywords {
		if kw.Arg != "shell" {
			continue
		}
		if c, ok := kw.Value.(*ast.NameConstant); ok && c.Value == py.True {
			return true
		}
	}
	return false
}
