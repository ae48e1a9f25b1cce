package security

import "regexp"

// Category identifies one group of related detectors in the catalog.
type Category string

const (
	CategoryInsecureFunctions Category = "insecure_functions"
	CategoryDangerousImports  Category = "dangerous_imports"
	CategoryShellInjection    Category = "shell_injection"
	CategoryHardcodedSecrets  Category = "hardcoded_secrets"
	CategorySQLInjection      Category = "sql_injection"
	CategoryXSS               Category = "xss"
)

// Pattern is one compiled detector.
type Pattern struct {
	re *regexp.Regexp

	// name is set for insecure-function detectors only and carries the
	// denylisted function the pattern was built from.
	name string
}

// insecureFunctions is the denylist of qualified and unqualified function
// names whose call is always flagged.
var insecureFunctions = []string{
	"eval",
	"exec",
	"execfile",
	"compile",
	"os.system",
	"os.popen",
	"os.popen2",
	"os.popen3",
	"os.popen4",
	"os.execl",
	"os.execle",
	"os.execlp",
	"os.execlpe",
	"os.execv",
	"os.execve",
	"os.execvp",
	"os.execvpe",
	"os.spawnl",
	"os.spawnle",
	"os.spawnlp",
	"os.spawnlpe",
	"os.spawnv",
	"os.spawnve",
	"os.spawnvp",
	"os.spawnvpe",
	"os.startfile",
	"pickle.load",
	"pickle.loads",
	"cPickle.load",
	"cPickle.loads",
	"subprocess.call",
	"subprocess.check_call",
	"subprocess.check_output",
	"subprocess.Popen",
	"subprocess.run",
	"pickle.Unpickler",
	"cPickle.Unpickler",
	"marshal.load",
	"marshal.loads",
	"yaml.load",
	"yaml.unsafe_load",
	"yaml.full_load",
	"pickletools.optimize",
}

// dangerousImports matches import statements of denylisted modules,
// anchored at line start.
var dangerousImports = []string{
	`^\s*import\s+os\s*$`,
	`^\s*from\s+os\s+import`,
	`^\s*import\s+subprocess\s*$`,
	`^\s*from\s+subprocess\s+import`,
	`^\s*import\s+pickle\s*$`,
	`^\s*from\s+pickle\s+import`,
	`^\s*import\s+cPickle\s*$`,
	`^\s*from\s+cPickle\s+import`,
	`^\s*import\s+shell\s*$`,
	`^\s*from\s+shell\s+import`,
	`^\s*import\s+commands\s*$`,
	`^\s*from\s+commands\s+import`,
	`^\s*import\s+pty\s*$`,
	`^\s*from\s+pty\s+import`,
	`^\s*import\s+shlex\s*$`,
	`^\s*from\s+shlex\s+import`,
}

// shellInjectionPatterns covers shell metacharacters reaching
// shell-executing calls plus the generic bare metacharacter, command
// substitution, redirection, pipe and background-operator shapes. The
// generic shapes fire on any line containing them.
var shellInjectionPatterns = []string{
	`os\.system\([^)]*[;&|` + "`" + `]`,
	`subprocess\.(call|check_call|check_output|run|Popen)\([^)]*shell\s*=\s*True[^)]*[;&|` + "`" + `]`,
	`[;&|` + "`" + `]`,
	`\$\([^)]*\)`,
	"`[^`]*`",
	`[><]`,
	`\|`,
	`&`,
}

// hardcodedSecretsPatterns matches key=value assignments of quoted
// credential-looking literals, plus bearer tokens and database URIs with
// embedded credentials. All are matched case-insensitively.
var hardcodedSecretsPatterns = []string{
	`api[_-]?key\s*[=:]\s*["'][\w-]{20,}["']`,
	`password\s*[=:]\s*["'][^"']+["']`,
	`secret[_-]?key\s*[=:]\s*["'][\w-]{20,}["']`,
	`bearer\s+[\w-]{20,}`,
	`oauth[\w-]*\s*[=:]\s*["'][\w-]{20,}["']`,
	`aws[_-]?(?:access[_-]?key[_-]?id|secret[_-]?access[_-]?key|session[_-]?token)\s*[=:]\s*["'][\w-]{20,}["']`,
	`(?:postgres|postgresql|mysql|mongodb|redis)://[\w-]+:[^@\s]+@`,
}

// sqlInjectionPatterns is a classification heuristic for string-composed
// SQL, not an exploitability proof.
var sqlInjectionPatterns = []string{
	`"[^"]*\s*\+\s*[^\s"]*sql`,
	`"[^"]*\s*%\s*[^\s"]*sql`,
	`"[^"]*\s*\{\s*[^\s"]*\s*\}\s*[^\s"]*sql`,
	`cursor\.(execute|executemany|callproc|executescript)\s*\(\s*f?["']`,
	`SELECT\s+\*\s+FROM\s+\w+\s+WHERE\s+[^;]+\s*%\s*\(`,
	`SELECT\s+\*\s+FROM\s+\w+\s+WHERE\s+[^;]+\s*\+\s*`,
}

// xssPatterns flags raw script-capable HTML, inline event handlers,
// javascript: URLs and script-capable data URIs.
var xssPatterns = []string{
	`<\s*/?\s*(?:script|iframe|object|embed|applet|form|input|button|select|textarea|style|link|meta|base|frame|frameset)`,
	`on(?:load|click|dblclick|mousedown|mouseup|mousemove|mouseout|mouseover|mouseenter|mouseleave|keydown|keyup|keypress|submit|reset|focus|blur|change|select|error)`,
	`javascript:`,
	`data:\s*text/(?:html|javascript|vbscript)`,
}

// categoryMeta holds the severity and fix-suggestion template shared by
// every detector of a category.
type categoryMeta struct {
	severity Level
	fix      string
}

var catalogMeta = map[Category]categoryMeta{
	CategoryInsecureFunctions: {LevelHigh, "Replace %s with a safer alternative"},
	CategoryDangerousImports:  {LevelHigh, "Avoid using %s, use safer alternatives"},
	CategoryShellInjection:    {LevelCritical, "Use subprocess with shell=False or use shlex.quote() for shell=True"},
	CategoryHardcodedSecrets:  {LevelHigh, "Store secrets in environment variables or a secure secret manager"},
	CategorySQLInjection:      {LevelHigh, "Use parameterized queries instead of building SQL from strings"},
	CategoryXSS:               {LevelMedium, "Escape or sanitize HTML output before rendering it"},
}

// Catalog is the process-wide set of compiled detectors, grouped by
// category. It is built once and never mutated afterwards; every scan
// pass borrows the same matcher objects.
type Catalog struct {
	patterns map[Category][]Pattern
}

// defaultCatalog is compiled at process start and shared read-only.
var defaultCatalog = newCatalog()

// DefaultCatalog returns the shared compiled pattern catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func newCatalog() *Catalog {
	c := &Catalog{patterns: make(map[Category][]Pattern)}

	for _, fn := range insecureFunctions {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(fn) + `\s*\(`)
		c.patterns[CategoryInsecureFunctions] = append(c.patterns[CategoryInsecureFunctions], Pattern{re: re, name: fn})
	}
	c.compile(CategoryDangerousImports, dangerousImports, false)
	c.compile(CategoryShellInjection, shellInjectionPatterns, false)
	c.compile(CategoryHardcodedSecrets, hardcodedSecretsPatterns, true)
	c.compile(CategorySQLInjection, sqlInjectionPatterns, true)
	c.compile(CategoryXSS, xssPatterns, true)

	return c
}

func (c *Catalog) compile(cat Category, exprs []string, ignoreCase bool) {
	for _, expr := range exprs {
		if ignoreCase {
			expr = `(?i)` + expr
		}
		c.patterns[cat] = append(c.patterns[cat], Pattern{re: regexp.MustCompile(expr)})
	}
}

// Patterns returns the ordered detector list for a category.
func (c *Catalog) Patterns(cat Category) []Pattern {
	return c.patterns[cat]
}

// Severity returns the severity assigned to findings from a category.
func (c *Catalog) Severity(cat Category) Level {
	return catalogMeta[cat].severity
}

// FixSuggestion returns the remediation template for a category.
func (c *Catalog) FixSuggestion(cat Category) string {
	return catalogMeta[cat].fix
}
