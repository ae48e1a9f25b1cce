// Package security implements the static security-analysis engine.
//
// Each file is checked by two complementary passes:
//
//   - Line scanning: the compiled pattern catalog (insecure functions,
//     dangerous imports, shell-injection shapes, hardcoded secrets,
//     SQL-injection and XSS heuristics) applied to raw text, line by line.
//   - Syntax analysis: a walk over the parsed Python syntax tree for call
//     shapes that text patterns cannot express reliably.
//
// The Validator merges both passes into one ordered issue list per file,
// and the Scanner aggregates validated files into a path-to-issues map.
// Read and parse failures are reported as issues, not errors; only an
// invalid scan root aborts a directory scan.
package security
