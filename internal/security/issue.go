package security

import (
	"encoding/json"
	"fmt"
)

// Level classifies the severity of a security issue.
type Level int

const (
	LevelLow Level = iota + 1
	LevelMedium
	LevelHigh
	LevelCritical
)

// String returns the serialized name of the level.
func (l Level) String() string {
	switch l {
	case LevelLow:
		return "LOW"
	case LevelMedium:
		return "MEDIUM"
	case LevelHigh:
		return "HIGH"
	case LevelCritical:
		return "CRITICAL"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel converts a serialized level name back to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "LOW":
		return LevelLow, nil
	case "MEDIUM":
		return LevelMedium, nil
	case "HIGH":
		return LevelHigh, nil
	case "CRITICAL":
		return LevelCritical, nil
	}
	return 0, fmt.Errorf("unknown severity level %q", s)
}

// Issue is one security finding. Issues are immutable once created;
// identity is positional, there is no issue ID.
type Issue struct {
	Level   Level
	Message string

	// Line is the 1-based line number, nil when unknown.
	Line *int

	// Column is the 0-based column offset, nil when unknown.
	Column *int

	// CodeSnippet holds the offending source line, empty when unavailable.
	CodeSnippet string

	// FixSuggestion holds optional remediation text.
	FixSuggestion string
}

// issueWire is the serialized issue shape. Absent optionals are explicit
// nulls, never omitted keys.
type issueWire struct {
	Level         string  `json:"level"`
	Message       string  `json:"message"`
	Line          *int    `json:"line"`
	Column        *int    `json:"column"`
	CodeSnippet   *string `json:"code_snippet"`
	FixSuggestion *string `json:"fix_suggestion"`
}

// MarshalJSON serializes the issue in the report format.
func (i Issue) MarshalJSON() ([]byte, error) {
	w := issueWire{
		Level:   i.Level.String(),
		Message: i.Message,
		Line:    i.Line,
		Column:  i.Column,
	}
	if i.CodeSnippet != "" {
		w.CodeSnippet = &i.CodeSnippet
	}
	if i.FixSuggestion != "" {
		w.FixSuggestion = &i.FixSuggestion
	}
	return json.Marshal(w)
}

// UnmarshalJSON restores an issue from the report format.
func (i *Issue) UnmarshalJSON(data []byte) error {
	var w issueWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	level, err := ParseLevel(w.Level)
	if err != nil {
		return err
	}
	i.Level = level
	i.Message = w.Message
	i.Line = w.Line
	i.Column = w.Column
	i.CodeSnippet = ""
	if w.CodeSnippet != nil {
		i.CodeSnippet = *w.CodeSnippet
	}
	i.FixSuggestion = ""
	if w.FixSuggestion != nil {
		i.FixSuggestion = *w.FixSuggestion
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
