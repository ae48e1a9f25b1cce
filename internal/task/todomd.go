package task

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ImportTodoFile parses a markdown TODO checklist and returns one task
// per checkbox item, in document order. Checked items come back already
// completed.
func ImportTodoFile(path string) ([]*Task, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read todo file: %w", err)
	}
	return ParseTodo(src), nil
}

// ParseTodo extracts checklist tasks from markdown source.
func ParseTodo(src []byte) []*Task {
	md := goldmark.New(goldmark.WithExtensions(extension.TaskList))
	doc := md.Parser().Parse(text.NewReader(src))

	var tasks []*Task
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		box, ok := n.(*east.TaskCheckBox)
		if !ok {
			return ast.WalkContinue, nil
		}

		title := checkboxTitle(box, src)
		if title == "" {
			return ast.WalkContinue, nil
		}

		t := New(title, "", PriorityMedium)
		if box.IsChecked {
			t.Status = StatusCompleted
			t.Progress = 1.0
		}
		tasks = append(tasks, t)
		return ast.WalkContinue, nil
	})
	return tasks
}

// checkboxTitle collects the text following a checkbox within its list
// item line.
func checkboxTitle(box *east.TaskCheckBox, src []byte) string {
	parent := box.Parent()
	if parent == nil {
		return ""
	}

	var sb strings.Builder
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		if c == box {
			continue
		}
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
	}
	return strings.TrimSpace(sb.String())
}
