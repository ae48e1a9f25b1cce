package main

import (
	"testing"

	"github.com/wronai/taskguard/internal/task"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    task.Priority
		wantErr bool
	}{
		{"high", task.PriorityHigh, false},
		{"medium", task.PriorityMedium, false},
		{"low", task.PriorityLow, false},
		{"urgent", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parsePriority(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePriority(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parsePriority(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPriorityName(t *testing.T) {
	if got := priorityName(task.PriorityHigh); got != "high" {
		t.Errorf("priorityName(high) = %q", got)
	}
	if got := priorityName(task.Priority(9)); got != "p9" {
		t.Errorf("priorityName(9) = %q", got)
	}
}

func TestStatusGlyph(t *testing.T) {
	tests := []struct {
		status task.Status
		want   string
	}{
		{task.StatusTodo, "[ ]"},
		{task.StatusInProgress, "[~]"},
		{task.StatusCompleted, "[x]"},
		{task.StatusBlocked, "[!]"},
	}

	for _, tt := range tests {
		if got := statusGlyph(tt.status); got != tt.want {
			t.Errorf("statusGlyph(%s) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
