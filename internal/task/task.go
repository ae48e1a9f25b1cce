// Package task implements the project task board: the TODO list the
// scanner's quality gates are tracked against.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusTodo       Status = "todo"        // Not started yet
	StatusInProgress Status = "in_progress" // Currently being worked on
	StatusCompleted  Status = "completed"   // Finished
	StatusBlocked    Status = "blocked"     // Waiting on something external
)

// Priority orders tasks; lower is more urgent.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Task is one item on the board.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	Tags        []string  `json:"tags,omitempty"`
	Progress    float64   `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates a task in the todo state.
func New(title, category string, priority Priority) *Task {
	now := time.Now()
	return &Task{
		ID:        uuid.New().String(),
		Title:     title,
		Category:  category,
		Priority:  priority,
		Status:    StatusTodo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanTransitionTo checks if a status transition is valid.
func (t *Task) CanTransitionTo(next Status) bool {
	validTransitions := map[Status][]Status{
		StatusTodo:       {StatusInProgress, StatusBlocked},
		StatusInProgress: {StatusCompleted, StatusBlocked, StatusTodo},
		StatusBlocked:    {StatusTodo, StatusInProgress},
	}

	allowed, exists := validTransitions[t.Status]
	if !exists {
		return false
	}
	for _, status := range allowed {
		if status == next {
			return true
		}
	}
	return false
}

// TransitionTo updates the status if the transition is valid and reports
// whether it was applied.
func (t *Task) TransitionTo(next Status) bool {
	if !t.CanTransitionTo(next) {
		return false
	}
	t.Status = next
	t.UpdatedAt = time.Now()
	if next == StatusCompleted {
		t.Progress = 1.0
	}
	return true
}

// UpdateProgress sets the progress, clamped to [0, 1].
func (t *Task) UpdateProgress(progress float64) {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	t.Progress = progress
	t.UpdatedAt = time.Now()
}

// AddTag adds a tag unless it is already present.
func (t *Task) AddTag(tag string) {
	for _, existing := range t.Tags {
		if existing == tag {
			return
		}
	}
	t.Tags = append(t.Tags, tag)
}
