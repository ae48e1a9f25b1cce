package task

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Board manages the project's task list with persistence. At most one
// task may be in progress at a time: finish or park the current task
// before starting another.
type Board struct {
	store *Store
	tasks []*Task
	mu    sync.RWMutex
}

// NewBoard creates a board backed by the given file, loading any
// previously saved tasks.
func NewBoard(filePath string) *Board {
	store := NewStore(filePath)
	tasks, _ := store.Load()

	return &Board{
		store: store,
		tasks: tasks,
	}
}

// Add appends a new todo task and persists the board.
func (b *Board) Add(title, category string, priority Priority) (*Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := New(title, category, priority)
	b.tasks = append(b.tasks, t)

	if err := b.store.Save(b.tasks); err != nil {
		return nil, err
	}
	return t, nil
}

// Start moves a task to in_progress, enforcing single-task focus.
func (b *Board) Start(id string) (*Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if active := b.activeLocked(); active != nil && !strings.HasPrefix(active.ID, id) {
		return nil, fmt.Errorf("already working on %q, complete it first", active.Title)
	}

	t, err := b.findLocked(id)
	if err != nil {
		return nil, err
	}
	if !t.TransitionTo(StatusInProgress) {
		return nil, fmt.Errorf("cannot start task in state %s", t.Status)
	}
	return t, b.store.Save(b.tasks)
}

// Complete finishes the given task.
func (b *Board) Complete(id string) (*Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, err := b.findLocked(id)
	if err != nil {
		return nil, err
	}
	if !t.TransitionTo(StatusCompleted) {
		return nil, fmt.Errorf("cannot complete task in state %s", t.Status)
	}
	return t, b.store.Save(b.tasks)
}

// Block parks the given task.
func (b *Board) Block(id string) (*Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, err := b.findLocked(id)
	if err != nil {
		return nil, err
	}
	if !t.TransitionTo(StatusBlocked) {
		return nil, fmt.Errorf("cannot block task in state %s", t.Status)
	}
	return t, b.store.Save(b.tasks)
}

// Import merges externally parsed tasks into the board, skipping titles
// that already exist.
func (b *Board) Import(tasks []*Task) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	existing := make(map[string]bool, len(b.tasks))
	for _, t := range b.tasks {
		existing[t.Title] = true
	}

	added := 0
	for _, t := range tasks {
		if existing[t.Title] {
			continue
		}
		b.tasks = append(b.tasks, t)
		existing[t.Title] = true
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, b.store.Save(b.tasks)
}

// Active returns the task currently in progress, or nil.
func (b *Board) Active() *Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.activeLocked()
}

// Get returns the task whose ID equals or starts with id.
func (b *Board) Get(id string) (*Task, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.findLocked(id)
}

// List returns all tasks ordered by priority, then creation time.
func (b *Board) List() []*Task {
	b.mu.RLock()
	defer b.mu.RUnlock()

	result := make([]*Task, len(b.tasks))
	copy(result, b.tasks)
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Priority != result[j].Priority {
			return result[i].Priority < result[j].Priority
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}

func (b *Board) activeLocked() *Task {
	for _, t := range b.tasks {
		if t.Status == StatusInProgress {
			return t
		}
	}
	return nil
}

func (b *Board) findLocked(id string) (*Task, error) {
	var match *Task
	for _, t := range b.tasks {
		if t.ID == id {
			return t, nil
		}
		if strings.HasPrefix(t.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("task ID prefix %q is ambiguous", id)
			}
			match = t
		}
	}
	if match == nil {
		return nil, fmt.Errorf("task %q not found", id)
	}
	return match, nil
}
