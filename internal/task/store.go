package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// boardFile represents the persisted board data.
type boardFile struct {
	Tasks []*Task `json:"tasks"`
}

// Store handles JSON persistence of the task board.
type Store struct {
	filePath string
}

// NewStore creates a new store for the given file path.
func NewStore(filePath string) *Store {
	return &Store{filePath: filePath}
}

// Save persists tasks to the JSON file.
func (s *Store) Save(tasks []*Task) error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(boardFile{Tasks: tasks}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write board file: %w", err)
	}
	return nil
}

// Load loads tasks from the JSON file. A missing file is an empty board.
func (s *Store) Load() ([]*Task, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Task{}, nil
		}
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}

	var bf boardFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal board file: %w", err)
	}
	return bf.Tasks, nil
}
