package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const stateFileName = "state.json"

// State tracks per-project progress between command invocations.
type State struct {
	CurrentTaskID  string    `json:"current_task_id,omitempty"`
	CompletedCount int       `json:"completed_count"`
	LastScanAt     time.Time `json:"last_scan_at,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// LoadState loads the project state from dir. A missing file is a fresh
// state, not an error.
func LoadState(dir string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(dir, stateFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &s, nil
}

// Save persists the state into dir, creating it if needed.
func (s *State) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	s.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, stateFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
