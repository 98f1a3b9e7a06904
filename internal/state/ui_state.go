package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/insightr/internal/logger"
)

const fileName = "ui-state.json"

// UIState holds dashboard preferences that carry across runs.
// Wizard state is never persisted.
type UIState struct {
	Charts ChartsState `json:"charts"`
}

// ChartsState holds the charts grid visibility preference.
type ChartsState struct {
	Visible bool `json:"visible"`
}

// DefaultUIState returns the state used when nothing has been saved.
func DefaultUIState() *UIState {
	return &UIState{
		Charts: ChartsState{Visible: true},
	}
}

// Load reads <dataDir>/ui-state.json. Missing keys keep their defaults and a
// missing or unreadable file yields the default state.
func Load(dataDir string) *UIState {
	path := filepath.Join(dataDir, fileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read UI state file: %v", err)
		}
		return DefaultUIState()
	}

	state := DefaultUIState()
	if err := json.Unmarshal(data, state); err != nil {
		logger.Warn("Failed to parse UI state JSON: %v", err)
		return DefaultUIState()
	}

	return state
}

// Save writes the UI state to <dataDir>/ui-state.json, creating dataDir.
func Save(dataDir string, state *UIState) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling UI state: %w", err)
	}

	path := filepath.Join(dataDir, fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing UI state file: %w", err)
	}

	logger.Debug("UI state saved to %s", path)
	return nil
}
