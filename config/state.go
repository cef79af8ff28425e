package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"folio/models"

	"github.com/BurntSushi/toml"
)

// TomlState is the client state persisted between runs
type TomlState struct {
	Theme string `toml:"theme"`
}

// StateStore persists client preferences in a TOML file
type StateStore struct {
	path string
}

func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// DefaultStatePath returns <user config dir>/folio/state.toml
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find user config dir: %w", err)
	}
	return filepath.Join(dir, "folio", "state.toml"), nil
}

// LoadTheme returns the persisted theme. ok is false when nothing valid was stored.
func (s *StateStore) LoadTheme() (models.Theme, bool, error) {
	state, err := s.load()
	if err != nil {
		return "", false, err
	}

	theme := models.Theme(state.Theme)
	if !theme.Valid() {
		return "", false, nil
	}
	return theme, true, nil
}

// SaveTheme persists the theme as the literal string "light" or "dark"
func (s *StateStore) SaveTheme(theme models.Theme) error {
	state, err := s.load()
	if err != nil {
		return err
	}
	state.Theme = string(theme)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("error creating state dir: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("error creating state file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(state); err != nil {
		return fmt.Errorf("error writing state file: %w", err)
	}
	return nil
}

func (s *StateStore) load() (TomlState, error) {
	var state TomlState
	_, err := toml.DecodeFile(s.path, &state)
	if errors.Is(err, fs.ErrNotExist) {
		return TomlState{}, nil
	}
	if err != nil {
		return TomlState{}, fmt.Errorf("error reading state file: %w", err)
	}
	return state, nil
}
