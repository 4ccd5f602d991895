// Package preset stores named crop sizes as a JSON file in the per-user
// application directory.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Preset is one named crop size. Width and height are positive.
type Preset struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Store reads and writes one preset file.
type Store struct {
	path string
}

// DefaultPath returns ~/.photolab/crop_presets.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".photolab", "crop_presets.json"), nil
}

// NewStore returns a store over the given file path.
func NewStore(path string) *Store { return &Store{path: path} }

// Load reads the preset list. A missing file yields an empty list. Records
// with a missing or empty name or non-positive dimensions are skipped
// silently; only an unreadable file or malformed JSON is an error.
func (s *Store) Load() ([]Preset, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read presets: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	presets := make([]Preset, 0, len(raw))
	for _, record := range raw {
		var p Preset
		if err := json.Unmarshal(record, &p); err != nil {
			continue
		}
		if strings.TrimSpace(p.Name) == "" || p.Width <= 0 || p.Height <= 0 {
			continue
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// Save writes the full ordered list, creating the parent directory when
// needed.
func (s *Store) Save(presets []Preset) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preset directory: %w", err)
	}
	data, err := json.MarshalIndent(presets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write presets: %w", err)
	}
	return nil
}

// Find returns the preset whose name matches case-insensitively.
func Find(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
