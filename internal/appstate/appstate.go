// Package appstate holds the explicit application feature flags with a
// load/save lifecycle, replacing the ambient global toggles the app
// screens used to flip.
package appstate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"dayboard/internal/snapshot"
)

// Flags are the persisted feature toggles. Widget kinds missing from the
// file default to enabled.
type Flags struct {
	HabitsWidget  *bool `json:"habitsWidget,omitempty"`
	FinanceWidget *bool `json:"financeWidget,omitempty"`
	PlannerWidget *bool `json:"plannerWidget,omitempty"`
}

// State is the in-memory view of the flags file.
type State struct {
	mu    sync.RWMutex
	path  string
	flags Flags
}

// Load reads the flags file. A missing file is the default state, not an
// error.
func Load(path string) (*State, error) {
	s := &State{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read app state: %w", err)
	}
	if err := json.Unmarshal(data, &s.flags); err != nil {
		return nil, fmt.Errorf("parse app state: %w", err)
	}
	return s, nil
}

// Save writes the flags file atomically.
func (s *State) Save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.flags, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal app state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create app state directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".appstate-*.tmp")
	if err != nil {
		return fmt.Errorf("create app state temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write app state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close app state temp file: %w", err)
	}
	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("publish app state: %w", err)
	}
	return nil
}

// WidgetEnabled reports whether syncing is enabled for a widget kind.
func (s *State) WidgetEnabled(kind snapshot.Kind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var flag *bool
	switch kind {
	case snapshot.KindHabit:
		flag = s.flags.HabitsWidget
	case snapshot.KindFinance:
		flag = s.flags.FinanceWidget
	case snapshot.KindPlanner:
		flag = s.flags.PlannerWidget
	}
	if flag == nil {
		return true
	}
	return *flag
}

// SetWidgetEnabled flips a widget kind's flag in memory. Call Save to
// persist.
func (s *State) SetWidgetEnabled(kind snapshot.Kind, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := enabled
	switch kind {
	case snapshot.KindHabit:
		s.flags.HabitsWidget = &v
	case snapshot.KindFinance:
		s.flags.FinanceWidget = &v
	case snapshot.KindPlanner:
		s.flags.PlannerWidget = &v
	}
}
