package store

import (
	"context"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

// SettingsResult carries the new settings. ReloadRequired tells callers that
// views built from the old settings must be rebuilt; nothing is hot-applied.
type SettingsResult struct {
	Settings       pos.Settings `json:"settings"`
	ReloadRequired bool         `json:"reloadRequired"`
}

func (s *Store) Settings() pos.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Settings
}

// UpdateSettings merges the fields present in patch over the current settings.
func (s *Store) UpdateSettings(ctx context.Context, patch pos.SettingsPatch) (SettingsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patch.Apply(&s.state.Settings)

	if err := s.flush(ctx); err != nil {
		return SettingsResult{}, err
	}

	return SettingsResult{Settings: s.state.Settings, ReloadRequired: true}, nil
}

// ResetSettings replaces every field with the built-in defaults.
func (s *Store) ResetSettings(ctx context.Context) (SettingsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Settings = pos.DefaultSettings()

	if err := s.flush(ctx); err != nil {
		return SettingsResult{}, err
	}

	return SettingsResult{Settings: s.state.Settings, ReloadRequired: true}, nil
}
