package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings holds the user-tunable behaviour of search and import.
type Settings struct {
	AllowEmptySearch     bool     `json:"allow_empty_search"`
	SkipDuplicates       bool     `json:"skip_duplicates"`
	CopyTags             bool     `json:"copy_tags"`
	TagOriginalNotes     bool     `json:"tag_original_notes"`
	ExportedTag          string   `json:"exported_tag"`
	MaxDisplayedNotes    int      `json:"max_displayed_notes"`
	HiddenFields         []string `json:"hidden_fields"`
	ReuseClonedNotetypes bool     `json:"reuse_cloned_notetypes"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		AllowEmptySearch:     false,
		SkipDuplicates:       true,
		CopyTags:             true,
		TagOriginalNotes:     false,
		ExportedTag:          "exported",
		MaxDisplayedNotes:    100,
		ReuseClonedNotetypes: true,
	}
}

// LoadSettings reads the settings file, falling back to defaults when the
// file is absent. Unknown keys are ignored; missing keys keep defaults.
func LoadSettings() (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(GetSettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read settings: %w", err)
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

// SaveSettings writes the settings file, creating the base directory if
// needed.
func SaveSettings(settings Settings) error {
	if err := os.MkdirAll(GetBaseDir(), 0o750); err != nil {
		return fmt.Errorf("failed to create base directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return os.WriteFile(GetSettingsPath(), append(data, '\n'), 0o600)
}
