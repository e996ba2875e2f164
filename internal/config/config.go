// Package config resolves cropro storage locations and user settings.
package config

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
)

// GetBaseDir resolves the directory that holds all profile folders. An
// explicit CROPRO_BASE takes precedence, then XDG paths, then the user's
// home directory.
func GetBaseDir() string {
	if explicit := os.Getenv("CROPRO_BASE"); explicit != "" {
		return explicit
	}

	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "cropro")
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "cropro")
}

// GetProfileDir returns the directory of the named profile.
func GetProfileDir(profile string) string {
	return filepath.Join(GetBaseDir(), profile)
}

// GetCollectionPath returns the SQLite database file of the named profile.
func GetCollectionPath(profile string) string {
	return filepath.Join(GetProfileDir(profile), "collection.db")
}

// GetMediaDir returns the media directory of the named profile.
func GetMediaDir(profile string) string {
	return filepath.Join(GetProfileDir(profile), "collection.media")
}

// GetSettingsPath returns the location of the shared settings file.
func GetSettingsPath() string {
	return filepath.Join(GetBaseDir(), "settings.json")
}

// ProfileExists reports whether the named profile has a collection on disk.
func ProfileExists(profile string) bool {
	_, err := os.Stat(GetCollectionPath(profile))
	return err == nil
}

// ListProfiles returns the names of all profiles under the base directory,
// sorted by name. A profile is any directory containing a collection file.
func ListProfiles() ([]string, error) {
	entries, err := os.ReadDir(GetBaseDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && ProfileExists(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// OtherProfileNames returns every profile except the given one. Importing
// only makes sense between two distinct profiles.
func OtherProfileNames(current string) ([]string, error) {
	all, err := ListProfiles()
	if err != nil {
		return nil, err
	}

	others := make([]string, 0, len(all))
	for _, name := range all {
		if name != current {
			others = append(others, name)
		}
	}
	return others, nil
}
