package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/ajatt-tools/cropro/internal/config"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show storage locations and effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}

			profiles, err := config.ListProfiles()
			if err != nil {
				return err
			}

			output := struct {
				Version      string          `json:"version"`
				BaseDir      string          `json:"base_dir"`
				SettingsPath string          `json:"settings_path"`
				Profiles     []string        `json:"profiles"`
				Settings     config.Settings `json:"settings"`
			}{
				Version:      version,
				BaseDir:      config.GetBaseDir(),
				SettingsPath: config.GetSettingsPath(),
				Profiles:     profiles,
				Settings:     settings,
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(output)
		},
	}

	return cmd
}
