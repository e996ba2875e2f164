package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cropro",
	Short: "cropro - cross-profile note search and import",
	Long:  "cropro finds notes in one profile's collection and imports them into another, carrying note types, tags, and media along.",
}

func init() {
	rootCmd.AddCommand(newProfilesCmd())
	rootCmd.AddCommand(newDecksCmd())
	rootCmd.AddCommand(newNotetypesCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newMCPCmd())
}
