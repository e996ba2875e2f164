package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ajatt-tools/cropro/internal/collection"
)

func newDecksCmd() *cobra.Command {
	var (
		profile string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "decks",
		Short: "List the decks of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			col, err := collection.Open(profile)
			if err != nil {
				return err
			}
			defer func() {
				_ = col.Close()
			}()

			decks, err := collection.NewDeckRepository(col).List(context.Background())
			if err != nil {
				return err
			}

			switch format {
			case "json":
				type deckOutput struct {
					ID   int64  `json:"id"`
					Name string `json:"name"`
				}
				output := make([]deckOutput, 0, len(decks))
				for _, deck := range decks {
					output = append(output, deckOutput{ID: deck.ID, Name: deck.Name})
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(output)
			case "table":
				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"ID", "Deck"})
				for _, deck := range decks {
					t.AppendRow(table.Row{deck.ID, deck.Name})
				}
				t.Render()
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Profile name")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}
