package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ajatt-tools/cropro/internal/collection"
)

func newNotetypesCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "notetypes",
		Short: "List the note types of a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			col, err := collection.Open(profile)
			if err != nil {
				return err
			}
			defer func() {
				_ = col.Close()
			}()

			notetypes, err := collection.NewNotetypeRepository(col).List(context.Background())
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Note Type", "Fields"})
			for _, nt := range notetypes {
				t.AppendRow(table.Row{nt.ID, nt.Name, strings.Join(nt.Fields, ", ")})
			}
			t.Render()

			if len(notetypes) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No note types yet; importing will install them as needed.")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "Profile name")
	_ = cmd.MarkFlagRequired("profile")

	return cmd
}
