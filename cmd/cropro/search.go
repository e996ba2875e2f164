package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ajatt-tools/cropro/internal/collection"
	"github.com/ajatt-tools/cropro/internal/config"
	"github.com/ajatt-tools/cropro/internal/importer"
)

func newSearchCmd() *cobra.Command {
	var (
		fromProfile string
		deckName    string
		format      string
	)

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search notes in a source profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) == 1 {
				query = args[0]
			}

			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}

			secondary := importer.NewSecondary(settings)
			if err := secondary.Open(fromProfile); err != nil {
				return err
			}
			defer secondary.Close()

			ctx := context.Background()

			deckID, err := resolveSourceDeck(ctx, secondary, deckName)
			if err != nil {
				return err
			}

			ids, err := secondary.Query(ctx, deckID, query)
			if err != nil {
				return err
			}

			limited := ids
			if max := settings.MaxDisplayedNotes; max > 0 && len(limited) > max {
				limited = limited[:max]
			}

			rows, err := collectSearchRows(ctx, secondary, limited, settings.HiddenFields)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(rows)
			case "table":
				renderSearchTable(cmd, rows)
				fmt.Fprintf(cmd.OutOrStdout(), "Showing %d of %d matching notes.\n", len(rows), len(ids))
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&fromProfile, "from", "", "Source profile name")
	cmd.Flags().StringVar(&deckName, "deck", "", "Source deck name (whole collection when omitted)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func resolveSourceDeck(ctx context.Context, secondary *importer.Secondary, name string) (int64, error) {
	if name == "" {
		return collection.WholeCollection, nil
	}

	decks, err := secondary.ListDecks(ctx)
	if err != nil {
		return 0, err
	}
	for _, deck := range decks {
		if deck.Name == name {
			return deck.ID, nil
		}
	}
	return 0, fmt.Errorf("source deck not found: %s", name)
}

type searchRow struct {
	ID     int64    `json:"id"`
	Fields []string `json:"fields"`
	Tags   []string `json:"tags,omitempty"`
}

// collectSearchRows reads the given notes and drops fields whose names
// contain one of the configured hidden words.
func collectSearchRows(ctx context.Context, secondary *importer.Secondary, ids []int64, hiddenFields []string) ([]searchRow, error) {
	fieldNames := make(map[int64][]string)
	notetypes := collection.NewNotetypeRepository(secondary.Collection())

	rows := make([]searchRow, 0, len(ids))
	for _, id := range ids {
		note, err := secondary.ReadNote(ctx, id)
		if err != nil {
			return nil, err
		}
		if note == nil {
			continue
		}

		names, ok := fieldNames[note.NotetypeID]
		if !ok {
			names, err = notetypes.FieldNames(ctx, note.NotetypeID)
			if err != nil {
				return nil, err
			}
			fieldNames[note.NotetypeID] = names
		}

		rows = append(rows, searchRow{
			ID:     note.ID,
			Fields: visibleFields(note.Fields, names, hiddenFields),
			Tags:   note.Tags,
		})
	}
	return rows, nil
}

func visibleFields(values, names, hiddenFields []string) []string {
	if len(hiddenFields) == 0 {
		return values
	}

	visible := make([]string, 0, len(values))
	for i, value := range values {
		if i < len(names) && isHiddenField(names[i], hiddenFields) {
			continue
		}
		visible = append(visible, value)
	}
	return visible
}

func isHiddenField(name string, hiddenFields []string) bool {
	lowered := strings.ToLower(name)
	for _, word := range hiddenFields {
		if word != "" && strings.Contains(lowered, strings.ToLower(word)) {
			return true
		}
	}
	return false
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

func renderSearchTable(cmd *cobra.Command, rows []searchRow) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Fields", "Tags"})

	// Fields get whatever the terminal leaves after the id and tag columns.
	// Truncation is done manually because table width limits miscount
	// multi-byte characters.
	const idWidth, tagsWidth, borderPadding = 8, 20, 12
	fieldsWidth := getTerminalWidth() - idWidth - tagsWidth - borderPadding
	if fieldsWidth < 20 {
		fieldsWidth = 20
	}

	for _, row := range rows {
		fields := runewidth.Truncate(strings.Join(row.Fields, " | "), fieldsWidth, "...")
		tags := runewidth.Truncate(strings.Join(row.Tags, " "), tagsWidth, "...")
		t.AppendRow(table.Row{row.ID, fields, tags})
	}
	t.Render()
}
