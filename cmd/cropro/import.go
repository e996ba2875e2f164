package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/ajatt-tools/cropro/internal/collection"
	"github.com/ajatt-tools/cropro/internal/config"
	"github.com/ajatt-tools/cropro/internal/importer"
)

func newImportCmd() *cobra.Command {
	var (
		fromProfile  string
		intoProfile  string
		deckName     string
		notetypeName string
		query        string
		sourceDeck   string
	)

	cmd := &cobra.Command{
		Use:   "import [note-id...]",
		Short: "Import notes from one profile into another",
		Long: "Import the given source notes into the destination profile. " +
			"When no note ids are given, notes are selected with --query.",
		RunE: func(cmd *cobra.Command, args []string) error {
			noteIDs, err := parseNoteIDs(args)
			if err != nil {
				return err
			}

			settings, err := config.LoadSettings()
			if err != nil {
				return err
			}

			dst, err := collection.Open(intoProfile)
			if err != nil {
				return err
			}
			defer func() {
				_ = dst.Close()
			}()

			secondary := importer.NewSecondary(settings)
			if err := secondary.Open(fromProfile); err != nil {
				return err
			}
			defer secondary.Close()

			ctx := context.Background()
			gate := &importer.Gate{}

			if len(noteIDs) == 0 {
				deckID, err := resolveSourceDeck(ctx, secondary, sourceDeck)
				if err != nil {
					return err
				}
				if err := gate.TryAcquire(); err != nil {
					return err
				}
				noteIDs, err = secondary.Query(ctx, deckID, query)
				gate.Release()
				if err != nil {
					return err
				}
			}

			destDeckID, err := collection.NewDeckRepository(dst).GetOrCreate(ctx, deckName)
			if err != nil {
				return err
			}

			notetypeID, err := resolveDestNotetype(ctx, dst, notetypeName)
			if err != nil {
				return err
			}

			pipeline := importer.NewPipeline(dst, secondary, settings, gate)
			result, err := pipeline.Import(ctx, noteIDs, notetypeID, destDeckID)
			if err != nil {
				if errors.Is(err, importer.ErrNoNotetype) {
					return fmt.Errorf("%w; pass --notetype or leave it unset for automatic reconciliation", err)
				}
				return err
			}

			renderImportSummary(cmd, result)
			for _, failure := range result.Failures {
				fmt.Fprintln(cmd.ErrOrStderr(), failure.Error())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromProfile, "from", "", "Source profile name")
	cmd.Flags().StringVar(&intoProfile, "into", "", "Destination profile name")
	cmd.Flags().StringVar(&deckName, "deck", "", "Destination deck name (created if missing)")
	cmd.Flags().StringVar(&notetypeName, "notetype", "", "Destination note type name (reconciled per note when omitted)")
	cmd.Flags().StringVar(&query, "query", "", "Select source notes by search text instead of ids")
	cmd.Flags().StringVar(&sourceDeck, "source-deck", "", "Limit --query to one source deck")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("into")
	_ = cmd.MarkFlagRequired("deck")

	return cmd
}

func parseNoteIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid note id: %s", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func resolveDestNotetype(ctx context.Context, dst *collection.Collection, name string) (int64, error) {
	if name == "" {
		return importer.ReconcileNotetypes, nil
	}

	nt, err := collection.NewNotetypeRepository(dst).FindByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if nt == nil {
		return 0, fmt.Errorf("destination note type not found: %s", name)
	}
	return nt.ID, nil
}

// renderImportSummary always prints the counters, even when they are all
// zero.
func renderImportSummary(cmd *cobra.Command, result *importer.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Imported", "Duplicates", "Errors"})
	t.AppendRow(table.Row{result.SuccessCount(), result.DuplicateCount(), result.ErrorCount()})
	t.Render()
}
