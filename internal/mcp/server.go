// Package mcp exposes cross-profile search and import as MCP tools.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ajatt-tools/cropro/internal/collection"
	"github.com/ajatt-tools/cropro/internal/config"
	"github.com/ajatt-tools/cropro/internal/importer"
)

// Server wraps the MCP server with import-pipeline functionality. The
// destination profile is fixed for the lifetime of the server; the source
// profile is selected per call.
type Server struct {
	server    *mcp.Server
	dst       *collection.Collection
	secondary *importer.Secondary
	settings  config.Settings
	gate      *importer.Gate
}

// NewServer creates a new MCP server instance importing into destProfile.
func NewServer(destProfile string) (*Server, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	dst, err := collection.Open(destProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to open destination profile: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "cropro",
		Version: "0.1.0",
	}, nil)

	s := &Server{
		server:    mcpServer,
		dst:       dst,
		secondary: importer.NewSecondary(settings),
		settings:  settings,
		gate:      &importer.Gate{},
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		s.secondary.Close()
		_ = s.dst.Close()
	}()
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cropro_profiles",
		Description: "List profiles that notes can be imported from",
	}, s.handleProfiles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cropro_decks",
		Description: "List the decks of a source profile",
	}, s.handleDecks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cropro_search",
		Description: "Search notes in a source profile",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cropro_import",
		Description: "Import notes from a source profile into the destination profile",
	}, s.handleImport)
}

// Input/Output types for each tool

type ProfilesInput struct{}

type ProfilesOutput struct {
	Destination string   `json:"destination"`
	Profiles    []string `json:"profiles"`
}

type DecksInput struct {
	Profile string `json:"profile" jsonschema:"required,description=Source profile name"`
}

type DecksOutput struct {
	Decks []DeckEntry `json:"decks"`
}

type DeckEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SearchInput struct {
	Profile string  `json:"profile" jsonschema:"required,description=Source profile name"`
	Deck    *string `json:"deck,omitempty" jsonschema:"description=Source deck name (whole collection if not specified)"`
	Query   string  `json:"query,omitempty" jsonschema:"description=Text to filter notes by"`
}

type SearchOutput struct {
	TotalMatches int         `json:"totalMatches"`
	Notes        []NoteEntry `json:"notes"`
}

type NoteEntry struct {
	ID     int64    `json:"id"`
	Fields []string `json:"fields"`
	Tags   []string `json:"tags,omitempty"`
}

type ImportInput struct {
	Profile  string  `json:"profile" jsonschema:"required,description=Source profile name"`
	NoteIDs  []int64 `json:"noteIds" jsonschema:"required,description=Source note ids to import"`
	Deck     string  `json:"deck" jsonschema:"required,description=Destination deck name (created if missing)"`
	Notetype *string `json:"notetype,omitempty" jsonschema:"description=Destination note type name (reconciled per note if not specified)"`
}

type ImportOutput struct {
	Successes  []int64 `json:"successes"`
	Duplicates int     `json:"duplicates"`
	Errors     int     `json:"errors"`
}

// Tool handlers

func (s *Server) handleProfiles(ctx context.Context, req *mcp.CallToolRequest, input ProfilesInput) (*mcp.CallToolResult, ProfilesOutput, error) {
	profiles, err := config.OtherProfileNames(s.dst.Name)
	if err != nil {
		return nil, ProfilesOutput{}, fmt.Errorf("failed to list profiles: %w", err)
	}

	return nil, ProfilesOutput{
		Destination: s.dst.Name,
		Profiles:    profiles,
	}, nil
}

func (s *Server) handleDecks(ctx context.Context, req *mcp.CallToolRequest, input DecksInput) (*mcp.CallToolResult, DecksOutput, error) {
	if err := s.openSource(input.Profile); err != nil {
		return nil, DecksOutput{}, err
	}

	decks, err := s.secondary.ListDecks(ctx)
	if err != nil {
		return nil, DecksOutput{}, fmt.Errorf("failed to list decks: %w", err)
	}

	entries := make([]DeckEntry, 0, len(decks))
	for _, deck := range decks {
		entries = append(entries, DeckEntry{ID: deck.ID, Name: deck.Name})
	}
	return nil, DecksOutput{Decks: entries}, nil
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	if err := s.gate.TryAcquire(); err != nil {
		return nil, SearchOutput{}, err
	}
	defer s.gate.Release()

	if err := s.openSource(input.Profile); err != nil {
		return nil, SearchOutput{}, err
	}

	deckID := collection.WholeCollection
	if input.Deck != nil {
		id, err := s.resolveSourceDeck(ctx, *input.Deck)
		if err != nil {
			return nil, SearchOutput{}, err
		}
		deckID = id
	}

	ids, err := s.secondary.Query(ctx, deckID, input.Query)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("search failed: %w", err)
	}

	limited := ids
	if max := s.settings.MaxDisplayedNotes; max > 0 && len(limited) > max {
		limited = limited[:max]
	}

	notes := make([]NoteEntry, 0, len(limited))
	for _, id := range limited {
		note, err := s.secondary.ReadNote(ctx, id)
		if err != nil {
			return nil, SearchOutput{}, fmt.Errorf("failed to read note %d: %w", id, err)
		}
		if note == nil {
			continue
		}
		notes = append(notes, NoteEntry{ID: note.ID, Fields: note.Fields, Tags: note.Tags})
	}

	return nil, SearchOutput{
		TotalMatches: len(ids),
		Notes:        notes,
	}, nil
}

func (s *Server) handleImport(ctx context.Context, req *mcp.CallToolRequest, input ImportInput) (*mcp.CallToolResult, ImportOutput, error) {
	if err := s.openSource(input.Profile); err != nil {
		return nil, ImportOutput{}, err
	}

	deckID, err := collection.NewDeckRepository(s.dst).GetOrCreate(ctx, input.Deck)
	if err != nil {
		return nil, ImportOutput{}, fmt.Errorf("failed to resolve destination deck: %w", err)
	}

	notetypeID := importer.ReconcileNotetypes
	if input.Notetype != nil {
		nt, err := collection.NewNotetypeRepository(s.dst).FindByName(ctx, *input.Notetype)
		if err != nil {
			return nil, ImportOutput{}, fmt.Errorf("failed to resolve note type: %w", err)
		}
		if nt == nil {
			return nil, ImportOutput{}, fmt.Errorf("note type not found: %s", *input.Notetype)
		}
		notetypeID = nt.ID
	}

	pipeline := importer.NewPipeline(s.dst, s.secondary, s.settings, s.gate)
	result, err := pipeline.Import(ctx, input.NoteIDs, notetypeID, deckID)
	if err != nil {
		return nil, ImportOutput{}, fmt.Errorf("import failed: %w", err)
	}

	return nil, ImportOutput{
		Successes:  result.Successes,
		Duplicates: result.DuplicateCount(),
		Errors:     result.ErrorCount(),
	}, nil
}

func (s *Server) openSource(profile string) error {
	if profile == s.dst.Name {
		return fmt.Errorf("cannot import from the destination profile itself: %s", profile)
	}
	if err := s.secondary.Open(profile); err != nil {
		return fmt.Errorf("failed to open source profile: %w", err)
	}
	return nil
}

func (s *Server) resolveSourceDeck(ctx context.Context, name string) (int64, error) {
	decks, err := s.secondary.ListDecks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list source decks: %w", err)
	}
	for _, deck := range decks {
		if deck.Name == name {
			return deck.ID, nil
		}
	}
	return 0, fmt.Errorf("source deck not found: %s", name)
}
