package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/ajatt-tools/cropro/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	var destProfile string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the Model Context Protocol server for cropro, importing into the given destination profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := mcp.NewServer(destProfile)
			if err != nil {
				log.Fatalf("Failed to create MCP server: %v", err)
			}

			ctx := context.Background()
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&destProfile, "into", "", "Destination profile name")
	_ = cmd.MarkFlagRequired("into")

	return cmd
}
