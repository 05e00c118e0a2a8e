/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func RootApp() *cli.App {
	return &cli.App{
		Name:  "podcast-mcp",
		Usage: "Search and transcript tools for podcast RSS feeds",
		Description: `A set of tools for searching podcast episodes across a
		registry of RSS feeds.

		podcast-mcp works by fetching each show's RSS feed on demand,
		parsing the episodes into a normalized in-memory snapshot and
		evaluating search queries against the snapshots. Transcripts
		referenced by episodes can be fetched and reduced to plain text.

		Flags can generally be set via environment variables, e.g.:

		--config => PODCASTMCP_CONFIG=podcast-mcp.toml
		--port => PODCASTMCP_PORT=3000
		`,
		Commands: []*cli.Command{
			serveCmd(),
			showsCmd(),
			searchCmd(),
			episodeCmd(),
			transcriptCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return ctx.App.Run([]string{"", "help"})
		},
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
