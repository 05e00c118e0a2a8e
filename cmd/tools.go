/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/Red5d/podcast-mcp/config"
	"github.com/Red5d/podcast-mcp/feeds"
	"github.com/Red5d/podcast-mcp/fetcher"
	"github.com/Red5d/podcast-mcp/transcripts"
)

// configFlag is shared by every command. With no file the built-in show
// registry is used.
func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "",
		Usage:   "TOML config file location",
		EnvVars: []string{"PODCASTMCP_CONFIG"},
	}
}

// tools bundles the collaborators every command works with.
type tools struct {
	config   *config.Config
	loader   *feeds.Loader
	engine   *feeds.Engine
	resolver *transcripts.Resolver
}

func buildTools(ctx *cli.Context) (*tools, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	f := fetcher.New(cfg.FetchTimeout(), uint64(cfg.Fetch.MaxRetries))
	loader := feeds.NewLoader(cfg.Shows, f, cfg.CacheTTL())

	return &tools{
		config:   cfg,
		loader:   loader,
		engine:   feeds.NewEngine(loader, cfg.Search.Workers),
		resolver: transcripts.NewResolver(f, transcripts.ParseCleanupMode(cfg.Transcripts.Cleanup)),
	}, nil
}
