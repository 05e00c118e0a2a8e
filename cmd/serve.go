/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Red5d/podcast-mcp/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the podcast search tools over HTTP",
		Description: `Starts the HTTP server exposing the show registry, episode
search and transcript tools.

Feeds are fetched lazily on the first request that needs them and cached
in memory for the configured TTL. Nothing is persisted between restarts.`,
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "host",
				Usage:   "Host to listen on",
				EnvVars: []string{"PODCASTMCP_HOST"},
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on",
				EnvVars: []string{"PODCASTMCP_PORT"},
			},
		},
		Action: func(ctx *cli.Context) error {
			tools, err := buildTools(ctx)
			if err != nil {
				return err
			}
			if ctx.IsSet("host") {
				tools.config.Server.Host = ctx.String("host")
			}
			if ctx.IsSet("port") {
				tools.config.Server.Port = ctx.Int("port")
			}

			app := server.Server(&server.ServerConfig{
				Loader:   tools.loader,
				Engine:   tools.engine,
				Resolver: tools.resolver,
			})

			// Graceful shutdown
			go func() {
				<-ctx.Context.Done()
				fmt.Println("Gracefully shutting down...")
				if err := app.ShutdownWithTimeout(60 * time.Second); err != nil {
					log.Error(err)
				}
			}()

			fmt.Println("Starting server...")
			if err := app.Listen(tools.config.Address()); err != nil {
				return err
			}

			fmt.Println("Done!")
			return nil
		},
	}
}
