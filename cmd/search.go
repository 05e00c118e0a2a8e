/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/Red5d/podcast-mcp/models"
	"github.com/Red5d/podcast-mcp/query"
)

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search episodes across the registered shows",
		Description: `Search episodes by show, publish date range, host name or
free text. Criteria are combined with AND; at least one must be given.

Returns each matching episode as a JSON object on a single line, most
recent first. Use a tool like jq to process the output.

Prints all other log messages to stderr.`,
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "show",
				Aliases: []string{"s"},
				Usage:   "Restrict the search to one show",
			},
			&cli.StringFlag{
				Name:  "since",
				Usage: "Inclusive lower publish-date bound (YYYY-MM-DD or RFC 3339)",
			},
			&cli.StringFlag{
				Name:  "before",
				Usage: "Exclusive upper publish-date bound (YYYY-MM-DD or RFC 3339)",
			},
			&cli.StringSliceFlag{
				Name:  "host",
				Usage: "Match episodes with this host (repeatable)",
			},
			&cli.StringFlag{
				Name:    "text",
				Aliases: []string{"t"},
				Usage:   "Match this text in title or description",
			},
		},
		Action: func(ctx *cli.Context) error {
			// Disable logging to stdout
			log.SetOutput(os.Stderr)

			q := &query.Query{
				ShowName: ctx.String("show"),
				Hosts:    ctx.StringSlice("host"),
				Text:     ctx.String("text"),
			}
			if since := ctx.String("since"); since != "" {
				t, err := query.ParseInputDate(since)
				if err != nil {
					return fmt.Errorf("invalid since date %q: %w", since, err)
				}
				q.Since = &t
			}
			if before := ctx.String("before"); before != "" {
				t, err := query.ParseInputDate(before)
				if err != nil {
					return fmt.Errorf("invalid before date %q: %w", before, err)
				}
				q.Before = &t
			}

			tools, err := buildTools(ctx)
			if err != nil {
				return err
			}

			response, err := tools.engine.Search(ctx.Context, q)
			if err != nil {
				return err
			}

			for _, warning := range response.Warnings {
				fmt.Fprintf(os.Stderr, "warning: %s: %s\n", warning.ShowName, warning.Message)
			}
			for i := range response.Episodes {
				printStdout(&response.Episodes[i])
			}
			return nil
		},
	}
}

func printStdout(episode *models.Episode) {
	// Print as single JSON string on a single line
	episodeJson, err := json.Marshal(episode)
	if err == nil {
		fmt.Println(string(episodeJson))
	}
}
