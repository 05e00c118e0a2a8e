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
)

func episodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "episode",
		Usage:     "Look up one episode by number or guid",
		ArgsUsage: "<show> <number>",
		Description: `Look up one episode of a show by its episode number, falling
back to the feed item guid when no number matches.

Returns the episode as a pretty-printed JSON object.`,
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: func(ctx *cli.Context) error {
			log.SetOutput(os.Stderr)

			if ctx.NArg() != 2 {
				return fmt.Errorf("expected <show> <number>, got %d arguments", ctx.NArg())
			}

			tools, err := buildTools(ctx)
			if err != nil {
				return err
			}

			episode, err := tools.loader.GetEpisode(ctx.Context, ctx.Args().Get(0), ctx.Args().Get(1))
			if err != nil {
				return err
			}

			episodeJson, err := json.MarshalIndent(episode, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(episodeJson))
			return nil
		},
	}
}
