/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func transcriptCmd() *cli.Command {
	return &cli.Command{
		Name:      "transcript",
		Usage:     "Fetch one episode's transcript",
		ArgsUsage: "<show> <number>",
		Description: `Fetch the transcript of one episode, identified the same way
as the episode command.

Prints the transcript text to stdout. Episodes without a transcript
reference and transcripts that fail to fetch are reported on stderr.`,
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

			result := tools.resolver.Resolve(ctx.Context, episode)
			if !result.Available {
				if result.Err != "" {
					return fmt.Errorf("transcript fetch failed: %s", result.Err)
				}
				fmt.Fprintln(os.Stderr, "No transcript available for this episode")
				return nil
			}

			fmt.Println(result.Text)
			return nil
		},
	}
}
