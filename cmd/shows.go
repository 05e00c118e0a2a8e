/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func showsCmd() *cli.Command {
	return &cli.Command{
		Name:  "shows",
		Usage: "List the registered shows",
		Description: `List the names of every show in the registry, one per line,
in registry order. These are the names the search and episode commands accept.`,
		Flags: []cli.Flag{
			configFlag(),
		},
		Action: func(ctx *cli.Context) error {
			tools, err := buildTools(ctx)
			if err != nil {
				return err
			}
			for _, show := range tools.loader.Shows() {
				fmt.Println(show)
			}
			return nil
		},
	}
}
