// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"fmt"
	"log/slog"

	"codeberg.org/oliverandrich/go-random-image/internal/config"
	"codeberg.org/oliverandrich/go-random-image/internal/device"
	"codeberg.org/oliverandrich/go-random-image/internal/picker"
	"github.com/urfave/cli/v3"
)

// PickCommand selects an image without starting the server. It prints
// nothing and reports the outcome through its exit status.
func PickCommand() *cli.Command {
	return &cli.Command{
		Name:  "pick",
		Usage: "Select a random image for a user agent and exit (1 when none exists)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user-agent",
				Aliases: []string{"ua"},
				Usage:   "User agent to classify; empty means desktop",
			},
		},
		Action: Pick,
	}
}

// Pick is the action of the pick command.
func Pick(_ context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	slog.SetDefault(slog.New(slog.DiscardHandler))

	kind := device.NewClassifier(cfg.Images.MobileKeywords).Classify(cmd.String("user-agent"))
	if _, found := picker.New(nil).Pick(cfg.Images.Dir(kind), cfg.Images.Extension); !found {
		return cli.Exit("", 1)
	}
	return nil
}
