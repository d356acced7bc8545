package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/game2048/internal/config"
)

var flagFormat string

var constantsCmd = &cobra.Command{
	Use:   "constants",
	Short: "Print the effective constants",
	Long: `Print the constants a game would start with, after the search order,
--difficulty and --fps are applied. The output is a valid constants file.

Examples:
  game2048 constants > ~/.config/game2048/constants.json
  game2048 constants --format yaml --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConstants,
}

func init() {
	constantsCmd.Flags().StringVar(&flagFormat, "format", "json", "Output format: json or yaml")
}

func runConstants(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	consts, source, err := loadConstants(logger)
	if err != nil {
		return err
	}
	logger.Info("effective constants", "source", source)

	out, err := config.Encode(consts, flagFormat)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
