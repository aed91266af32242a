package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nerrad567/itho-discovery/internal/pipeline"
)

var versionsCmd = &cobra.Command{
	Use:   "versions <file.par>",
	Short: "List firmware versions discovered in a parameter export",
	Args:  cobra.ExactArgs(1),
	RunE:  runVersions,
}

func init() {
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, args[0], log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := p.Close(); closeErr != nil {
			log.Error("error closing pipeline", "error", closeErr)
		}
	}()

	if err := p.Run(cmd.Context()); err != nil {
		return err
	}

	for _, version := range p.Versions() {
		params, _ := p.Parameters(version)
		labels, _ := p.Datalabels(version)
		fmt.Fprintf(cmd.OutOrStdout(), "version %d: %d parameters, %d datalabels\n",
			version, len(params), len(labels))
	}
	return nil
}
