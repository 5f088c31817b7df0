package main

import (
	"errors"

	"github.com/spf13/cobra"

	"signaldedup/internal/pipeline"
	"signaldedup/internal/report"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var asTable bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List duplicate groups without copying anything",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asTable && asJSON {
				return usageError(errors.New("--table and --json are mutually exclusive"))
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			runner := pipeline.NewRunner(pipeline.OptionsFromConfig(cfg), nil, nil, logger)
			scan, err := runner.Scan(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, newScanReport(scan, cfg.Paths.OutputDir))
			}
			printer := report.NewPrinter(cmd.OutOrStdout())
			for _, notice := range cfg.Notices() {
				printer.Warn("%s", notice)
			}
			if scan.Grouping.Len() == 0 {
				printer.NoFiles(scan.Root, cfg.Scan.Extensions)
				return nil
			}
			if asTable {
				printer.Table(scan.Grouping.Groups())
			} else {
				printer.Groups(scan.Grouping.Groups())
				printer.Notice("")
			}
			printer.Stats(scan.Grouping)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asTable, "table", false, "Render groups as a table")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit groups as JSON")
	return cmd
}
