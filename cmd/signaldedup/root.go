package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"signaldedup/internal/logging"
	"signaldedup/internal/pipeline"
	"signaldedup/internal/prompt"
	"signaldedup/internal/report"
)

func newRootCommand() *cobra.Command {
	var assumeYes bool
	var noSplash bool

	ctx := newCommandContext()

	rootCmd := &cobra.Command{
		Use:           "signaldedup",
		Short:         "Deduplicate captured signal files by content",
		Long:          "Hashes every capture file under the input directory, prints groups of identical files and copies one file per unique signal into the output directory.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDedup(cmd, ctx, assumeYes, noSplash)
		},
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
		return usageError(err)
	})

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(ctx.configFlag, "config", "c", "", "Configuration file path")
	persistent.StringVar(ctx.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	persistent.StringVar(ctx.logFormat, "log-format", "", "Log format (console, json)")
	persistent.StringVarP(ctx.inputFlag, "input_path", "i", "", "Directory to scan for capture files (default \".\")")
	persistent.StringVarP(ctx.outputFlag, "output_path", "o", "", "Directory that receives one copy per unique signal; its contents are deleted first, so it must not be or contain the input directory (default \"output\")")
	persistent.StringArrayVarP(ctx.extFlag, "ext", "e", nil, "Accepted file extension, repeatable (default \".sub\")")
	persistent.StringArrayVarP(ctx.excludeFlag, "exclude", "x", nil, "Directory name to skip at any depth, repeatable (default \"output\")")

	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Answer yes to every confirmation")
	rootCmd.Flags().BoolVar(&noSplash, "no-splash", false, "Do not print the banner")

	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

// noArgs rejects positional arguments with usage on stdout and exit status 2.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
	return usageError(fmt.Errorf("unexpected argument %q for %q", args[0], cmd.CommandPath()))
}

func runDedup(cmd *cobra.Command, ctx *commandContext, assumeYes, noSplash bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd)
	if err != nil {
		return err
	}

	printer := report.NewPrinter(cmd.OutOrStdout())
	if !noSplash {
		printer.Splash()
	}
	for _, notice := range cfg.Notices() {
		printer.Warn("%s", notice)
	}

	in := cmd.InOrStdin()
	if !assumeYes && !isTerminal(in) {
		logging.WarnWithContext(cmd.Context(), logger, "standard input is not a terminal; confirmations will be read from it",
			"non_interactive_stdin", "pass --yes to skip confirmations")
	}

	opts := pipeline.OptionsFromConfig(cfg)
	opts.AssumeYes = assumeYes
	runner := pipeline.NewRunner(opts, prompt.New(in, cmd.OutOrStdout()), printer, logger)
	_, err = runner.Run(cmd.Context())
	return err
}
