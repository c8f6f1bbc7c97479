package main

import (
	"github.com/spf13/cobra"
)

type sortOptions struct {
	configPath string
	workers    int
	dryRun     bool
	dedupe     string
	reader     string
	exiftool   string
	logFile    string
	logLevel   string
	logFormat  string
	noProgress bool
	summary    bool
}

func newRootCommand() *cobra.Command {
	opts := &sortOptions{}

	rootCmd := &cobra.Command{
		Use:   "snapsort [flags] <target> <source>",
		Short: "Sort photos and videos into dated folders",
		Long: "Moves every media file under <source> into <target>/<year>/<month>/, named after its capture time.\n" +
			"Duplicates and empty files are removed; files without a usable timestamp are left in place.",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, opts, args[0], args[1])
		},
	}

	flags := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.IntVarP(&opts.workers, "workers", "j", 0, "Concurrent workers (0 uses one per CPU)")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "Plan and log without moving or deleting files")
	flags.StringVar(&opts.dedupe, "dedupe", "", "Duplicate detection: size or content")
	flags.StringVar(&opts.reader, "reader", "", "Metadata reader: exiftool or native")
	flags.StringVar(&opts.exiftool, "exiftool", "", "exiftool executable")
	flags.StringVar(&opts.logFile, "log-file", "", "Log file (default debug.log beside the executable)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: console or json")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress bar")
	flags.BoolVar(&opts.summary, "summary", false, "Print per-outcome counts after the run")

	rootCmd.AddCommand(newConfigCommand(opts))

	return rootCmd
}
