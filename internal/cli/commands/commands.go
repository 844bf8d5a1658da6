package commands

import (
	"io"
	"log/slog"

	"mcra/internal/cli"
	"mcra/internal/config"
	"mcra/internal/discovery"
	"mcra/internal/execution"
	"mcra/internal/logging"
	"mcra/internal/parser"
	"mcra/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// legacyFlagNames also accepts the camel case --previewFeatures
func legacyFlagNames(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "previewFeatures" {
		name = "preview-features"
	}
	return pflag.NormalizedName(name)
}

// Commands holds all CLI commands
type Commands struct {
	config    *config.Config
	logger    *slog.Logger
	logCloser io.Closer

	Report   *ReportCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands sharing cfg
func NewCommands(cfg *config.Config) *Commands {
	c := &Commands{config: cfg, logger: logging.Discard()}
	c.Report = &ReportCommand{cmds: c}
	c.List = &ListCommand{cmds: c}
	c.Failures = &FailuresCommand{cmds: c}
	return c
}

// Close releases the log sink
func (c *Commands) Close() error {
	if c.logCloser != nil {
		return c.logCloser.Close()
	}
	return nil
}

// setup loads the configuration once flags are parsed and builds the logger
func (c *Commands) setup(flags *cli.Flags) error {
	cfg, err := config.Load(flags.ToConfigFlags())
	if err != nil {
		return err
	}
	*c.config = *cfg

	logger, closer, err := logging.New(c.config.Logging)
	if err != nil {
		return err
	}
	c.logger = logger
	c.logCloser = closer
	return nil
}

// locator builds the suite file locator for the current config
func (c *Commands) locator() *discovery.Locator {
	return discovery.NewLocator(c.config.StrictLookup, c.logger)
}

// newPipeline wires the suite stages for the current config
func (c *Commands) newPipeline() *execution.Pipeline {
	locator := c.locator()
	runner := execution.NewSuiteRunner(
		c.config,
		storage.NewResultLoader(locator, c.logger),
		parser.NewLogIndexer(locator, c.config.MaxLineLength, c.logger),
		parser.NewCorrelator(c.logger),
		parser.NewErrorExtractor(c.config.MaxErrorCandidates, c.logger),
		c.logger,
	)
	return execution.NewPipeline(runner, c.logger)
}

func (c *Commands) snapshotStore() *storage.JSONStore {
	return storage.NewJSONStore(c.config.GetSnapshotPath())
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "YAML config file (default mcra.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&flags.ResultsDir, "rdir", "", "Directory where results are stored (default ./results-5.0)")
	rootCmd.PersistentFlags().StringSliceVar(&flags.Suites, "suites", nil, "Suites to process, in order (default aggregation,change_streams,core,decimal,core_txns,json_schema)")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Log level: debug, info, warn, error (default info)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return c.setup(flags)
	}

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Build the CSV report from a results directory",
		Long:  "Correlate every suite's result file with its log, extract error messages for tests that did not pass and write one CSV row per test",
		RunE:  c.Report.Execute,
	}
	reportCmd.Flags().StringVarP(&flags.Platform, "platform", "p", "", "Platform for results, i.e.: atlas, documentdb, foundationdb, cosmos, etc.")
	reportCmd.Flags().StringVar(&flags.Version, "version", "", "Version the test suite was run against (default v5.0)")
	reportCmd.Flags().StringVar(&flags.PreviewFeatures, "preview-features", "", "Comma separated list of preview features enabled on the account")
	reportCmd.Flags().StringVar(&flags.CSVPath, "csv", "", "CSV file of processed results (default ./results.csv)")
	reportCmd.Flags().BoolVar(&flags.Strict, "strict", false, "Fail when more than one file matches a suite")
	reportCmd.Flags().BoolVar(&flags.MySQL, "mysql", false, "Also insert rows into MySQL (DB_* settings from the environment or .env)")
	reportCmd.Flags().BoolVar(&flags.NoSnapshot, "no-snapshot", false, "Do not store the run for the failures viewer")
	reportCmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Hide the progress bar")
	reportCmd.Flags().BoolVar(&flags.ExitCode, "exit-code", false, "Exit non-zero when the run is aborted")
	reportCmd.Flags().SetNormalizeFunc(legacyFlagNames)
	rootCmd.AddCommand(reportCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List suite files found in the results directory",
		Long:  "Show which result and log files each suite resolves to, without processing them",
		RunE:  c.List.Execute,
	}
	listCmd.Flags().BoolVarP(&flags.Counts, "counts", "c", false, "Also count the test records in each result file")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View non-passing tests of the last report interactively",
		Long:  "Display the tests that did not pass in the last report run, with their error messages and log lines",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}
