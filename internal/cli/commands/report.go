package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"mcra/internal/domain"
	"mcra/internal/execution"
	"mcra/internal/storage"
	"mcra/internal/ui"
)

// mysqlConnectTimeout bounds connecting to the MySQL sink
const mysqlConnectTimeout = 30 * time.Second

// ReportCommand handles the report command
type ReportCommand struct {
	cmds *Commands
	now  func() time.Time
}

// Execute runs the command. An aborted run is logged and, unless
// --exit-code is set, still ends successfully with the partial CSV kept.
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := rc.cmds.config
	logger := rc.cmds.logger

	if err := cfg.Validate(); err != nil {
		return err
	}

	now := time.Now
	if rc.now != nil {
		now = rc.now
	}
	started := now()

	meta := domain.ReportMeta{
		RunID:           uuid.NewString(),
		Date:            started.Format("2006-01-02"),
		Platform:        cfg.Platform,
		Version:         cfg.Version,
		PreviewFeatures: cfg.PreviewFeatures,
		ResultsDir:      cfg.ResultsDir,
		CSVPath:         cfg.CSVPath,
	}
	logger.Debug("starting analysis", "platform", cfg.Platform, "run_id", meta.RunID, "suites", cfg.Suites)

	result, err := rc.run(meta)
	if result != nil {
		meta.Suites = result.Summaries
		meta.Duration = result.Duration.String()
		meta.DurationSeconds = result.Duration.Seconds()
	}
	meta.Completed = err == nil
	meta.Timestamp = now().Format(time.RFC3339)
	if err != nil {
		meta.Error = err.Error()
		logger.Error("exception occurred during analysis", "error", err, "csv", cfg.CSVPath, "suites_done", len(meta.Suites))
	} else {
		logger.Info("finished analysis, csv file created", "csv", cfg.CSVPath)
	}

	if !cfg.Flags.NoSnapshot && result != nil {
		store := rc.cmds.snapshotStore()
		snapshot := &domain.ReportSnapshot{Meta: meta, Failures: result.Failures}
		if saveErr := store.Save(snapshot); saveErr != nil {
			logger.Warn("could not store snapshot", "path", store.Path(), "error", saveErr)
		}
	}

	ui.NewFormatterTo(cmd.OutOrStdout()).PrintSummary(meta)

	if err != nil && cfg.Flags.ExitCode {
		return err
	}
	return nil
}

// run opens the sinks and drives the pipeline; sinks are closed on every path
func (rc *ReportCommand) run(meta domain.ReportMeta) (result *execution.Result, err error) {
	cfg := rc.cmds.config
	info := storage.RunInfo{RunID: meta.RunID, Date: meta.Date, PreviewFeatures: meta.PreviewFeatures}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVPath, info)
	if err != nil {
		return nil, err
	}
	defer closeSink(csvWriter, &err)
	sinks := []storage.Sink{csvWriter}

	if cfg.MySQL.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), mysqlConnectTimeout)
		defer cancel()
		if cfg.MySQL.Database != "" {
			if err := storage.EnsureDatabase(ctx, cfg.GetMySQLServerDSN(), cfg.MySQL.Database, rc.cmds.logger); err != nil {
				return nil, err
			}
		}
		mysqlSink, openErr := storage.OpenMySQLSink(ctx, cfg.GetMySQLDSN(), cfg.MySQL.Table, info)
		if openErr != nil {
			return nil, openErr
		}
		defer closeSink(mysqlSink, &err)
		sinks = append(sinks, mysqlSink)
	}

	pipeline := rc.cmds.newPipeline()
	if !cfg.Flags.NoProgress {
		pipeline.SetProgress(ui.NewProgressBar(len(cfg.Suites)))
	}
	return pipeline.Execute(cfg.Suites, sinks...)
}

func closeSink(sink storage.Sink, err *error) {
	if closeErr := sink.Close(); closeErr != nil && *err == nil {
		*err = closeErr
	}
}
