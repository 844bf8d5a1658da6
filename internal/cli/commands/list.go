package commands

import (
	"github.com/spf13/cobra"

	"mcra/internal/storage"
	"mcra/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	cmds *Commands
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cfg := lc.cmds.config

	suites, err := lc.cmds.locator().Scan(cfg.ResultsDir, cfg.Suites)
	if err != nil {
		return err
	}

	var counts map[string]int
	if cfg.Flags.Counts {
		counts = make(map[string]int)
		for _, s := range suites {
			for _, path := range s.ResultFiles {
				outcomes, err := storage.ReadOutcomes(path, s.Suite)
				if err != nil {
					ui.NewFormatterTo(cmd.ErrOrStderr()).Error("Error reading result file %s: %v", path, err)
					continue
				}
				counts[path] = len(outcomes)
			}
		}
	}

	ui.NewFormatterTo(cmd.OutOrStdout()).PrintSuiteFiles(cfg.ResultsDir, suites, counts)
	return nil
}
