package commands

import (
	"github.com/spf13/cobra"

	"mcra/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	cmds *Commands
}

// Execute runs the command
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	store := fc.cmds.snapshotStore()
	snapshot, err := store.Load()
	if err != nil {
		return err
	}

	var viewer ui.Viewer = ui.NewErrorViewer(store)
	return viewer.View(snapshot)
}
