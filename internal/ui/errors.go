package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"mcra/internal/domain"
	"mcra/internal/storage"
)

// maxDetailLogLines bounds the log excerpt shown for one test
const maxDetailLogLines = 200

// ErrorViewer displays non-passing tests in an interactive TUI
type ErrorViewer struct {
	store storage.SnapshotStore
}

// NewErrorViewer creates a new ErrorViewer. Reviewed marks are saved to store.
func NewErrorViewer(store storage.SnapshotStore) *ErrorViewer {
	return &ErrorViewer{store: store}
}

// View displays the failures of the snapshot
func (ev *ErrorViewer) View(snapshot *domain.ReportSnapshot) error {
	failures := snapshot.Failures
	if len(failures) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	for i := range failures {
		list.AddItem(listItemText(failures[i], i), "", 0, nil)
	}

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan).
		SetSecondaryTextColor(tview.Styles.SecondaryTextColor)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(headerText(snapshot))
	}
	updateHeader()

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(failures) {
			statsView.SetText(formatOutcomeStats(failures[index]))
			detailsView.SetText(formatOutcomeDetails(failures[index])).ScrollToBeginning()
		}
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(failures) {
					failures[index].Reviewed = !failures[index].Reviewed
					list.SetItemText(index, listItemText(failures[index], index), "")
					updateHeader()
					// best effort, the viewer keeps working without persistence
					_ = ev.store.Save(snapshot)
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func headerText(snapshot *domain.ReportSnapshot) string {
	pending := 0
	for _, o := range snapshot.Failures {
		if !o.Reviewed {
			pending++
		}
	}
	return fmt.Sprintf(" %s %s | %d not passing, %d not reviewed | ↑↓ navigate, [yellow]R[white] mark reviewed, → details, ← back, Ctrl+C exit ",
		snapshot.Meta.Platform, snapshot.Meta.Version, len(snapshot.Failures), pending)
}

func listItemText(o domain.TestOutcome, index int) string {
	name := o.TestFile
	if name == "" {
		name = fmt.Sprintf("Test %d", index+1)
	}
	if o.Reviewed {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, tview.Escape(name))
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, tview.Escape(name))
}

// formatOutcomeStats formats the one-line header above the details
func formatOutcomeStats(o domain.TestOutcome) string {
	return fmt.Sprintf("[cyan]suite:[white] [yellow]%s[white]  [cyan]status:[white] [red]%s[white]  [cyan]file:[white] %s\n",
		tview.Escape(o.Suite), tview.Escape(o.Status), tview.Escape(o.TestFile))
}

// formatOutcomeDetails formats a test's error message and log excerpt using
// tview color tags
func formatOutcomeDetails(o domain.TestOutcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s[white]\n\n", tview.Escape(o.TestFile))

	switch o.ErrMsg.Kind {
	case domain.ErrMsgNone:
		b.WriteString("[gray]No log lines were found for this test.[white]\n\n")
	case domain.ErrMsgEmpty:
		b.WriteString("[gray]No error message found in the log.[white]\n\n")
	default:
		b.WriteString("[yellow]Error message:[white]\n")
		for _, v := range o.ErrMsg.Values {
			fmt.Fprintf(&b, "  %s\n", tview.Escape(v))
		}
		b.WriteString("\n")
	}

	if len(o.LogLines) > 0 {
		b.WriteString("[yellow]Log:[white]\n")
		for i, line := range o.LogLines {
			if i == maxDetailLogLines {
				fmt.Fprintf(&b, "  [gray]... and %d more lines[white]\n", len(o.LogLines)-maxDetailLogLines)
				break
			}
			fmt.Fprintf(&b, "  %s\n", tview.Escape(line))
		}
	}
	return b.String()
}
