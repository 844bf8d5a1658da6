package ui

import "mcra/internal/domain"

// Viewer displays the failures of a report run
type Viewer interface {
	View(snapshot *domain.ReportSnapshot) error
}
