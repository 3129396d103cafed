package tui

import (
	"time"

	"github.com/nickromney/certfacts/internal/inventory"
)

// ReportMsg carries a freshly built report, or the error that interrupted
// the build.
type ReportMsg struct {
	Report  inventory.Report
	BuiltAt time.Time
	Err     error
}

// DetailMsg carries the detail text for one name.
type DetailMsg struct {
	Name string
	Text string
}
