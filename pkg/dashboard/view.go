package dashboard

import (
	"fmt"
	"time"

	"croniq/pkg/models"
)

// DebugLine is one timestamped entry of the debug console
type DebugLine struct {
	Time    time.Time
	Message string
}

func (l DebugLine) String() string {
	return fmt.Sprintf("[%s] %s", l.Time.UTC().Format(time.RFC3339), l.Message)
}

// View is the result of one refresh. Slices are nil when their data was
// not fetched or the fetch failed; a successful fetch of nothing is an
// empty, non-nil slice.
type View struct {
	RefreshID string
	Active    models.Tab

	ClusterInfo *models.ClusterInfo
	Stats       *models.JobStats
	CronJobs    []models.CronJob
	Jobs        []models.Job

	Errors []string
	Debug  []DebugLine
}

// HasErrors reports whether any fetch of the refresh failed
func (v *View) HasErrors() bool {
	return len(v.Errors) > 0
}

// IsActive reports whether tab is the visible panel
func (v *View) IsActive(tab models.Tab) bool {
	return v.Active == tab
}
