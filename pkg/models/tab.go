package models

import (
	"errors"
	"fmt"
)

var ErrUnknownTab = errors.New("unknown tab")

// Tab identifies one of the dashboard panels
type Tab string

const (
	TabDashboard Tab = "dashboard"
	TabCronJobs  Tab = "cronjobs"
	TabJobs      Tab = "jobs"
)

// DefaultTab is the panel shown on page load
const DefaultTab = TabDashboard

// Tabs returns every tab in display order
func Tabs() []Tab {
	return []Tab{TabDashboard, TabCronJobs, TabJobs}
}

// ParseTab converts a tab name into a Tab
func ParseTab(name string) (Tab, error) {
	for _, t := range Tabs() {
		if string(t) == name {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTab, name)
}

// Title returns the button label of the tab
func (t Tab) Title() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabCronJobs:
		return "CronJobs"
	case TabJobs:
		return "Jobs"
	}
	return string(t)
}
