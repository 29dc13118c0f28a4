package models

// CronJobMetadata holds the identifying fields of a CronJob
type CronJobMetadata struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
}

// CronJobSpec holds the schedule of a CronJob
type CronJobSpec struct {
	Schedule string `json:"schedule"`
	Suspend  *bool  `json:"suspend,omitempty"`
}

// CronJob represents a scheduled recurring job definition
type CronJob struct {
	Metadata CronJobMetadata `json:"metadata"`
	Spec     CronJobSpec     `json:"spec"`
}

// Suspended reports whether the CronJob has scheduling suspended.
// An unset suspend flag means the CronJob is active.
func (c *CronJob) Suspended() bool {
	return c.Spec.Suspend != nil && *c.Spec.Suspend
}

// CronJobList is the /api/cronjobs response body
type CronJobList struct {
	Items []CronJob `json:"items"`
}

// CreateCronJobRequest represents the create cron job request body
type CreateCronJobRequest struct {
	Name      string   `json:"name" binding:"required"`
	Namespace string   `json:"namespace"`
	Schedule  string   `json:"schedule" binding:"required"`
	Image     string   `json:"image" binding:"required"`
	Command   []string `json:"command,omitempty"`
}
