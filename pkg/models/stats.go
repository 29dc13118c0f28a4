package models

// JobStats aggregates cron job and job counts across the cluster
type JobStats struct {
	TotalCronJobs  int `json:"totalCronJobs"`
	ActiveCronJobs int `json:"activeCronJobs"`
	TotalJobs      int `json:"totalJobs"`
	RunningJobs    int `json:"runningJobs"`
	FailedJobs     int `json:"failedJobs"`
	SucceededJobs  int `json:"succeededJobs"`
}
