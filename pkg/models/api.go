package models

// Backend API endpoints
const (
	PathClusterInfo = "/api/cluster-info"
	PathCronJobs    = "/api/cronjobs"
	PathJobs        = "/api/jobs"
	PathStats       = "/api/stats"
)

// ErrorResponse is the JSON body of every failed API call
type ErrorResponse struct {
	Error string `json:"error"`
}
