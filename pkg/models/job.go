package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// Job status labels
const (
	StatusRunning   = "Running"
	StatusSucceeded = "Succeeded"
	StatusFailed    = "Failed"
	StatusPending   = "Pending"
)

// Timestamp is an optional RFC 3339 time. JSON null, an empty string and a
// missing field all decode to the zero value.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// JobMetadata holds the identifying fields of a Job
type JobMetadata struct {
	Name              string    `json:"name"`
	Namespace         string    `json:"namespace"`
	CreationTimestamp Timestamp `json:"creationTimestamp"`
}

// JobStatus holds the pod counts and timing of a Job
type JobStatus struct {
	Active         int       `json:"active"`
	Succeeded      int       `json:"succeeded"`
	Failed         int       `json:"failed"`
	StartTime      Timestamp `json:"startTime"`
	CompletionTime Timestamp `json:"completionTime"`
}

// Job represents a single execution of a task
type Job struct {
	Metadata JobMetadata `json:"metadata"`
	Status   JobStatus   `json:"status"`
}

// Label resolves the display status of the Job. Running wins over
// Succeeded, which wins over Failed.
func (j *Job) Label() string {
	switch {
	case j.Status.Active > 0:
		return StatusRunning
	case j.Status.Succeeded > 0:
		return StatusSucceeded
	case j.Status.Failed > 0:
		return StatusFailed
	default:
		return StatusPending
	}
}

// JobList is the /api/jobs response body
type JobList struct {
	Items []Job `json:"items"`
}
