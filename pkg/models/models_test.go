package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLabel(t *testing.T) {
	tests := []struct {
		name   string
		status JobStatus
		want   string
	}{
		{"running", JobStatus{Active: 1}, StatusRunning},
		{"succeeded", JobStatus{Succeeded: 1}, StatusSucceeded},
		{"failed", JobStatus{Failed: 1}, StatusFailed},
		{"pending", JobStatus{}, StatusPending},
		{"running with earlier failure", JobStatus{Active: 1, Failed: 2}, StatusRunning},
		{"succeeded after retries", JobStatus{Succeeded: 1, Failed: 3}, StatusSucceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := Job{Status: tt.status}
			assert.Equal(t, tt.want, job.Label())
		})
	}
}

func TestCronJobSuspended(t *testing.T) {
	yes, no := true, false

	assert.False(t, (&CronJob{}).Suspended())
	assert.False(t, (&CronJob{Spec: CronJobSpec{Suspend: &no}}).Suspended())
	assert.True(t, (&CronJob{Spec: CronJobSpec{Suspend: &yes}}).Suspended())
}

func TestParseTab(t *testing.T) {
	for _, tab := range Tabs() {
		got, err := ParseTab(string(tab))
		require.NoError(t, err)
		assert.Equal(t, tab, got)
	}

	_, err := ParseTab("settings")
	assert.True(t, errors.Is(err, ErrUnknownTab))
}

func TestJobDecodeOptionalTimestamps(t *testing.T) {
	body := `{
		"metadata": {"name": "backup-1", "namespace": "ops", "creationTimestamp": "2024-03-01T10:00:00Z"},
		"status": {"active": 1, "startTime": "2024-03-01T10:00:05Z", "completionTime": null}
	}`

	var job Job
	require.NoError(t, json.Unmarshal([]byte(body), &job))

	assert.Equal(t, "backup-1", job.Metadata.Name)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), job.Metadata.CreationTimestamp.Time)
	assert.False(t, job.Status.StartTime.IsZero())
	assert.True(t, job.Status.CompletionTime.IsZero())
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())
}
