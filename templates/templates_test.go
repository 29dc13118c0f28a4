package templates

import (
	"bytes"
	"context"
	"html"
	"regexp"
	"strings"
	"testing"
	"time"

	"croniq/pkg/dashboard"
	"croniq/pkg/models"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

// bareAmp matches an ampersand that does not start one of our entities
var bareAmp = regexp.MustCompile(`&(?:amp;|lt;|gt;|quot;|#039;)|&`)

func TestEscapeHTML(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		`<script>alert("x")</script>`,
		`Tom & Jerry's "show"`,
		"&amp; already escaped",
		"&&&<<<>>>\"\"\"'''",
		"ünïcödé <b>",
	}

	for _, in := range inputs {
		out := EscapeHTML(in)
		assert.NotContains(t, out, "<", in)
		assert.NotContains(t, out, ">", in)
		assert.NotContains(t, out, `"`, in)
		assert.NotContains(t, out, "'", in)
		for _, m := range bareAmp.FindAllString(out, -1) {
			assert.NotEqual(t, "&", m, "unescaped ampersand in %q", out)
		}
		assert.Equal(t, in, html.UnescapeString(out))
	}

	assert.Equal(t, "&lt;a href=&quot;x&quot;&gt;&#039;&amp;&lt;/a&gt;", EscapeHTML(`<a href="x">'&</a>`))
}

func TestCronJobsTableRows(t *testing.T) {
	suspended := true
	jobs := []models.CronJob{
		{Metadata: models.CronJobMetadata{Name: "backup", Namespace: "ops"}, Spec: models.CronJobSpec{Schedule: "0 2 * * *"}},
		{Metadata: models.CronJobMetadata{Name: "report", Namespace: "finance"}, Spec: models.CronJobSpec{Schedule: "*/5 * * * *", Suspend: &suspended}},
		{Metadata: models.CronJobMetadata{Name: "<evil>", Namespace: "x'y"}, Spec: models.CronJobSpec{Schedule: "@daily"}},
	}

	out := render(t, CronJobsTable(jobs))

	assert.Equal(t, len(jobs), strings.Count(out, `<tr class="cronjob-row">`))
	assert.NotContains(t, out, "empty-row")
	assert.Contains(t, out, `<td>backup</td><td>ops</td><td class="schedule">0 2 * * *</td><td class="status status-active">Active</td>`)
	assert.Contains(t, out, `<td>report</td><td>finance</td><td class="schedule">*/5 * * * *</td><td class="status status-suspended">Suspended</td>`)
	assert.Contains(t, out, `<td>&lt;evil&gt;</td><td>x&#039;y</td>`)
	assert.NotContains(t, out, "<evil>")
}

func TestCronJobsTableEmpty(t *testing.T) {
	out := render(t, CronJobsTable([]models.CronJob{}))

	assert.Equal(t, 0, strings.Count(out, `class="cronjob-row"`))
	assert.Contains(t, out, "No cron jobs found")
}

func TestJobsTable(t *testing.T) {
	created := models.Timestamp{Time: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	jobs := []models.Job{
		{Metadata: models.JobMetadata{Name: "a", Namespace: "ns", CreationTimestamp: created}, Status: models.JobStatus{Active: 1, StartTime: created}},
		{Metadata: models.JobMetadata{Name: "b", Namespace: "ns"}, Status: models.JobStatus{Succeeded: 1}},
		{Metadata: models.JobMetadata{Name: "c", Namespace: "ns"}, Status: models.JobStatus{Failed: 1}},
		{Metadata: models.JobMetadata{Name: "d", Namespace: "ns"}},
	}

	out := render(t, JobsTable(DefaultFormatter(), jobs))

	assert.Equal(t, 4, strings.Count(out, `<tr class="job-row">`))
	assert.Contains(t, out, `<td class="status status-running">Running</td><td>Mar 1, 2024 10:00:00 UTC</td><td>Mar 1, 2024 10:00:00 UTC</td><td>N/A</td>`)
	assert.Contains(t, out, `<td class="status status-succeeded">Succeeded</td><td>N/A</td><td>N/A</td><td>N/A</td>`)
	assert.Contains(t, out, `<td class="status status-failed">Failed</td>`)
	assert.Contains(t, out, `<td class="status status-pending">Pending</td>`)
}

func TestFormatter(t *testing.T) {
	en := DefaultFormatter()
	assert.Equal(t, "1,234,567", en.Number(1234567))
	assert.Equal(t, "0", en.Number(0))
	assert.Equal(t, Placeholder, en.Time(models.Timestamp{}))

	de, err := NewFormatter("de", "UTC")
	require.NoError(t, err)
	assert.Equal(t, "1.234.567", de.Number(1234567))

	_, err = NewFormatter("en", "Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestClusterInfoEscapes(t *testing.T) {
	out := render(t, ClusterInfo(&models.ClusterInfo{Name: `"prod"`, ServerAddress: "https://k8s&co", Version: "v1.30.0"}))

	assert.Contains(t, out, "<p>Cluster: &quot;prod&quot;</p>")
	assert.Contains(t, out, "<p>API Server: https://k8s&amp;co</p>")
	assert.Contains(t, out, "<p>Version: v1.30.0</p>")

	assert.Contains(t, render(t, ClusterInfo(nil)), "unavailable")
}

func TestStatsCards(t *testing.T) {
	out := render(t, StatsCards(DefaultFormatter(), &models.JobStats{TotalJobs: 12345, FailedJobs: 3}))

	assert.Equal(t, 6, strings.Count(out, `class="stat-card `))
	assert.Contains(t, out, `<span class="stat-value">12,345</span>`)
}

func TestStatsChart(t *testing.T) {
	out := render(t, StatsChart(&models.JobStats{RunningJobs: 1, SucceededJobs: 5, FailedJobs: 2}))

	assert.True(t, strings.HasPrefix(out, `<iframe class="stats-chart"`))
	assert.Contains(t, out, "job-outcomes")
	// the embedded document must stay inside the attribute
	inner := strings.TrimSuffix(strings.TrimPrefix(out, `<iframe class="stats-chart" title="Job outcomes" srcdoc="`), `"></iframe>`)
	assert.NotContains(t, inner, `"`)
	assert.NotContains(t, inner, "<")

	assert.Empty(t, render(t, StatsChart(nil)))
}

func TestErrorBanner(t *testing.T) {
	hidden := render(t, ErrorBanner(nil))
	assert.Contains(t, hidden, "hidden")

	shown := render(t, ErrorBanner([]string{"Jobs error: Failed to fetch jobs: 500 <oops>"}))
	assert.NotContains(t, shown, "hidden")
	assert.Contains(t, shown, "<p>Jobs error: Failed to fetch jobs: 500 &lt;oops&gt;</p>")
}

func testView(active models.Tab) *dashboard.View {
	return &dashboard.View{
		RefreshID:   "r-1",
		Active:      active,
		ClusterInfo: &models.ClusterInfo{Name: "kind-dev"},
		Stats:       &models.JobStats{TotalJobs: 2},
		CronJobs:    []models.CronJob{{Metadata: models.CronJobMetadata{Name: "backup"}}},
		Debug: []dashboard.DebugLine{
			{Time: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), Message: "CronJobs: 1 items"},
		},
	}
}

func TestPageMarksExactlyOneTabActive(t *testing.T) {
	for _, active := range models.Tabs() {
		out := render(t, Page(DefaultFormatter(), testView(active)))

		assert.Equal(t, 1, strings.Count(out, `class="tab-button active"`), active)
		assert.Equal(t, 1, strings.Count(out, `class="tab-content active"`), active)
		assert.Contains(t, out, `<section id="panel-`+string(active)+`" class="tab-content active"`)
		assert.Contains(t, out, `<button type="button" class="tab-button active" data-tab="`+string(active)+`">`)
	}
}

func TestPage(t *testing.T) {
	out := render(t, Page(DefaultFormatter(), testView(models.TabDashboard)))

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<p>Cluster: kind-dev</p>")
	assert.Contains(t, out, `<tr class="cronjob-row">`)
	assert.Contains(t, out, "Jobs not loaded")
	assert.Contains(t, out, `<div class="debug-line">[2024-03-01T12:00:00Z] CronJobs: 1 items</div>`)
	assert.Contains(t, out, `id="error" class="error-banner" data-region="error" role="alert" hidden`)
	assert.Contains(t, out, `/static/dashboard.js`)
}

func TestFragment(t *testing.T) {
	view := testView(models.TabJobs)
	view.Jobs = nil
	view.Errors = []string{"Jobs error: Failed to fetch jobs: 502"}

	out := render(t, Fragment(DefaultFormatter(), view))

	assert.Contains(t, out, `data-tab="jobs"`)
	assert.Contains(t, out, `<section id="panel-jobs" class="tab-content active"`)
	assert.NotContains(t, out, "panel-cronjobs")
	assert.Contains(t, out, "<p>Jobs error: Failed to fetch jobs: 502</p>")
}

func TestRenderStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := Page(DefaultFormatter(), testView(models.TabDashboard)).Render(ctx, &buf)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}
