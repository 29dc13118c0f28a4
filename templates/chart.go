package templates

import (
	"bytes"

	"croniq/pkg/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

type statCard struct {
	label string
	class string
	value int
}

func statCards(stats *models.JobStats) []statCard {
	return []statCard{
		{"Total CronJobs", "total-cronjobs", stats.TotalCronJobs},
		{"Active CronJobs", "active-cronjobs", stats.ActiveCronJobs},
		{"Total Jobs", "total-jobs", stats.TotalJobs},
		{"Running", "running-jobs", stats.RunningJobs},
		{"Succeeded", "succeeded-jobs", stats.SucceededJobs},
		{"Failed", "failed-jobs", stats.FailedJobs},
	}
}

// chartDocument renders the job outcome bar chart as a standalone HTML
// document
func chartDocument(stats *models.JobStats) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Job Outcomes"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: "job-outcomes",
			Height:  "240px",
			Width:   "100%",
		}),
	)
	bar.SetXAxis([]string{models.StatusRunning, models.StatusSucceeded, models.StatusFailed}).
		AddSeries("Jobs", []opts.BarData{
			{Value: stats.RunningJobs},
			{Value: stats.SucceededJobs},
			{Value: stats.FailedJobs},
		})

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
