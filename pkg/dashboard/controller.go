package dashboard

import (
	"context"
	"fmt"
	"time"

	"croniq/pkg/models"

	"github.com/google/uuid"
	"github.com/inconshreveable/log15"
	"golang.org/x/sync/errgroup"
)

// Fetcher is the part of the API client the controller depends on
type Fetcher interface {
	FetchClusterInfo(ctx context.Context) (*models.ClusterInfo, error)
	FetchCronJobs(ctx context.Context) ([]models.CronJob, error)
	FetchJobs(ctx context.Context) ([]models.Job, error)
	FetchStats(ctx context.Context) (*models.JobStats, error)
}

// Controller runs fetch-then-render cycles for the dashboard tabs
type Controller struct {
	api   Fetcher
	log   log15.Logger
	now   func() time.Time
	newID func() string
}

// NewController creates a controller reading from api
func NewController(api Fetcher, logger log15.Logger) *Controller {
	return &Controller{
		api:   api,
		log:   logger,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Initialize builds the page-load view: the default tab's data plus the
// cron job list.
func (c *Controller) Initialize(ctx context.Context) *View {
	r := c.begin(models.DefaultTab)
	r.load(ctx, models.DefaultTab)
	r.loadCronJobs(ctx)
	return r.finish()
}

// SwitchTab makes tab the active panel and fetches only the data that
// panel shows
func (c *Controller) SwitchTab(ctx context.Context, tab models.Tab) *View {
	r := c.begin(tab)
	r.load(ctx, tab)
	return r.finish()
}

// refresh accumulates the state of one fetch-then-render cycle
type refresh struct {
	c     *Controller
	view  *View
	log   log15.Logger
	start time.Time
}

func (c *Controller) begin(tab models.Tab) *refresh {
	id := c.newID()
	r := &refresh{
		c:     c,
		view:  &View{RefreshID: id, Active: tab},
		log:   c.log.New("refresh", id, "tab", string(tab)),
		start: c.now(),
	}
	r.log.Debug("refresh started")
	return r
}

func (r *refresh) finish() *View {
	r.log.Info("refresh finished", "errors", len(r.view.Errors), "duration", r.c.now().Sub(r.start))
	return r.view
}

func (r *refresh) load(ctx context.Context, tab models.Tab) {
	switch tab {
	case models.TabDashboard:
		r.loadDashboard(ctx)
	case models.TabCronJobs:
		r.loadCronJobs(ctx)
	case models.TabJobs:
		r.loadJobs(ctx)
	}
}

// loadDashboard fetches cluster info and stats concurrently. Results are
// recorded in a fixed order once both have returned.
func (r *refresh) loadDashboard(ctx context.Context) {
	var (
		info     *models.ClusterInfo
		infoErr  error
		stats    *models.JobStats
		statsErr error
	)

	// The group only joins the two fetches. Each keeps its own error so
	// one failure never cancels the other.
	var g errgroup.Group
	g.Go(func() error {
		info, infoErr = r.c.api.FetchClusterInfo(ctx)
		return nil
	})
	g.Go(func() error {
		stats, statsErr = r.c.api.FetchStats(ctx)
		return nil
	})
	g.Wait()

	if infoErr != nil {
		r.fail("Cluster info", infoErr)
	} else {
		r.view.ClusterInfo = info
		r.debug("Cluster info: name=%s server=%s version=%s", info.Name, info.ServerAddress, info.Version)
	}

	if statsErr != nil {
		r.fail("Stats", statsErr)
	} else {
		r.view.Stats = stats
		r.debug("Stats: %d cron jobs, %d jobs", stats.TotalCronJobs, stats.TotalJobs)
	}
}

func (r *refresh) loadCronJobs(ctx context.Context) {
	jobs, err := r.c.api.FetchCronJobs(ctx)
	if err != nil {
		r.fail("CronJobs", err)
		return
	}
	r.view.CronJobs = jobs
	r.debug("CronJobs: %d items", len(jobs))
}

func (r *refresh) loadJobs(ctx context.Context) {
	jobs, err := r.c.api.FetchJobs(ctx)
	if err != nil {
		r.fail("Jobs", err)
		return
	}
	r.view.Jobs = jobs
	r.debug("Jobs: %d items", len(jobs))
}

func (r *refresh) debug(format string, args ...interface{}) {
	line := DebugLine{Time: r.c.now(), Message: fmt.Sprintf(format, args...)}
	r.view.Debug = append(r.view.Debug, line)
	r.log.Debug(line.Message)
}

// fail records err in the error banner and the debug console. The refresh
// carries on with its remaining fetches.
func (r *refresh) fail(what string, err error) {
	msg := fmt.Sprintf("%s error: %v", what, err)
	r.view.Errors = append(r.view.Errors, msg)
	r.view.Debug = append(r.view.Debug, DebugLine{Time: r.c.now(), Message: msg})
	r.log.Warn("fetch failed", "what", what, "err", err)
}
