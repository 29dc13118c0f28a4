package handlers

import (
	"net/http"

	"croniq/pkg/logging"
	"croniq/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/inconshreveable/log15"
)

// NewDashboardRouter serves the dashboard page, tab fragments and static
// assets
func NewDashboardRouter(d *Dashboard, assets http.FileSystem, logger log15.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(logger))

	r.StaticFS("/static", assets)
	r.GET("/healthz", Health)

	pages := r.Group("/", NoCache())
	{
		pages.GET("/", d.Index)
		pages.GET("/tabs/:name", d.Tab)
	}

	return r
}

// NewAPIRouter serves the backend API
func NewAPIRouter(h *Handlers, logger log15.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.Middleware(logger))
	r.GET("/healthz", Health)

	api := r.Group("/", CORS(), NoCache())
	{
		api.GET(models.PathClusterInfo, h.ClusterInfo)
		api.GET(models.PathCronJobs, h.ListCronJobs)
		api.POST(models.PathCronJobs, h.CreateCronJob)
		api.GET(models.PathJobs, h.ListJobs)
		api.GET(models.PathStats, h.Stats)
		api.OPTIONS("/api/*path", func(c *gin.Context) {})
	}

	return r
}
