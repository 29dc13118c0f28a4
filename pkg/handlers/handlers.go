package handlers

import (
	"context"
	"net/http"

	"croniq/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/inconshreveable/log15"
	batchv1 "k8s.io/api/batch/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// ClusterService is the Kubernetes-facing backend of the API handlers
type ClusterService interface {
	ClusterInfo(ctx context.Context) (*models.ClusterInfo, error)
	ListCronJobs(ctx context.Context) (*batchv1.CronJobList, error)
	ListJobs(ctx context.Context) (*batchv1.JobList, error)
	Stats(ctx context.Context) (*models.JobStats, error)
	CreateCronJob(ctx context.Context, req models.CreateCronJobRequest) (*batchv1.CronJob, error)
}

// Handlers contains the backend API handlers
type Handlers struct {
	service ClusterService
	log     log15.Logger
}

// New creates a new Handlers instance
func New(service ClusterService, logger log15.Logger) *Handlers {
	return &Handlers{
		service: service,
		log:     logger,
	}
}

// ClusterInfo returns the cluster the API is connected to
func (h *Handlers) ClusterInfo(c *gin.Context) {
	info, err := h.service.ClusterInfo(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to get cluster info", err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// ListCronJobs returns the cron jobs of every namespace
func (h *Handlers) ListCronJobs(c *gin.Context) {
	list, err := h.service.ListCronJobs(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to fetch cron jobs", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateCronJob creates a cron job from a JSON request
func (h *Handlers) CreateCronJob(c *gin.Context) {
	var req models.CreateCronJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	created, err := h.service.CreateCronJob(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case apierrors.IsAlreadyExists(err):
			status = http.StatusConflict
		case apierrors.IsInvalid(err):
			status = http.StatusBadRequest
		}
		h.fail(c, status, "Failed to create cron job", err)
		return
	}

	h.log.Info("created cron job", "namespace", created.Namespace, "name", created.Name)
	c.JSON(http.StatusCreated, created)
}

// ListJobs returns the jobs of every namespace
func (h *Handlers) ListJobs(c *gin.Context) {
	list, err := h.service.ListJobs(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to list jobs", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Stats returns aggregate cron job and job counts
func (h *Handlers) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to compute stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *Handlers) fail(c *gin.Context, status int, msg string, err error) {
	_ = c.Error(err)
	c.JSON(status, models.ErrorResponse{Error: msg + ": " + err.Error()})
}
