package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"croniq/pkg/logging"
	"croniq/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

type fakeService struct {
	err       error
	createErr error
	created   *models.CreateCronJobRequest
}

func (s *fakeService) ClusterInfo(ctx context.Context) (*models.ClusterInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ClusterInfo{Name: "kind-dev", ServerAddress: "https://127.0.0.1:6443", Version: "v1.30.0"}, nil
}

func (s *fakeService) ListCronJobs(ctx context.Context) (*batchv1.CronJobList, error) {
	if s.err != nil {
		return nil, s.err
	}
	suspend := true
	return &batchv1.CronJobList{Items: []batchv1.CronJob{
		{ObjectMeta: metav1.ObjectMeta{Name: "backup", Namespace: "ops"}, Spec: batchv1.CronJobSpec{Schedule: "0 2 * * *", Suspend: &suspend}},
	}}, nil
}

func (s *fakeService) ListJobs(ctx context.Context) (*batchv1.JobList, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &batchv1.JobList{Items: []batchv1.Job{
		{ObjectMeta: metav1.ObjectMeta{Name: "backup-1", Namespace: "ops"}, Status: batchv1.JobStatus{Active: 1}},
	}}, nil
}

func (s *fakeService) Stats(ctx context.Context) (*models.JobStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.JobStats{TotalCronJobs: 1, TotalJobs: 1, RunningJobs: 1}, nil
}

func (s *fakeService) CreateCronJob(ctx context.Context, req models.CreateCronJobRequest) (*batchv1.CronJob, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &req
	return &batchv1.CronJob{ObjectMeta: metav1.ObjectMeta{Name: req.Name, Namespace: "default"}}, nil
}

func newAPIServer(svc ClusterService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewAPIRouter(New(svc, logging.Discard()), logging.Discard())
}

func TestAPIResponsesDecodeIntoDashboardModels(t *testing.T) {
	r := newAPIServer(&fakeService{})

	rr := get(r, models.PathCronJobs)
	require.Equal(t, http.StatusOK, rr.Code)
	var cronJobs models.CronJobList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cronJobs))
	require.Len(t, cronJobs.Items, 1)
	assert.Equal(t, "backup", cronJobs.Items[0].Metadata.Name)
	assert.True(t, cronJobs.Items[0].Suspended())

	rr = get(r, models.PathJobs)
	require.Equal(t, http.StatusOK, rr.Code)
	var jobs models.JobList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &jobs))
	require.Len(t, jobs.Items, 1)
	assert.Equal(t, models.StatusRunning, jobs.Items[0].Label())
	assert.True(t, jobs.Items[0].Status.CompletionTime.IsZero())

	rr = get(r, models.PathClusterInfo)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"name":"kind-dev","serverAddress":"https://127.0.0.1:6443","version":"v1.30.0"}`, rr.Body.String())

	rr = get(r, models.PathStats)
	require.Equal(t, http.StatusOK, rr.Code)
	var stats models.JobStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.RunningJobs)
}

func TestAPIHeaders(t *testing.T) {
	r := newAPIServer(&fakeService{})

	rr := get(r, models.PathStats)
	assert.Equal(t, "no-store, no-cache, must-revalidate", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", rr.Header().Get("Pragma"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestAPIPreflight(t *testing.T) {
	r := newAPIServer(&fakeService{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, models.PathCronJobs, nil))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "GET")
}

func TestAPIErrorsAreJSON(t *testing.T) {
	r := newAPIServer(&fakeService{err: errors.New("connection refused")})

	for _, path := range []string{models.PathClusterInfo, models.PathCronJobs, models.PathJobs, models.PathStats} {
		rr := get(r, path)
		assert.Equal(t, http.StatusInternalServerError, rr.Code, path)

		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), path)
		assert.Contains(t, body.Error, "connection refused", path)
	}
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rr, req)
	return rr
}

func TestCreateCronJob(t *testing.T) {
	svc := &fakeService{}
	r := newAPIServer(svc)

	rr := post(r, models.PathCronJobs, `{"name":"hello","schedule":"0 * * * *","image":"busybox","command":["echo","hi"]}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, []string{"echo", "hi"}, svc.created.Command)
}

func TestCreateCronJobValidation(t *testing.T) {
	svc := &fakeService{}
	r := newAPIServer(svc)

	rr := post(r, models.PathCronJobs, `{"name":"hello"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Nil(t, svc.created)

	rr = post(r, models.PathCronJobs, `not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateCronJobConflict(t *testing.T) {
	svc := &fakeService{
		createErr: apierrors.NewAlreadyExists(schema.GroupResource{Group: "batch", Resource: "cronjobs"}, "hello"),
	}
	r := newAPIServer(svc)

	rr := post(r, models.PathCronJobs, `{"name":"hello","schedule":"0 * * * *","image":"busybox"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
}
