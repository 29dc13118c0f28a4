package k8s

import (
	"context"
	"fmt"
	"time"

	"croniq/pkg/models"

	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/version"
	"k8s.io/client-go/kubernetes"
)

// DefaultTimeout bounds every call to the Kubernetes API
const DefaultTimeout = 10 * time.Second

// DefaultNamespace is used for new cron jobs that name no namespace
const DefaultNamespace = "default"

// Service reads cron jobs and jobs across all namespaces
type Service struct {
	provider ClientProvider
	timeout  time.Duration
}

// NewService creates a service over provider
func NewService(provider ClientProvider) *Service {
	return &Service{provider: provider, timeout: DefaultTimeout}
}

// ClusterInfo returns the current context name, API host and server version
func (s *Service) ClusterInfo(ctx context.Context) (*models.ClusterInfo, error) {
	client, err := s.provider.Client()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	serverInfo, err := serverVersion(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("failed to get server version: %w", err)
	}

	host, err := s.provider.Host()
	if err != nil {
		return nil, err
	}

	name, err := s.provider.ContextName()
	if err != nil {
		return nil, err
	}

	return &models.ClusterInfo{
		Name:          name,
		ServerAddress: host,
		Version:       serverInfo.String(),
	}, nil
}

// serverVersion bounds the discovery call by ctx. Discovery takes no
// context, so a call that outlives ctx is abandoned and left to the
// client's own timeout.
func serverVersion(ctx context.Context, client kubernetes.Interface) (*version.Info, error) {
	type result struct {
		info *version.Info
		err  error
	}
	done := make(chan result, 1)
	go func() {
		info, err := client.Discovery().ServerVersion()
		done <- result{info: info, err: err}
	}()

	select {
	case r := <-done:
		return r.info, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ListCronJobs lists cron jobs in every namespace
func (s *Service) ListCronJobs(ctx context.Context) (*batchv1.CronJobList, error) {
	client, err := s.provider.Client()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	list, err := client.BatchV1().CronJobs(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list cron jobs: %w", err)
	}
	return list, nil
}

// ListJobs lists jobs in every namespace
func (s *Service) ListJobs(ctx context.Context) (*batchv1.JobList, error) {
	client, err := s.provider.Client()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	list, err := client.BatchV1().Jobs(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return list, nil
}

// Stats aggregates cron job and job counts
func (s *Service) Stats(ctx context.Context) (*models.JobStats, error) {
	cronJobs, err := s.ListCronJobs(ctx)
	if err != nil {
		return nil, err
	}
	jobs, err := s.ListJobs(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(cronJobs.Items, jobs.Items), nil
}

// ComputeStats counts cron jobs that are not suspended and jobs with
// running, failed or succeeded pods. A job with both failed and succeeded
// pods counts in both buckets.
func ComputeStats(cronJobs []batchv1.CronJob, jobs []batchv1.Job) *models.JobStats {
	stats := &models.JobStats{
		TotalCronJobs: len(cronJobs),
		TotalJobs:     len(jobs),
	}

	for _, cj := range cronJobs {
		if cj.Spec.Suspend == nil || !*cj.Spec.Suspend {
			stats.ActiveCronJobs++
		}
	}

	for _, job := range jobs {
		if job.Status.Active > 0 {
			stats.RunningJobs++
		}
		if job.Status.Failed > 0 {
			stats.FailedJobs++
		}
		if job.Status.Succeeded > 0 {
			stats.SucceededJobs++
		}
	}

	return stats
}

// CreateCronJob creates a cron job running a single container
func (s *Service) CreateCronJob(ctx context.Context, req models.CreateCronJobRequest) (*batchv1.CronJob, error) {
	client, err := s.provider.Client()
	if err != nil {
		return nil, err
	}

	namespace := req.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	cronJob := &batchv1.CronJob{
		ObjectMeta: metav1.ObjectMeta{
			Name:      req.Name,
			Namespace: namespace,
		},
		Spec: batchv1.CronJobSpec{
			Schedule: req.Schedule,
			JobTemplate: batchv1.JobTemplateSpec{
				Spec: batchv1.JobSpec{
					Template: corev1.PodTemplateSpec{
						Spec: corev1.PodSpec{
							RestartPolicy: corev1.RestartPolicyOnFailure,
							Containers: []corev1.Container{
								{
									Name:    req.Name,
									Image:   req.Image,
									Command: req.Command,
								},
							},
						},
					},
				},
			},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	created, err := client.BatchV1().CronJobs(namespace).Create(ctx, cronJob, metav1.CreateOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create cron job: %w", err)
	}
	return created, nil
}
