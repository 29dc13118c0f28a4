package k8s

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// InClusterContext is reported as the context name when running in a pod
const InClusterContext = "in-cluster"

// ClientProvider hands out a Kubernetes client and describes its target
type ClientProvider interface {
	Client() (kubernetes.Interface, error)
	Host() (string, error)
	ContextName() (string, error)
}

// Manager lazily builds and caches the Kubernetes client. In-cluster
// configuration is tried first, then the kubeconfig file.
type Manager struct {
	kubeconfigPath string

	mu        sync.Mutex
	config    *rest.Config
	inCluster bool
	clientset *kubernetes.Clientset
}

// NewManager creates a manager. An empty path falls back to
// $KUBECONFIG and then ~/.kube/config.
func NewManager(kubeconfigPath string) *Manager {
	if kubeconfigPath == "" {
		kubeconfigPath = os.Getenv("KUBECONFIG")
	}
	if kubeconfigPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			kubeconfigPath = filepath.Join(home, ".kube", "config")
		}
	}
	return &Manager{kubeconfigPath: kubeconfigPath}
}

// KubeconfigPath returns the kubeconfig file used outside a cluster
func (m *Manager) KubeconfigPath() string {
	return m.kubeconfigPath
}

func (m *Manager) restConfig() (*rest.Config, error) {
	if m.config != nil {
		return m.config, nil
	}

	config, err := rest.InClusterConfig()
	if err == nil {
		m.config, m.inCluster = config, true
		return config, nil
	}

	config, err = clientcmd.BuildConfigFromFlags("", m.kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to build kubeconfig: %w", err)
	}
	m.config = config
	return config, nil
}

// Client returns the cached clientset, creating it on first use
func (m *Manager) Client() (kubernetes.Interface, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.clientset != nil {
		return m.clientset, nil
	}

	config, err := m.restConfig()
	if err != nil {
		return nil, err
	}
	config.Timeout = DefaultTimeout

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	m.clientset = clientset
	return clientset, nil
}

// Host returns the API server URL
func (m *Manager) Host() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	config, err := m.restConfig()
	if err != nil {
		return "", err
	}
	return config.Host, nil
}

// ContextName returns the current kubeconfig context
func (m *Manager) ContextName() (string, error) {
	m.mu.Lock()
	if _, err := m.restConfig(); err != nil {
		m.mu.Unlock()
		return "", err
	}
	inCluster := m.inCluster
	m.mu.Unlock()

	if inCluster {
		return InClusterContext, nil
	}

	rules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: m.kubeconfigPath}
	raw, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).RawConfig()
	if err != nil {
		return "", fmt.Errorf("failed to load raw kubeconfig: %w", err)
	}
	return raw.CurrentContext, nil
}
