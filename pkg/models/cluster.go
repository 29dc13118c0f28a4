package models

// ClusterInfo describes the Kubernetes cluster behind the API
type ClusterInfo struct {
	Name          string `json:"name"`
	ServerAddress string `json:"serverAddress"`
	Version       string `json:"version"`
}
