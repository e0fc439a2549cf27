package model

// HealthStatus represents the system health check response
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
