package dto

// HealthResponse represents the response structure for liveness and readiness checks
type HealthResponse struct {
	Status  string `json:"status"`
	Details any    `json:"details,omitempty"`
}

// ServiceHealthResponse is returned by /health.
type ServiceHealthResponse struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
}

// APIIndexResponse is returned by GET /api.
type APIIndexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// PingResponse is returned by the volunteers ping.
type PingResponse struct {
	Message string `json:"message"`
	Time    string `json:"time"`
}

// PartnerPingResponse is returned by the partners ping.
type PartnerPingResponse struct {
	OK  bool   `json:"ok"`
	Who string `json:"who"`
}
