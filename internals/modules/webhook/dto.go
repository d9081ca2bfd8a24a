package webhook

import "statusboard/internals/modules/status"

type StatusPayload struct {
	Tag                string   `json:"tag" validate:"required"`
	Status             string   `json:"status" validate:"required,oneof=UP DEGRADED DOWN"`
	Latency            *float64 `json:"latency" validate:"omitempty,gte=0"`
	Type               string   `json:"type" validate:"omitempty,max=64"`
	TimestampInSeconds *int64   `json:"timestampInSeconds" validate:"omitempty,gt=0"`
}

// StoreResult carries the outcome of a status write. Status is the HTTP code
// the gateway responds with.
type StoreResult struct {
	Status    int    `json:"status"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

type StatusView struct {
	Tag         string        `json:"tag"`
	Status      status.Status `json:"status"`
	Uptime      string        `json:"uptime"`
	LastUpdated int64         `json:"last_updated"`
}
