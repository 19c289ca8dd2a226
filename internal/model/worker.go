package model

import (
	"strings"

	"github.com/google/uuid"
)

// UnknownWorkerID is the placeholder referenced by task entries whose
// worker can no longer be resolved (deleted, or lost in a legacy blob).
const UnknownWorkerID = "unknown"

// UnknownWorkerCode labels pins whose worker code is missing.
const UnknownWorkerCode = "?"

// Worker is a crew member. Code is a short label painted on plan pins;
// it is not required to be unique. Color is assigned once at creation
// and never reassigned on edit.
type Worker struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	HourlyRate float64 `json:"hourlyRate"`
	Color      string  `json:"color"`
}

// NewWorker creates a worker with a fresh id. Name and code are trimmed.
func NewWorker(name, code string, hourlyRate float64, color string) Worker {
	return Worker{
		ID:         "worker-" + uuid.NewString(),
		Name:       strings.TrimSpace(name),
		Code:       strings.TrimSpace(code),
		HourlyRate: hourlyRate,
		Color:      color,
	}
}
