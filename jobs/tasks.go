package jobs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLookupWarmup reloads every lookup collection into the shared cache.
	TaskLookupWarmup = "lookup:warm"
)

// LookupWarmupPayload controls a warmup run. Invalidate drops the cached
// version first so every collection is fetched again from the backend.
type LookupWarmupPayload struct {
	Invalidate bool   `json:"invalidate"`
	Reason     string `json:"reason,omitempty"`
}

// NewLookupWarmupTask constructs a lookup warmup task.
func NewLookupWarmupTask(payload LookupWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLookupWarmup, data, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}

// NewTask builds a task by type name for manual triggering.
func NewTask(name string) (*asynq.Task, error) {
	switch strings.TrimSpace(name) {
	case TaskLookupWarmup:
		return NewLookupWarmupTask(LookupWarmupPayload{Invalidate: true, Reason: "manual"})
	default:
		return nil, fmt.Errorf("jobs: unknown task %q", name)
	}
}
