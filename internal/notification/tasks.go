package notification

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TaskDeliver is the asynq task type for outbox delivery.
const TaskDeliver = "notification:deliver"

// DeliverPayload points the worker at one outbox entry.
type DeliverPayload struct {
	OutboxID string `json:"outbox_id"`
}

// NewDeliverTask builds the asynq task for an outbox entry.
func NewDeliverTask(payload DeliverPayload) (*asynq.Task, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal deliver payload: %w", err)
	}
	return asynq.NewTask(TaskDeliver, raw, asynq.MaxRetry(5)), nil
}

// ParseDeliverPayload decodes the task payload.
func ParseDeliverPayload(task *asynq.Task) (DeliverPayload, error) {
	var payload DeliverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DeliverPayload{}, fmt.Errorf("unmarshal deliver payload: %w", err)
	}
	return payload, nil
}
