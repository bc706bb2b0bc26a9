// Package scheduler provides the asynq task definitions, client and worker
// for background processing.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskDraftExpiry = "booking.draft.expiry"

// DraftExpiryPayload identifies the wizard session to sweep.
type DraftExpiryPayload struct {
	DraftID string `json:"draftId"`
}

func NewDraftExpiryTask(payload DraftExpiryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDraftExpiry, data), nil
}

func ParseDraftExpiryPayload(task *asynq.Task) (DraftExpiryPayload, error) {
	var payload DraftExpiryPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return DraftExpiryPayload{}, err
	}
	return payload, nil
}
