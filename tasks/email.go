package tasks

import (
	"encoding/json"
	"fmt"

	"edupath/models"

	"github.com/hibiken/asynq"
)

// TypeConfirmationSend is the queue task for the post-payment confirmation
// email.
const TypeConfirmationSend = "confirmation:send"

// NewConfirmationTask wraps the confirmation mail payload into a queue task.
func NewConfirmationTask(mail models.ConfirmationEmail) (*asynq.Task, error) {
	b, err := json.Marshal(mail)
	if err != nil {
		return nil, fmt.Errorf("failed to encode confirmation payload: %w", err)
	}
	return asynq.NewTask(TypeConfirmationSend, b), nil
}
