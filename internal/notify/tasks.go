// Package notify enqueues background notification jobs. Delivery itself is
// owned by a separate worker deployment; this package only defines the task
// contracts and the enqueue client.
package notify

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskOrderConfirmation = "orders.confirmation"

type OrderConfirmationPayload struct {
	OrderID string `json:"orderId"`
}

func NewOrderConfirmationTask(payload OrderConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmation, data), nil
}

func ParseOrderConfirmationPayload(task *asynq.Task) (OrderConfirmationPayload, error) {
	var payload OrderConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return OrderConfirmationPayload{}, err
	}
	return payload, nil
}
