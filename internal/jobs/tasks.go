package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TaskTypeAccessCodeEmail = "email:access_code"
	TaskTypeWelcomeEmail    = "email:welcome"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// AccessCodeEmailPayload carries everything the handler needs to deliver one
// access code. One task per registrant; the launch date lives in the task's
// process-at time, not in the payload.
type AccessCodeEmailPayload struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	AccessCode string `json:"access_code"`
}

// WelcomeEmailPayload carries the fields for the post-validation welcome email.
type WelcomeEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewAccessCodeEmailTask builds the deferred code-delivery task. The task ID
// is fixed to the registrant's email so a double enqueue collapses into one.
func NewAccessCodeEmailTask(email, name, accessCode string) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(AccessCodeEmailPayload{
		Email:      email,
		Name:       name,
		AccessCode: accessCode,
	})
	if err != nil {
		return nil, nil, err
	}

	opts := []asynq.Option{
		asynq.Queue(QueueDefault),
		asynq.TaskID("access_code:" + email),
	}

	return asynq.NewTask(TaskTypeAccessCodeEmail, payload), opts, nil
}

// NewWelcomeEmailTask builds the welcome email task.
func NewWelcomeEmailTask(email, name string) (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{Email: email, Name: name})
	if err != nil {
		return nil, nil, err
	}

	opts := []asynq.Option{asynq.Queue(QueueLow)}

	return asynq.NewTask(TaskTypeWelcomeEmail, payload), opts, nil
}
