package email

import (
	"context"
	"sync"
	"time"
)

// SentMessage captures one delivery made through the RecordingMailer.
type SentMessage struct {
	Kind       string // "confirmation", "access_code", "welcome"
	To         string
	Name       string
	AccessCode string
}

// RecordingMailer stores messages in memory instead of sending them. Used in
// tests and when running the backend without a mail provider.
type RecordingMailer struct {
	mu       sync.Mutex
	messages []SentMessage

	// Fail, when set, is returned from every send. Lets tests exercise the
	// soft-failure path.
	Fail error
}

var _ Mailer = (*RecordingMailer)(nil)

// NewRecordingMailer constructs an empty RecordingMailer.
func NewRecordingMailer() *RecordingMailer {
	return &RecordingMailer{}
}

// SendConfirmation implements Mailer.
func (m *RecordingMailer) SendConfirmation(_ context.Context, to, name string, _ time.Time) error {
	return m.record(SentMessage{Kind: "confirmation", To: to, Name: name})
}

// SendAccessCode implements Mailer.
func (m *RecordingMailer) SendAccessCode(_ context.Context, to, name, accessCode string) error {
	return m.record(SentMessage{Kind: "access_code", To: to, Name: name, AccessCode: accessCode})
}

// SendWelcome implements Mailer.
func (m *RecordingMailer) SendWelcome(_ context.Context, to, name string) error {
	return m.record(SentMessage{Kind: "welcome", To: to, Name: name})
}

// Messages returns a copy of everything recorded so far.
func (m *RecordingMailer) Messages() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SentMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

func (m *RecordingMailer) record(msg SentMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail != nil {
		return m.Fail
	}

	m.messages = append(m.messages, msg)
	return nil
}
