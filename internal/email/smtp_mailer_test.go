package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defailabz/mvp-backend/pkg/config"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newCapturingMailer(fail error) (*SMTPMailer, *[]capturedMail) {
	var sent []capturedMail

	mailer := NewSMTPMailer(config.EmailConfig{
		Host:     "mail.test",
		Port:     587,
		Username: "sender",
		Password: "secret",
		From:     "no-reply@defailabz.com",
		FromName: "DeFaiLabz",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mailer.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		if fail != nil {
			return fail
		}
		sent = append(sent, capturedMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}

	return mailer, &sent
}

func TestSendConfirmation_IncludesLaunchDate(t *testing.T) {
	mailer, sent := newCapturingMailer(nil)
	launch := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	err := mailer.SendConfirmation(context.Background(), "ana@x.com", "Ana", launch)

	require.NoError(t, err)
	require.Len(t, *sent, 1)

	mail := (*sent)[0]
	assert.Equal(t, "mail.test:587", mail.addr)
	assert.Equal(t, []string{"ana@x.com"}, mail.to)
	assert.Contains(t, mail.msg, "Ana")
	assert.Contains(t, mail.msg, "01/10/2026")
	assert.Contains(t, mail.msg, "Subject: Cadastro Recebido - DeFaiLabz MVP")
}

func TestSendAccessCode_IncludesCode(t *testing.T) {
	mailer, sent := newCapturingMailer(nil)

	err := mailer.SendAccessCode(context.Background(), "ana@x.com", "Ana", "A3F09B")

	require.NoError(t, err)
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].msg, "A3F09B")
	assert.Contains(t, (*sent)[0].msg, "Content-Type: text/html")
}

func TestSendWelcome(t *testing.T) {
	mailer, sent := newCapturingMailer(nil)

	err := mailer.SendWelcome(context.Background(), "ana@x.com", "Ana")

	require.NoError(t, err)
	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].msg, "Bem-vindo")
}

func TestDeliver_WrapsSendError(t *testing.T) {
	mailer, _ := newCapturingMailer(errors.New("connection refused"))

	err := mailer.SendWelcome(context.Background(), "ana@x.com", "Ana")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ana@x.com")
}

func TestDeliver_RespectsCanceledContext(t *testing.T) {
	mailer, sent := newCapturingMailer(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := mailer.SendWelcome(ctx, "ana@x.com", "Ana")

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, *sent)
}

func TestRecordingMailer_CapturesKinds(t *testing.T) {
	mailer := NewRecordingMailer()
	ctx := context.Background()

	require.NoError(t, mailer.SendConfirmation(ctx, "a@x.com", "A", time.Now()))
	require.NoError(t, mailer.SendAccessCode(ctx, "a@x.com", "A", "FFFFFF"))
	require.NoError(t, mailer.SendWelcome(ctx, "a@x.com", "A"))

	messages := mailer.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, "confirmation", messages[0].Kind)
	assert.Equal(t, "access_code", messages[1].Kind)
	assert.Equal(t, "FFFFFF", messages[1].AccessCode)
	assert.Equal(t, "welcome", messages[2].Kind)
}
