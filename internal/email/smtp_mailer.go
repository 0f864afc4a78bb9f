package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/defailabz/mvp-backend/pkg/config"
)

// sendFunc matches smtp.SendMail; swapped out in tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	cfg  config.EmailConfig
	log  *slog.Logger
	send sendFunc
}

var _ Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer constructs a Mailer for the configured SMTP relay.
func NewSMTPMailer(cfg config.EmailConfig, log *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		cfg:  cfg,
		log:  log,
		send: smtp.SendMail,
	}
}

// SendConfirmation implements Mailer.
func (m *SMTPMailer) SendConfirmation(ctx context.Context, to, name string, launchDate time.Time) error {
	body, err := render(confirmationTemplate, map[string]string{
		"Name":       name,
		"LaunchDay":  launchDate.Format("02/01/2006"),
		"LaunchTime": launchDate.Format("15:04"),
	})
	if err != nil {
		return err
	}

	return m.deliver(ctx, to, "Cadastro Recebido - DeFaiLabz MVP", body)
}

// SendAccessCode implements Mailer.
func (m *SMTPMailer) SendAccessCode(ctx context.Context, to, name, accessCode string) error {
	body, err := render(accessCodeTemplate, map[string]string{
		"Name":       name,
		"AccessCode": accessCode,
	})
	if err != nil {
		return err
	}

	return m.deliver(ctx, to, "Seu Código de Acesso - DeFaiLabz MVP", body)
}

// SendWelcome implements Mailer.
func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name string) error {
	body, err := render(welcomeTemplate, map[string]string{"Name": name})
	if err != nil {
		return err
	}

	return m.deliver(ctx, to, "Bem-vindo ao DeFaiLabz MVP", body)
}

func (m *SMTPMailer) deliver(ctx context.Context, to, subject, body string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	from := m.cfg.From
	fromName := m.cfg.FromName
	if fromName == "" {
		fromName = "DeFaiLabz"
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %q <%s>\r\n", fromName, from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := m.send(addr, auth, from, []string{to}, msg.Bytes()); err != nil {
		if m.log != nil {
			m.log.Error("smtp send failed",
				slog.String("to", to),
				slog.String("subject", subject),
				slog.Any("error", err),
			)
		}
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}

	if m.log != nil {
		m.log.Info("email sent", slog.String("to", to), slog.String("subject", subject))
	}

	return nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}
