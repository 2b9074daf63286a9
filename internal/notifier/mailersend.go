package notifier

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mailersend/mailersend-go"
)

const sendTimeout = 10 * time.Second

type mailSender interface {
	Send(ctx context.Context, message *mailersend.Message) (*mailersend.Response, error)
}

// MailerSend delivers messages as email through the MailerSend API.
type MailerSend struct {
	sender    mailSender
	fromEmail string
	fromName  string
	logger    *slog.Logger
}

func NewMailerSend(apiKey, fromEmail, fromName string, logger *slog.Logger) *MailerSend {
	ms := mailersend.NewMailersend(apiKey)
	return newMailerSend(ms.Email, fromEmail, fromName, logger)
}

func newMailerSend(sender mailSender, fromEmail, fromName string, logger *slog.Logger) *MailerSend {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &MailerSend{
		sender:    sender,
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
	}
}

func (m *MailerSend) Notify(ctx context.Context, contact string, kind Kind, payload Payload) bool {
	msg, err := render(kind, payload)
	if err != nil {
		m.logger.Error("failed to render message",
			"component", "notifier",
			"kind", kind,
			"error", err,
		)
		return false
	}

	message := new(mailersend.Message)
	message.SetFrom(mailersend.From{Name: m.fromName, Email: m.fromEmail})
	message.SetRecipients([]mailersend.Recipient{{Name: payload.ParticipantName, Email: contact}})
	message.SetSubject(msg.Subject)
	message.SetHTML(msg.HTML)
	message.SetText(msg.Text)

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if _, err := m.sender.Send(ctx, message); err != nil {
		m.logger.Error("failed to send email",
			"component", "notifier",
			"kind", kind,
			"contact", contact,
			"error", err,
		)
		return false
	}
	m.logger.Info("email sent",
		"component", "notifier",
		"kind", kind,
		"contact", contact,
	)
	return true
}
