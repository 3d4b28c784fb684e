// Package mail renders templated messages and hands them to a transport
// (SMTP in production, the logger in development).
package mail

import (
	"context"
	"fmt"

	"artist-site/config"
	"artist-site/internal/telemetry"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"go.uber.org/zap"
)

// Mailer sends template to recipient. Failures are returned, never retried.
type Mailer interface {
	Send(ctx context.Context, template, recipient string, data any) error
}

// ReplyTo can be implemented by template data to set a Reply-To header.
type ReplyTo interface {
	ReplyAddress() string
}

type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

type Transport interface {
	Deliver(ctx context.Context, msg Message) error
}

type TemplateMailer struct {
	renderer  *Renderer
	transport Transport
	log       *zap.Logger
}

func NewTemplateMailer(renderer *Renderer, transport Transport, log *zap.Logger) *TemplateMailer {
	return &TemplateMailer{renderer: renderer, transport: transport, log: log}
}

// New builds the mailer selected by cfg.Mail.Driver.
func New(cfg *config.Config, renderer *Renderer, log *zap.Logger) (*TemplateMailer, error) {
	var t Transport
	switch cfg.Mail.Driver {
	case "smtp":
		t = NewSMTPTransport(cfg.Mail)
	case "log":
		t = NewLogTransport(log)
	default:
		return nil, fmt.Errorf("unsupported mail driver: %s", cfg.Mail.Driver)
	}
	return NewTemplateMailer(renderer, t, log), nil
}

func (m *TemplateMailer) Send(ctx context.Context, template, recipient string, data any) error {
	subject, body, err := m.renderer.Render(template, data)
	if err != nil {
		return err
	}

	text, err := htmltomarkdown.ConvertString(body)
	if err != nil {
		m.log.Warn("plain text conversion failed", zap.String("template", template), zap.Error(err))
		text = ""
	}

	msg := Message{To: recipient, Subject: subject, HTML: body, Text: text}
	if rt, ok := data.(ReplyTo); ok {
		msg.ReplyTo = rt.ReplyAddress()
	}

	if err := m.transport.Deliver(ctx, msg); err != nil {
		telemetry.MailDeliveriesTotal.WithLabelValues(template, "failed").Inc()
		return fmt.Errorf("deliver %s mail: %w", template, err)
	}
	telemetry.MailDeliveriesTotal.WithLabelValues(template, "sent").Inc()
	return nil
}
