package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"artist-site/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingTransport struct {
	sent []Message
	err  error
}

func (r *recordingTransport) Deliver(ctx context.Context, msg Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func newTestMailer(t *testing.T, tr Transport) *TemplateMailer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return NewTemplateMailer(r, tr, zap.NewNop())
}

func TestTemplateMailer_NewsletterWelcome(t *testing.T) {
	tr := &recordingTransport{}
	m := newTestMailer(t, tr)

	err := m.Send(context.Background(), TemplateNewsletterWelcome, "vink@example.com", NewsletterWelcomeData{
		SiteName:       "Kritters & Co",
		SiteURL:        "https://atelier.example",
		Email:          "vink@example.com",
		UnsubscribeURL: "https://atelier.example/newsletter/unsubscribe/abc123",
	})
	require.NoError(t, err)
	require.Len(t, tr.sent, 1)

	msg := tr.sent[0]
	assert.Equal(t, "vink@example.com", msg.To)
	assert.Equal(t, "Welkom bij de Kritters & Co nieuwsbrief!", msg.Subject)
	assert.Contains(t, msg.HTML, `href="https://atelier.example/newsletter/unsubscribe/abc123"`)
	assert.Contains(t, msg.Text, "https://atelier.example/newsletter/unsubscribe/abc123")
	assert.NotContains(t, msg.Text, "<li>")
	assert.Empty(t, msg.ReplyTo)
}

func TestTemplateMailer_ContactSetsReplyTo(t *testing.T) {
	tr := &recordingTransport{}
	m := newTestMailer(t, tr)

	err := m.Send(context.Background(), TemplateContact, "owner@example.com", ContactData{
		Name: "Jan", Email: "jan@example.com", Subject: "Opdracht", Message: "<b>Hallo</b>",
	})
	require.NoError(t, err)
	require.Len(t, tr.sent, 1)

	assert.Equal(t, "Nieuw contactformulier bericht - Opdracht", tr.sent[0].Subject)
	assert.Equal(t, "jan@example.com", tr.sent[0].ReplyTo)
	assert.Contains(t, tr.sent[0].HTML, "&lt;b&gt;Hallo&lt;/b&gt;")
}

func TestTemplateMailer_Errors(t *testing.T) {
	m := newTestMailer(t, &recordingTransport{err: errors.New("connection refused")})

	err := m.Send(context.Background(), TemplateContact, "owner@example.com", ContactData{Subject: "x"})
	assert.ErrorContains(t, err, "connection refused")

	err = m.Send(context.Background(), "nope", "owner@example.com", nil)
	assert.ErrorContains(t, err, "unknown mail template")
}

func TestSMTPTransport_BuildsMultipartMessage(t *testing.T) {
	tr := NewSMTPTransport(config.MailConfig{
		Host: "smtp.example", Port: 587, Username: "user", Password: "pw",
		From: "atelier@example.com", FromName: "Atelier",
	})

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	tr.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := tr.Deliver(context.Background(), Message{
		To: "vink@example.com", Subject: "Welkom bij de nieuwsbrief!", HTML: "<p>Hoi</p>", Text: "Hoi",
	})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example:587", gotAddr)
	assert.Equal(t, "atelier@example.com", gotFrom)
	assert.Equal(t, []string{"vink@example.com"}, gotTo)

	raw := string(gotMsg)
	assert.Contains(t, raw, "Content-Type: multipart/alternative; boundary=")
	assert.Contains(t, raw, "text/plain; charset=UTF-8")
	assert.Contains(t, raw, "text/html; charset=UTF-8")
	assert.True(t, strings.HasPrefix(raw, `From: "Atelier" <atelier@example.com>`))
}

func TestSMTPTransport_CancelledContext(t *testing.T) {
	tr := NewSMTPTransport(config.MailConfig{Host: "smtp.example", Port: 25, From: "a@example.com"})
	tr.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	assert.Error(t, tr.Deliver(ctx, Message{To: "b@example.com"}))
}

func TestRenderer_UnsubscribePage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	_, body, err := r.Render(TemplateUnsubscribePage, UnsubscribePageData{SiteName: "Atelier", OK: false})
	require.NoError(t, err)
	assert.Contains(t, body, "Ongeldige uitschrijflink")

	_, body, err = r.Render(TemplateUnsubscribePage, UnsubscribePageData{SiteName: "Atelier", Email: "a@b.nl", OK: true})
	require.NoError(t, err)
	assert.Contains(t, body, "a@b.nl")
}
