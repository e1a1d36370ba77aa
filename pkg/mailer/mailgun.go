package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun sends plain text notices from a fixed sender.
type Mailgun struct {
	client mg.Mailgun
	sender string
	tags   []string
}

// NewMailgun builds a sender for domain. Tags are attached to every message
// so notices can be filtered in the Mailgun dashboard.
func NewMailgun(domain, apiKey, sender string, tags ...string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), sender: sender, tags: tags}
}

// Send delivers text to a single recipient.
func (m *Mailgun) Send(ctx context.Context, to, subject, text string) error {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	for _, t := range m.tags {
		if err := msg.AddTag(t); err != nil {
			return err
		}
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
