// internal/mailer/mailer.go
//
// Outbound transactional email queue.
//
// Context
//   The intake handlers enqueue two kinds of messages after a successful
//   insert: an internal notification for a new lead and a welcome email for
//   a newsletter signup.  Until a real queue/worker pool is wired in, the
//   stub assigns each job a UUID, logs the payload, and returns nil so
//   callers proceed without blocking.
//
//   Replace the body of EnqueueEmail with code that publishes to your queue
//   of choice (e.g., Redis, NATS, SQS) when ready.  Callers only depend on
//   the Enqueue* signatures.
//
//------------------------------------------------------------------------------

package mailer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/contact"
)

// Email represents a basic outbound email job.
type Email struct {
	ID      string // job UUID, assigned at enqueue time
	To      []string
	Subject string
	Text    string
	HTML    string // optional – not used by stub
}

// Mailer enqueues outbound messages.  Safe for concurrent use.
type Mailer struct {
	log *zap.SugaredLogger

	// NotifyAddr receives the internal "new lead" notifications.
	NotifyAddr string
}

// New returns a Mailer logging through log.
func New(log *zap.SugaredLogger, notifyAddr string) *Mailer {
	return &Mailer{log: log, NotifyAddr: notifyAddr}
}

// EnqueueEmail logs the email payload.  Swap with a real queue publisher
// later.
func (m *Mailer) EnqueueEmail(ctx context.Context, msg Email) error {
	msg.ID = uuid.NewString()
	m.log.Infow("queue email",
		"job", msg.ID, "to", msg.To, "subject", msg.Subject, "bytes", len(msg.Text))
	return nil
}

// NotifyLead enqueues the internal notification for a captured lead.
func (m *Mailer) NotifyLead(ctx context.Context, rec *contact.Record) error {
	body := fmt.Sprintf(
		"Name:    %s %s\nEmail:   %s\nCompany: %s\nSource:  %s\n",
		rec.FirstName, rec.LastName, rec.Email, rec.Company, rec.Source)
	for _, p := range []contact.Platform{
		contact.PlatformTwitter, contact.PlatformLinkedIn, contact.PlatformGitHub,
	} {
		if handle, ok := rec.Socials()[p]; ok {
			body += fmt.Sprintf("%-8s %s\n", string(p)+":", handle)
		}
	}
	body += fmt.Sprintf("\n%s\n\nRef: %s", rec.Message, rec.Token)

	return m.EnqueueEmail(ctx, Email{
		To:      []string{m.NotifyAddr},
		Subject: fmt.Sprintf("New lead: %s %s", rec.FirstName, rec.LastName),
		Text:    body,
	})
}

// WelcomeSignup enqueues the welcome email for a newsletter signup.
func (m *Mailer) WelcomeSignup(ctx context.Context, s *contact.Signup) error {
	name := s.FirstName
	if name == "" {
		name = "there"
	}
	return m.EnqueueEmail(ctx, Email{
		To:      []string{s.Email},
		Subject: "Welcome to the newsletter",
		Text: fmt.Sprintf(
			"Hi %s,\n\nThanks for subscribing.  You are signed up for: %s.\n\n"+
				"You can unsubscribe at any time by replying to this email.",
			name, joinTopics(s.Topics)),
	})
}

func joinTopics(topics []string) string {
	out := ""
	for i, t := range topics {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}
