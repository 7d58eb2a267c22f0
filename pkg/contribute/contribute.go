package contribute

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/electa-dev/electa/internal/errors"
)

// DefaultRecipient receives contributions when none is configured.
const DefaultRecipient = "electa.kyv@gmail.com"

// Validation messages shown to the visitor.
const (
	MissingTypeMessage    = "Please select a contribution type first."
	MissingMessageMessage = "Please enter a message."
	SentMessage           = "Your email client should open. Please send the email to complete your contribution."
)

// Types are the contribution kinds offered by the form.
var Types = []string{
	"New candidate information",
	"Correction to candidate information",
	"Website feedback",
	"Other",
}

// Submission is one filled-in contribution form.
type Submission struct {
	Type    string
	Message string
}

// Normalize trims surrounding whitespace from both fields.
func (s Submission) Normalize() Submission {
	return Submission{
		Type:    strings.TrimSpace(s.Type),
		Message: strings.TrimSpace(s.Message),
	}
}

// ValidationError reports the first invalid field of a submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap exposes the coded error for logging.
func (e *ValidationError) Unwrap() error {
	return errors.New("E301").WithDetail(e.Field)
}

// Validate checks the type first, then the message, after trimming.
func Validate(s Submission) error {
	s = s.Normalize()
	if s.Type == "" {
		return &ValidationError{Field: "type", Message: MissingTypeMessage}
	}
	if s.Message == "" {
		return &ValidationError{Field: "message", Message: MissingMessageMessage}
	}
	return nil
}

// Mailer builds mailto links for submissions.
type Mailer struct {
	recipient string
	loc       *time.Location
	now       func() time.Time
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithClock overrides the submission time source.
func WithClock(now func() time.Time) Option {
	return func(m *Mailer) {
		m.now = now
	}
}

// WithLocation sets the zone the submission time is written in.
func WithLocation(loc *time.Location) Option {
	return func(m *Mailer) {
		m.loc = loc
	}
}

// NewMailer creates a mailer for recipient. The submission time is
// written in Australia/Hobart unless WithLocation says otherwise; if the
// zone database is unavailable UTC is used.
func NewMailer(recipient string, opts ...Option) *Mailer {
	if recipient == "" {
		recipient = DefaultRecipient
	}
	loc, err := time.LoadLocation("Australia/Hobart")
	if err != nil {
		loc = time.UTC
	}
	m := &Mailer{recipient: recipient, loc: loc, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Recipient returns the configured recipient address.
func (m *Mailer) Recipient() string {
	return m.recipient
}

// MailtoURL validates s and builds the mailto link that opens the
// visitor's email client with the contribution filled in.
func (m *Mailer) MailtoURL(s Submission) (string, error) {
	if err := Validate(s); err != nil {
		return "", err
	}
	s = s.Normalize()

	subject := "Electa Contribution: " + s.Type
	body := fmt.Sprintf("Contribution Type: %s\n\nMessage:\n%s\n\nSubmitted: %s",
		s.Type, s.Message, m.Timestamp())

	return "mailto:" + m.recipient + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body), nil
}

// Timestamp formats the current time the way the email body shows it,
// e.g. "Wednesday, 1 October 2025 at 9:30:00 am AEST".
func (m *Mailer) Timestamp() string {
	t := m.now().In(m.loc)
	return t.Format("Monday, 2 January 2006") + " at " + strings.ToLower(t.Format("3:04:05 PM")) + " " + t.Format("MST")
}

// encodeComponent percent-encodes like encodeURIComponent: spaces become
// %20 rather than +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
