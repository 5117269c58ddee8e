package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"

	"ENW_BACK-END/internal/config"
	"ENW_BACK-END/internal/models"
)

// sendFunc matches smtp.SendMail so tests can capture outgoing mail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailNotifier sends plain-text confirmations over SMTP.
type EmailNotifier struct {
	config *config.EmailConfig
	send   sendFunc
}

// NewEmailNotifier creates an SMTP notifier from cfg.
func NewEmailNotifier(cfg *config.EmailConfig) *EmailNotifier {
	return &EmailNotifier{config: cfg, send: smtp.SendMail}
}

// SupportRequestReceived confirms a senior's intake submission.
func (e *EmailNotifier) SupportRequestReceived(ctx context.Context, s *models.Senior, r *models.SupportRequest) error {
	subject := "We received your support request"
	body := fmt.Sprintf(`
Hello %s,

Thank you for reaching out to Elderly Neighbour Watch.

We received your request for %s support (reference %s).
A coordinator will contact you at %s to arrange the next steps.

Best regards,
%s
`, s.FirstName, strings.ToLower(string(r.SupportType)), r.ID, s.Phone, e.signature())

	return e.sendEmail(ctx, s.Email, subject, body)
}

// VolunteerApplicationReceived confirms a volunteer application.
func (e *EmailNotifier) VolunteerApplicationReceived(ctx context.Context, v *models.Volunteer) error {
	subject := "Thank you for volunteering"
	body := fmt.Sprintf(`
Hello %s,

Thank you for applying to volunteer with Elderly Neighbour Watch.

Your application is pending verification. We will be in touch once it
has been reviewed.

Best regards,
%s
`, v.FirstName, e.signature())

	return e.sendEmail(ctx, v.Email, subject, body)
}

// PartnerApplicationReceived confirms a partnership application.
func (e *EmailNotifier) PartnerApplicationReceived(ctx context.Context, p *models.Partner) error {
	subject := "Partnership application received"
	body := fmt.Sprintf(`
Hello %s,

Thank you for applying to partner with Elderly Neighbour Watch on behalf of
%s. Our partnerships team will review your application and reply shortly.

Best regards,
%s
`, p.ContactPerson, p.OrganizationName, e.signature())

	return e.sendEmail(ctx, p.Email, subject, body)
}

func (e *EmailNotifier) signature() string {
	if e.config.FromName != "" {
		return e.config.FromName
	}
	return models.DefaultAuthorName
}

// sendEmail sends an email using SMTP
func (e *EmailNotifier) sendEmail(ctx context.Context, to, subject, body string) error {
	if e.config.SMTPUsername == "" || e.config.SMTPPassword == "" {
		return errors.New("email credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", e.config.SMTPUsername, e.config.SMTPPassword, e.config.SMTPHost)

	fromEmail := e.config.FromEmail
	if fromEmail == "" {
		fromEmail = e.config.SMTPUsername
	}

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		e.signature(), fromEmail, to, subject, body))

	// net/smtp has no context support; run the send and abandon it on timeout.
	addr := net.JoinHostPort(e.config.SMTPHost, e.config.SMTPPort)
	done := make(chan error, 1)
	go func() { done <- e.send(addr, auth, fromEmail, []string{to}, message) }()

	select {
	case err := <-done:
		if err != nil {
			return errors.Wrapf(err, "send email to %s", to)
		}
		return nil
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "send email to %s", to)
	}
}
