// Package email sends lead notifications and follow-ups over SMTP.
package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	leadsservice "horsebox_backend/internal/leads/service"
	"horsebox_backend/platform/config"
)

// SMTPSender delivers lead emails via SMTP using go-mail.
type SMTPSender struct {
	host       string
	port       int
	username   string
	password   string
	fromName   string
	fromEmail  string
	salesInbox string
}

// NewSMTPSender creates a new SMTPSender from the email configuration.
func NewSMTPSender(cfg config.EmailConfig) *SMTPSender {
	return &SMTPSender{
		host:       cfg.GetSMTPHost(),
		port:       cfg.GetSMTPPort(),
		username:   cfg.GetSMTPUsername(),
		password:   cfg.GetSMTPPassword(),
		fromName:   cfg.GetEmailFromName(),
		fromEmail:  cfg.GetEmailFromAddress(),
		salesInbox: cfg.GetSalesInboxAddress(),
	}
}

// Compile-time check that SMTPSender implements the leads notifier port.
var _ leadsservice.Notifier = (*SMTPSender)(nil)

// SendLeadNotification emails the sales inbox about a new lead.
func (s *SMTPSender) SendLeadNotification(ctx context.Context, n leadsservice.LeadNotification) error {
	content, err := renderEmailTemplate("lead_notification.html", leadNotificationEmailData{
		baseEmailData: baseEmailData{
			Title:    "New configurator lead",
			Heading:  "New configurator lead",
			CTALabel: "View configuration",
			CTAURL:   n.ShareURL,
		},
		Reference:      n.Reference,
		CustomerName:   n.CustomerName,
		CustomerEmail:  n.CustomerEmail,
		CustomerPhone:  n.CustomerPhone,
		ModelName:      n.ModelName,
		TotalFormatted: formatPounds(n.TotalIncVatPence),
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf(subjectLeadNotificationFmt, n.Reference, n.ModelName)
	return s.send(ctx, s.salesInbox, subject, content)
}

// SendFollowUpEmail emails the customer their saved configuration.
func (s *SMTPSender) SendFollowUpEmail(ctx context.Context, n leadsservice.LeadNotification) error {
	content, err := renderEmailTemplate("follow_up.html", followUpEmailData{
		baseEmailData: baseEmailData{
			Title:    "Your saved configuration",
			Heading:  "Your saved configuration",
			CTALabel: "View your build",
			CTAURL:   n.ShareURL,
		},
		CustomerName: n.CustomerName,
		ModelName:    n.ModelName,
		Reference:    n.Reference,
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf(subjectFollowUpFmt, n.ModelName)
	return s.send(ctx, n.CustomerEmail, subject, content)
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
