package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/resend/resend-go/v2"
	"go.uber.org/fx"
	"gopkg.in/gomail.v2"
)

// EmailSender is the outbound transport contract: one email per call,
// returning the provider's delivery id when it has one.
type EmailSender interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
}

type ResendConfig struct {
	APIKey string
	From   string
}

func NewResendConfig() *ResendConfig {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("FROM_EMAIL")
	if apiKey == "" || fromEmail == "" {
		log.Fatal("Missing RESEND_API_KEY or FROM_EMAIL environment variables")
	}
	return &ResendConfig{APIKey: apiKey, From: fromEmail}
}

// ResendEmailService sends through the Resend HTTP API.
type ResendEmailService struct {
	client *resend.Client
	from   string
}

func NewResendEmailService(config *ResendConfig) *ResendEmailService {
	return &ResendEmailService{client: resend.NewClient(config.APIKey), from: config.From}
}

func (e *ResendEmailService) Send(ctx context.Context, to, subject, html string) (string, error) {
	params := &resend.SendEmailRequest{
		From:    e.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	sent, err := e.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend send to %s: %w", to, err)
	}

	log.Println("Email sent successfully to", to)
	return sent.Id, nil
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSMTPConfig() *SMTPConfig {
	host := os.Getenv("SMTP_HOST")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASSWORD")
	if host == "" || user == "" || pass == "" {
		log.Fatal("Missing SMTP_HOST, SMTP_USER or SMTP_PASSWORD environment variables")
	}
	port := 465
	if p := os.Getenv("SMTP_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			log.Fatalf("Invalid SMTP_PORT %q: %v", p, err)
		}
		port = parsed
	}
	from := os.Getenv("FROM_EMAIL")
	if from == "" {
		from = user
	}
	return &SMTPConfig{Host: host, Port: port, Username: user, Password: pass, From: from}
}

// SMTPEmailService sends through a plain SMTP account. SMTP has no delivery
// id, so Send returns an empty id on success.
type SMTPEmailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPEmailService(config *SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		from:   config.From,
	}
}

func (e *SMTPEmailService) Send(ctx context.Context, to, subject, html string) (string, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if err := e.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("smtp send to %s: %w", to, err)
	}

	log.Println("Email sent successfully to", to)
	return "", nil
}

// NewEmailSender picks the transport from EMAIL_PROVIDER (resend or smtp).
func NewEmailSender(lc fx.Lifecycle) EmailSender {
	provider := os.Getenv("EMAIL_PROVIDER")
	if provider == "" {
		provider = "resend"
	}

	var sender EmailSender
	switch provider {
	case "resend":
		sender = NewResendEmailService(NewResendConfig())
	case "smtp":
		sender = NewSMTPEmailService(NewSMTPConfig())
	default:
		log.Fatalf("Unknown EMAIL_PROVIDER %q (expected resend or smtp)", provider)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("Email service initialized using provider:", provider)
			return nil
		},
	})
	return sender
}
