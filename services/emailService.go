package services

import (
	"fmt"
	"html"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
	from   string
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
		from:   os.Getenv("RESEND_FROM_EMAIL"),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance, nil when not configured
func GetEmailService() *EmailService {
	return emailService
}

// SendWelcomeEmail greets a newly registered user.
func (s *EmailService) SendWelcomeEmail(toEmail string, displayName string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #b08bd9;
        }
        .header h1 {
            color: #b08bd9;
            margin: 0;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Welcome to the Prayer Wall</h1>
    </div>

    <div class="content">
        <h2>Welcome, %s!</h2>

        <p>You can now:</p>
        <ul>
            <li>Share prayer requests, openly or anonymously</li>
            <li>Pray for others and let them know you did</li>
            <li>Build a daily prayer streak and earn badges along the way</li>
        </ul>

        <p>Blessings,<br>The Prayer Wall Team</p>
    </div>

    <div class="footer">
        <p>You received this email because you created a Prayer Wall account.</p>
    </div>
</body>
</html>
`, html.EscapeString(displayName))

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Welcome to the Prayer Wall!",
		Html:    htmlBody,
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Printf("Successfully sent welcome email to %s. Email ID: %s", toEmail, sent.Id)
	return nil
}
