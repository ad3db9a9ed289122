package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	pkglogger "github.com/campusconnect/admin-api/pkg/logger"
)

// EmailService defines the interface for sending emails
type EmailService interface {
	SendBanStatusEmail(ctx context.Context, email, name string, banned bool) error
}

// AWSSESEmailService sends emails using AWS SES
type AWSSESEmailService struct {
	sesClient    *ses.Client
	fromAddress  string
	supportEmail string
	appURL       string
	logger       *slog.Logger
}

// NewAWSSESEmailService creates a new AWS SES email service
func NewAWSSESEmailService(region, fromAddress, supportEmail, appURL string, logger *slog.Logger) (*AWSSESEmailService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESEmailService{
		sesClient:    ses.NewFromConfig(cfg),
		fromAddress:  fromAddress,
		supportEmail: supportEmail,
		appURL:       appURL,
		logger:       logger,
	}, nil
}

// SendBanStatusEmail tells a student their account was suspended or
// reactivated, depending on the banned flag.
func (s *AWSSESEmailService) SendBanStatusEmail(ctx context.Context, email, name string, banned bool) error {
	if name == "" {
		name = "there"
	}

	var subject, headline, lead, detail string
	if banned {
		subject = "Your account has been suspended"
		headline = "Account Suspended"
		lead = fmt.Sprintf("Hi %s, your account has been suspended by an administrator.", name)
		detail = "While suspended, you will not be able to sign in or take part in the community. If you believe this was a mistake, please contact our support team."
	} else {
		subject = "Your account has been reactivated"
		headline = "Account Reactivated"
		lead = fmt.Sprintf("Hi %s, good news! Your account has been reactivated.", name)
		detail = "You can sign in again and pick up right where you left off. Thanks for being part of the community."
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #f8f9fa; padding: 20px; text-align: center; border-radius: 4px; }
        .content { padding: 20px 0; }
        .button { display: inline-block; background-color: #0066cc; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; margin: 20px 0; }
        .footer { color: #666; font-size: 12px; margin-top: 20px; padding-top: 20px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>%s</h1>
        </div>
        <div class="content">
            <p>%s</p>
            <p>%s</p>
            <p><a href="%s" class="button">Go to Campus Connect</a></p>
        </div>
        <div class="footer">
            <p>This is an automated message. Please do not reply to this email.</p>
            <p>Questions? Contact us at %s.</p>
        </div>
    </div>
</body>
</html>
`, headline, lead, detail, s.appURL, s.supportEmail)

	textBody := fmt.Sprintf(`%s

%s

%s

%s

This is an automated message. Please do not reply to this email.
Questions? Contact us at %s.
`, headline, lead, detail, s.appURL, s.supportEmail)

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{email},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send ban status email via SES",
			slog.String("email", pkglogger.SanitizedEmail(email)),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("ban status email sent",
		slog.String("email", pkglogger.SanitizedEmail(email)),
		slog.Bool("banned", banned),
		slog.String("message_id", *result.MessageId))

	return nil
}
