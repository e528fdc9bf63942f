package email

import (
	"fmt"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

// EmailService sends transactional mail through Resend. Sends are
// best-effort; callers fire them asynchronously.
type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, fromAddress, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     fromAddress,
		fromName: fromName,
		logger:   logger,
	}
}

func (s *EmailService) SendWelcomeEmail(email, name string) error {
	html := fmt.Sprintf(
		"<h2>Welcome, %s!</h2><p>Your account is ready. You start with a few free credits — top up any time to keep generating.</p>",
		name,
	)

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Welcome to PixelForge",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send welcome email",
			zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("welcome email sent",
		zap.String("email", email), zap.String("id", resp.Id))
	return nil
}

func (s *EmailService) SendPaymentReceipt(email, name, plan string, credits, amount int, currency string) error {
	html := fmt.Sprintf(
		"<h2>Thanks, %s!</h2><p>Your purchase of the %s (%d credits, %d %s) is confirmed and the credits have been added to your balance.</p>",
		name, plan, credits, amount, currency,
	)

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{email},
		Subject: "Your PixelForge purchase receipt",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Warn("failed to send payment receipt",
			zap.String("email", email), zap.Error(err))
		return err
	}

	s.logger.Info("payment receipt sent",
		zap.String("email", email), zap.String("id", resp.Id))
	return nil
}
