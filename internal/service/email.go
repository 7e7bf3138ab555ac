package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshbaje/drively-backend/internal/config"
	"github.com/joshbaje/drively-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const dateLayout = "Mon, 02 Jan 2006"

type sendGridEmailService struct {
	client *sendgrid.Client
	from   *mail.Email
	log    *slog.Logger
}

func NewEmailService(cfg config.SendGridConfig) EmailService {
	return &sendGridEmailService{
		client: sendgrid.NewSendClient(cfg.APIKey),
		from:   mail.NewEmail(cfg.FromName, cfg.FromEmail),
		log:    logger.WithService("email"),
	}
}

func (s *sendGridEmailService) SendBookingRequested(ctx context.Context, ownerEmail, renterName, vehicleName string, start, end time.Time) error {
	subject := "New booking request for your " + vehicleName
	body := fmt.Sprintf(
		"%s has requested to rent your %s from %s to %s.\n\nReview the request in your dashboard to confirm or decline.",
		renterName, vehicleName, start.Format(dateLayout), end.Format(dateLayout),
	)
	return s.send(ctx, ownerEmail, subject, body)
}

func (s *sendGridEmailService) SendBookingConfirmed(ctx context.Context, renterEmail, vehicleName string, start, end time.Time, totalCents int64) error {
	subject := "Your booking is confirmed"
	body := fmt.Sprintf(
		"Your booking of the %s from %s to %s is confirmed.\n\nTotal charged: %s.",
		vehicleName, start.Format(dateLayout), end.Format(dateLayout), formatCents(totalCents),
	)
	return s.send(ctx, renterEmail, subject, body)
}

func (s *sendGridEmailService) SendBookingDeclined(ctx context.Context, renterEmail, vehicleName string) error {
	subject := "Your booking request was declined"
	body := fmt.Sprintf(
		"The owner declined your request for the %s. You have not been charged.\n\nOther vehicles may be available for your dates.",
		vehicleName,
	)
	return s.send(ctx, renterEmail, subject, body)
}

func (s *sendGridEmailService) SendBookingCancelled(ctx context.Context, ownerEmail, renterName, vehicleName, reason string) error {
	subject := "A booking for your " + vehicleName + " was cancelled"
	body := fmt.Sprintf("%s cancelled their booking of your %s.", renterName, vehicleName)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason given: %s", reason)
	}
	return s.send(ctx, ownerEmail, subject, body)
}

func (s *sendGridEmailService) send(ctx context.Context, to, subject, body string) error {
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), body, "")
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("send email: sendgrid returned status %d", resp.StatusCode)
	}
	s.log.Debug("email sent", "to", to, "subject", subject)
	return nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
