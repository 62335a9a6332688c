package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"campervan-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendReservationConfirmation(ctx context.Context, email, name string, res *domain.Reservation) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your camper van reservation (%s) from %s to %s.\n\nSubtotal: %d\nTax: %d\nTotal: %d\n\nWe will confirm it shortly.\n\nThe Camper Van Team",
		name, res.Number, res.StartDate, res.EndDate, res.SubtotalCents, res.TaxCents, res.TotalCents,
	)
	return s.send(email, name, "Reservation received", body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name string, res *domain.Reservation) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nA reminder that your camper van rental (%s) ends on %s. Please return the vehicle by then.\n\nThe Camper Van Team",
		name, res.Number, res.EndDate,
	)
	return s.send(email, name, "Your rental ends soon", body)
}

func (s *emailService) SendCancellationNotice(ctx context.Context, email, name string, res *domain.Reservation, reason string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation (%s) from %s to %s has been cancelled.",
		name, res.Number, res.StartDate, res.EndDate,
	)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nThe Camper Van Team"
	return s.send(email, name, "Reservation cancelled", body)
}
