package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{apiKey: apiKey, fromEmail: fromEmail, fromName: fromName}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

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

func (s *emailService) SendBookingRequested(ctx context.Context, email, name, bookingCode string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s has been received and is awaiting approval.", name, bookingCode)
	return s.send(email, name, fmt.Sprintf("Booking %s received", bookingCode), body)
}

func (s *emailService) SendBookingApproved(ctx context.Context, email, name, bookingCode string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s has been approved and is now confirmed.", name, bookingCode)
	return s.send(email, name, fmt.Sprintf("Booking %s confirmed", bookingCode), body)
}

func (s *emailService) SendBookingRejected(ctx context.Context, email, name, bookingCode, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s was rejected.", name, bookingCode)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(email, name, fmt.Sprintf("Booking %s rejected", bookingCode), body)
}

func (s *emailService) SendBookingCancelled(ctx context.Context, email, name, bookingCode, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s has been cancelled.", name, bookingCode)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	return s.send(email, name, fmt.Sprintf("Booking %s cancelled", bookingCode), body)
}

func (s *emailService) SendHandoverReceipt(ctx context.Context, email, name, bookingCode string) error {
	body := fmt.Sprintf("Hello %s,\n\nThe vehicle for booking %s has been handed over. Enjoy the ride.", name, bookingCode)
	return s.send(email, name, fmt.Sprintf("Booking %s - vehicle handed over", bookingCode), body)
}

func (s *emailService) SendReturnReceipt(ctx context.Context, email, name, bookingCode string, totalCents int64) error {
	body := fmt.Sprintf("Hello %s,\n\nBooking %s is complete. Final total: %.2f.", name, bookingCode, float64(totalCents)/100)
	return s.send(email, name, fmt.Sprintf("Booking %s completed", bookingCode), body)
}

func (s *emailService) SendPickupReminder(ctx context.Context, email, name, bookingCode, startDate string) error {
	body := fmt.Sprintf("Hello %s,\n\nA reminder that booking %s starts on %s.", name, bookingCode, startDate)
	return s.send(email, name, fmt.Sprintf("Booking %s starts soon", bookingCode), body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name, bookingCode, endDate string) error {
	body := fmt.Sprintf("Hello %s,\n\nBooking %s was due back on %s. Please return the vehicle.", name, bookingCode, endDate)
	return s.send(email, name, fmt.Sprintf("Booking %s is overdue", bookingCode), body)
}
