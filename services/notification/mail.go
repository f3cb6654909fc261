package notification

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"bookmycourt/config"
	"bookmycourt/models"
)

// Mailer sends booking emails over SMTP.
type Mailer interface {
	SendBookingConfirmed(user *models.User, booking *models.Booking, court *models.Court) error
	SendBookingCancelled(user *models.User, booking *models.Booking, court *models.Court) error
}

// SMTPMailer implements Mailer using gomail.
type SMTPMailer struct{}

// NewSMTPMailer returns an SMTP-backed mailer using the app configuration.
func NewSMTPMailer() Mailer {
	return &SMTPMailer{}
}

func (m *SMTPMailer) dialer() *gomail.Dialer {
	cfg := config.AppConfig
	return gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", config.AppConfig.SMTPFrom)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer().DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

func (m *SMTPMailer) SendBookingConfirmed(user *models.User, booking *models.Booking, court *models.Court) error {
	subject := fmt.Sprintf("Booking confirmed: %s on %s", court.Name, booking.Date)
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your booking is confirmed.</p>
<ul>
<li>Court: %s (%s)</li>
<li>Date: %s</li>
<li>Time: %s &ndash; %s</li>
<li>Total: %.2f</li>
</ul>
<p>See you on the court!</p>`,
		user.Name, court.Name, court.SportType, booking.Date,
		booking.StartTime, booking.EndTime, booking.TotalAmount,
	)
	return m.send(user.Email, subject, body)
}

func (m *SMTPMailer) SendBookingCancelled(user *models.User, booking *models.Booking, court *models.Court) error {
	subject := fmt.Sprintf("Booking cancelled: %s on %s", court.Name, booking.Date)
	body := fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your booking for %s on %s (%s &ndash; %s) has been cancelled.</p>`,
		user.Name, court.Name, booking.Date, booking.StartTime, booking.EndTime,
	)
	return m.send(user.Email, subject, body)
}
