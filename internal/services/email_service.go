package services

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/ataousCode/agro-backend/internal/models"
)

type EmailService interface {
	SendOTPEmail(email, name, otp string) error
	SendPasswordResetEmail(email, name, otp string) error
	SendOrderConfirmationEmail(email, name string, order *models.Order) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}

func (s *emailService) SendOTPEmail(email, name, otp string) error {
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Thank you for registering with AgriPlant. Please use the following OTP to verify your account:</p>
		<div style="font-size: 24px; font-weight: bold; letter-spacing: 10px;">%s</div>
		<p>This OTP is valid for 10 minutes.</p>
		<p>If you did not request this verification, please ignore this email.</p>
	`, name, otp)

	if err := s.send(email, "Verify Your Account", body); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}

func (s *emailService) SendPasswordResetEmail(email, name, otp string) error {
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>We received a request to reset your password. Please use the following OTP to reset your password:</p>
		<div style="font-size: 24px; font-weight: bold; letter-spacing: 10px;">%s</div>
		<p>This OTP is valid for 10 minutes.</p>
		<p>If you did not request a password reset, please ignore this email.</p>
	`, name, otp)

	if err := s.send(email, "Reset Your Password", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

func (s *emailService) SendOrderConfirmationEmail(email, name string, order *models.Order) error {
	estimated := "to be confirmed"
	if order.EstimatedDelivery != nil {
		estimated = order.EstimatedDelivery.Format("02 Jan 2006")
	}
	body := fmt.Sprintf(`
		<h2>Hello %s,</h2>
		<p>Thank you for your order! Your order #%d has been confirmed and is being processed.</p>
		<p><strong>Order Date:</strong> %s</p>
		<p><strong>Total Amount:</strong> %.2f</p>
		<p><strong>Estimated Delivery:</strong> %s</p>
		<p>You can track your order status through the app.</p>
	`, name, order.ID, order.CreatedAt.Format(time.RFC1123), order.TotalPrice, estimated)

	if err := s.send(email, "Order Confirmation", body); err != nil {
		return fmt.Errorf("failed to send order confirmation email: %w", err)
	}
	return nil
}
