package services

import (
	"crypto/tls"
	"fmt"

	"github.com/platefeed/feedback-backend/internal/config"
	"github.com/platefeed/feedback-backend/pkg/logger"
	"gopkg.in/gomail.v2"
)

type EmailService struct {
	config *config.Config
}

func NewEmailService(config *config.Config) *EmailService {
	return &EmailService{config: config}
}

// Enabled reports whether SMTP is configured. Notices are optional; a
// deployment without SMTP simply skips them.
func (s *EmailService) Enabled() bool {
	return s.config.SMTPHost != "" && s.config.SMTPUsername != ""
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	return d.DialAndSend(m)
}

// sendAsync fires the notice off the request path; delivery failures are
// logged, never surfaced.
func (s *EmailService) sendAsync(to, subject, body string) {
	if !s.Enabled() {
		return
	}
	go func() {
		if err := s.SendEmail(to, subject, body); err != nil {
			logger.Errorf("failed to send email to %s: %v", to, err)
		}
	}()
}

func (s *EmailService) SendAccountBlockedNotice(email, reason string) {
	subject := "Your account has been blocked"
	body := fmt.Sprintf(`
		<h2>Account Blocked</h2>
		<p>Your account has been blocked by a moderator.</p>
		<p><strong>Reason:</strong> %s</p>
		<p>If you believe this is a mistake, please open a support ticket.</p>
	`, reason)
	s.sendAsync(email, subject, body)
}

func (s *EmailService) SendAccountUnblockedNotice(email string) {
	subject := "Your account has been restored"
	body := `
		<h2>Account Restored</h2>
		<p>Your account is active again. Welcome back.</p>
	`
	s.sendAsync(email, subject, body)
}

func (s *EmailService) SendReviewRemovedNotice(email, restaurantName, reason string) {
	subject := "One of your reviews was removed"
	body := fmt.Sprintf(`
		<h2>Review Removed</h2>
		<p>Your review of <strong>%s</strong> was removed by a moderator.</p>
		<p><strong>Reason:</strong> %s</p>
	`, restaurantName, reason)
	s.sendAsync(email, subject, body)
}
