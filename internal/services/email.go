package services

import (
	"fmt"
	"net/smtp"

	"github.com/verso-app/verso-api/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

func (s *EmailService) SendBandInvite(to, bandName, inviterName, joinURL string) error {
	subject := fmt.Sprintf("You've been invited to join %s on Verso", bandName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Band Invitation</h2>
			<p>Hi,</p>
			<p><strong>%s</strong> has invited you to join the band <strong>%s</strong>.</p>
			<p><a href="%s">Click here to join the band</a></p>
		</body>
		</html>
	`, inviterName, bandName, joinURL)

	return s.Send(to, subject, body)
}
