package mailing

import (
	"strconv"

	"gopkg.in/gomail.v2"

	"pantry-planner/internal/config"
)

func SendMail(cfg config.Config, toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", cfg.SMTPEmail)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return err
	}

	dialer := gomail.NewDialer(
		cfg.SMTPHost,
		port,
		cfg.SMTPEmail,
		cfg.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}
