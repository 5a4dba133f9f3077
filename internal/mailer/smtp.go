package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	gomail "gopkg.in/mail.v2"
)

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	fromEmail string
	dialer    sender
	backoff   time.Duration
}

func NewSMTPMailer(host string, port int, username, password, fromEmail string) (*SMTPMailer, error) {
	if host == "" {
		return nil, errors.New("smtp host is required")
	}
	if fromEmail == "" {
		return nil, errors.New("from email is required")
	}

	d := gomail.NewDialer(host, port, username, password)
	d.Timeout = 10 * time.Second

	return &SMTPMailer{fromEmail: fromEmail, dialer: d, backoff: time.Second}, nil
}

// Render executes the "subject" and "body" blocks of an embedded template.
func Render(templateFile string, data any) (subject, body string, err error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return "", "", err
	}

	var s bytes.Buffer
	if err := tmpl.ExecuteTemplate(&s, "subject", data); err != nil {
		return "", "", err
	}

	var b bytes.Buffer
	if err := tmpl.ExecuteTemplate(&b, "body", data); err != nil {
		return "", "", err
	}
	return s.String(), b.String(), nil
}

// Send renders templateFile and delivers it, retrying with a linear backoff.
// The returned int is the number of attempts made.
func (m *SMTPMailer) Send(templateFile, username, email string, data any) (int, error) {
	subject, body, err := Render(templateFile, data)
	if err != nil {
		return 0, err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.fromEmail, FromName))
	msg.SetHeader("To", msg.FormatAddress(email, username))
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if err := m.dialer.DialAndSend(msg); err != nil {
			lastErr = err
			time.Sleep(m.backoff * time.Duration(i+1))
			continue
		}
		return i + 1, nil
	}

	return maxRetries, fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
