package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"gopkg.in/gomail.v2"
)

var verificationMailTmpl = template.Must(template.New("verify").Parse(`
<p>Hi {{.Username}},</p>
<p>Welcome to Team Builder. Please confirm your email address by clicking the link below. The link expires in 20 minutes.</p>
<p><a href="{{.Link}}">Verify your email</a></p>
<p>If you did not create an account, you can ignore this mail.</p>`))

var passwordResetMailTmpl = template.Must(template.New("reset").Parse(`
<p>Hi {{.Username}},</p>
<p>We received a request to reset the password of your account. The link below expires in 20 minutes.</p>
<p><a href="{{.Link}}">Reset your password</a></p>
<p>If you did not request this, you can ignore this mail.</p>`))

// Mailer sends transactional mail over SMTP. With no SMTP host configured
// it only logs the mail, which keeps local development and tests offline.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func newMailer(cfg *Config) *Mailer {
	m := &Mailer{from: cfg.MailFrom}
	if cfg.SMTPHost != "" {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	return m
}

func (m *Mailer) send(to, subject string, tmpl *template.Template, data interface{}) error {
	if m.dialer == nil {
		log.Printf("mail disabled, skipping %q to %s", subject, to)
		return nil
	}
	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render mail body: %w", err)
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())
	return m.dialer.DialAndSend(msg)
}

func (m *Mailer) sendVerificationMail(to, username, link string) error {
	return m.send(to, "Please verify your email", verificationMailTmpl, map[string]string{
		"Username": username,
		"Link":     link,
	})
}

func (m *Mailer) sendPasswordResetMail(to, username, link string) error {
	return m.send(to, "Password reset request", passwordResetMailTmpl, map[string]string{
		"Username": username,
		"Link":     link,
	})
}

// dispatchMail runs a mail send in its own goroutine. Delivery failure is
// logged and never surfaced to the request that triggered it.
func dispatchMail(what string, send func() error) {
	go func() {
		if err := send(); err != nil {
			log.Printf("mail dispatch failed (%s): %v", what, err)
		}
	}()
}
