// Package email delivers the HTML newsletter over SMTP.
package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"ainews/internal/logger"
	"ainews/internal/metrics"
)

type Sender struct {
	host string
	port int
	user string
	pass string
}

func NewSender(host string, port int, user, pass string) *Sender {
	return &Sender{host: host, port: port, user: user, pass: pass}
}

// SendNewsletter emails the rendered HTML to the recipients. Recipients
// is a comma-separated list.
func (s *Sender) SendNewsletter(recipients, subject, htmlBody string) error {
	to := splitRecipients(recipients)
	if len(to) == 0 {
		return fmt.Errorf("no recipients")
	}

	msg := buildMessage(s.user, to, subject, htmlBody)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.user, s.pass, s.host)

	maxRetries := 3
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := smtp.SendMail(addr, auth, s.user, to, msg); err != nil {
			lastErr = err
			logger.Warn("email send failed", "attempt", attempt, "error", err)
			if attempt < maxRetries {
				time.Sleep(time.Duration(1<<attempt) * time.Second)
			}
			continue
		}
		metrics.Global.IncrementEmailsSent()
		logger.Info("newsletter sent", "recipients", len(to))
		return nil
	}

	return fmt.Errorf("can't send email after %d tries: %w", maxRetries, lastErr)
}

func splitRecipients(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

func buildMessage(from string, to []string, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
