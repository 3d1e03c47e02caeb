package mail

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"github.com/ticketfox/ticketfox/internal/pkg/env"
)

// SendMail sends an HTML email via SMTP. Extra headers are emitted verbatim
// after the standard ones; attachments are read from disk and inlined as a
// multipart body when present.
func SendMail(to string, subject string, body string, headers []string, attachments []string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	for _, h := range headers {
		msg.WriteString(strings.TrimRight(h, "\r\n") + "\r\n")
	}

	if len(attachments) == 0 {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		msg.WriteString(body)
	} else {
		boundary := "ticketfox-mail-boundary"
		msg.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary))
		msg.WriteString("--" + boundary + "\r\n")
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
		msg.WriteString(body + "\r\n")
		for _, path := range attachments {
			data, err := os.ReadFile(path)
			if err != nil {
				log.Printf("Skipping unreadable attachment %s: %v", path, err)
				continue
			}
			msg.WriteString("--" + boundary + "\r\n")
			msg.WriteString(fmt.Sprintf("Content-Type: application/octet-stream; name=%q\r\n", filepath.Base(path)))
			msg.WriteString("Content-Transfer-Encoding: base64\r\n")
			msg.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n\r\n", filepath.Base(path)))
			msg.WriteString(base64.StdEncoding.EncodeToString(data) + "\r\n")
		}
		msg.WriteString("--" + boundary + "--\r\n")
	}

	err := smtp.SendMail(addr, auth, sender, []string{to}, []byte(msg.String()))
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}
