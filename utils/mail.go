package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// SendMail delivers one HTML mail through the SMTP relay configured via
// SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD and SMTP_FROM. Returns
// (false, nil) when mailing is not configured so callers can report
// "not sent" without treating it as a server fault.
func SendMail(to string, subject string, html string) (bool, error) {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Println("SMTP_HOST not set, skipping mail to", to)
		return false, nil
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		from, to, subject, html))

	auth := smtp.PlainAuth("", user, password, host)
	if err := smtp.SendMail(host+":"+port, auth, from, []string{to}, msg); err != nil {
		return false, err
	}
	return true, nil
}
