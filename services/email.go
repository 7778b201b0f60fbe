package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"

	"social-media-agent/internal/config"
)

const plainTextPlaceholder = "View this email in HTML."

// Sender delivers one HTML email to one recipient.
type Sender interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

// DeliveryError wraps any relay, auth or recipient failure.
type DeliveryError struct {
	Op  string
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("email delivery failed (%s): %v", e.Op, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// SMTPEmailSender opens a fresh STARTTLS session per message.
type SMTPEmailSender struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	TLSConfig *tls.Config
	Dialer    *net.Dialer
}

func NewSMTPEmailSender(cfg *config.Config) *SMTPEmailSender {
	return &SMTPEmailSender{
		Host:     cfg.SMTPServer,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SenderEmail,
	}
}

func (s *SMTPEmailSender) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	msg, err := buildMessage(s.From, recipient, subject, htmlBody)
	if err != nil {
		return &DeliveryError{Op: "compose", Err: err}
	}

	dialer := s.Dialer
	if dialer == nil {
		dialer = &net.Dialer{Timeout: 30 * time.Second}
	}
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return &DeliveryError{Op: "dial", Err: err}
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.Host)
	if err != nil {
		conn.Close()
		return &DeliveryError{Op: "greeting", Err: err}
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); !ok {
		return &DeliveryError{Op: "starttls", Err: errors.New("relay does not offer STARTTLS")}
	}
	tlsConfig := s.TLSConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{ServerName: s.Host, MinVersion: tls.VersionTLS12}
	}
	if err := c.StartTLS(tlsConfig); err != nil {
		return &DeliveryError{Op: "starttls", Err: err}
	}

	if s.Username != "" {
		if err := c.Auth(smtp.PlainAuth("", s.Username, s.Password, s.Host)); err != nil {
			return &DeliveryError{Op: "auth", Err: err}
		}
	}

	if err := c.Mail(s.From); err != nil {
		return &DeliveryError{Op: "mail", Err: err}
	}
	if err := c.Rcpt(recipient); err != nil {
		return &DeliveryError{Op: "rcpt", Err: err}
	}

	w, err := c.Data()
	if err != nil {
		return &DeliveryError{Op: "data", Err: err}
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return &DeliveryError{Op: "data", Err: err}
	}
	if err := w.Close(); err != nil {
		return &DeliveryError{Op: "data", Err: err}
	}

	if err := c.Quit(); err != nil {
		return &DeliveryError{Op: "quit", Err: err}
	}
	return nil
}

// buildMessage composes a multipart/alternative message with a plain text
// placeholder followed by the HTML body.
func buildMessage(from, to, subject, htmlBody string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=utf-8", plainTextPlaceholder},
		{"text/html; charset=utf-8", htmlBody},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(part.content)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	return msg.Bytes(), nil
}
