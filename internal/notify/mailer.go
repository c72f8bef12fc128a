// Package notify delivers the composed digest over SMTP.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/textproto"

	"gopkg.in/gomail.v2"
)

// Distinct mail failure classes. Each gets its own log line in the run and
// none is retried; callers can map them to exit codes with errors.Is.
var (
	ErrConnect = errors.New("smtp connect failed")
	ErrAuth    = errors.New("smtp authentication failed")
	ErrSMTP    = errors.New("smtp protocol error")
)

// Sender abstracts delivery so the pipeline can run against a fake in tests.
type Sender interface {
	Send(ctx context.Context, htmlBody string) error
}

// Mailer submits one text/html message per call over a STARTTLS session to
// the configured submission endpoint.
type Mailer struct {
	Host     string
	Port     int
	From     string
	To       string
	Password string
	Subject  string
}

func (m *Mailer) Send(_ context.Context, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.Host, m.Port, m.From, m.Password)

	// Dial covers connect + STARTTLS + AUTH, so classify before wrapping.
	sc, err := d.Dial()
	if err != nil {
		return classify(err)
	}
	defer sc.Close()

	if err := gomail.Send(sc, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrSMTP, err)
	}

	log.Printf("[mail] digest sent to=%s", m.To)
	return nil
}

// classify buckets a dial error into connect vs auth vs protocol.
func classify(err error) error {
	var tperr *textproto.Error
	if errors.As(err, &tperr) {
		switch tperr.Code {
		case 530, 534, 535:
			return fmt.Errorf("%w: %v", ErrAuth, err)
		default:
			return fmt.Errorf("%w: %v", ErrSMTP, err)
		}
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		return fmt.Errorf("%w: %v", ErrConnect, err)
	}

	// TLS handshake failures and friends surface as plain errors from the
	// dialer; those are connection problems too.
	return fmt.Errorf("%w: %v", ErrConnect, err)
}
