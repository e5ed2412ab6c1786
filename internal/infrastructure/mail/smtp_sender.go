package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/inventory-control-api/internal/application/notify"
	"github.com/jhoicas/inventory-control-api/pkg/config"
)

var _ notify.Sender = (*SMTPSender)(nil)

// SMTPSender entrega los mensajes por SMTP usando gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender construye el sender a partir de la configuración MAIL_*.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send abre una conexión por mensaje. gomail no acepta contexto: si ctx vence primero
// se devuelve ctx.Err() y el envío en curso termina en segundo plano.
func (s *SMTPSender) Send(ctx context.Context, msg notify.Message) error {
	m := s.build(msg)
	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp %s: %w", msg.To, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *SMTPSender) build(msg notify.Message) *gomail.Message {
	from := msg.From
	if from == "" {
		from = s.from
	}
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if !msg.SentAt.IsZero() {
		m.SetDateHeader("Date", msg.SentAt)
	}
	m.SetBody("text/plain", msg.Body)
	return m
}
