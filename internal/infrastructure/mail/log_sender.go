package mail

import (
	"context"

	"github.com/jhoicas/inventory-control-api/internal/application/notify"
	"github.com/jhoicas/inventory-control-api/pkg/config"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

var _ notify.Sender = (*LogSender)(nil)

// LogSender solo registra el mensaje; se usa cuando MAIL_HOST no está configurado.
type LogSender struct {
	log *logger.Logger
}

// NewLogSender construye el sender de log.
func NewLogSender(log *logger.Logger) *LogSender {
	return &LogSender{log: log.Component("mail")}
}

func (s *LogSender) Send(_ context.Context, msg notify.Message) error {
	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Int("body_bytes", len(msg.Body)).
		Msg("correo no enviado: SMTP deshabilitado")
	return nil
}

// NewSender elige SMTP o log según la configuración.
func NewSender(cfg config.MailConfig, log *logger.Logger) notify.Sender {
	if cfg.Enabled() {
		return NewSMTPSender(cfg)
	}
	return NewLogSender(log)
}
