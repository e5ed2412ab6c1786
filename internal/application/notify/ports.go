package notify

import (
	"context"
	"time"
)

// Message correo saliente. From vacío = remitente por defecto del Sender.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
	SentAt  time.Time
}

// Sender puerto hacia el canal de entrega (SMTP, log). Un error nunca se propaga al llamador del dominio.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
