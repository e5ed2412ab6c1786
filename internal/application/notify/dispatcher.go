package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

// Dispatcher entrega cada mensaje en una goroutine desacoplada de la petición que lo originó.
// El resultado del envío solo se registra en el log.
type Dispatcher struct {
	sender  Sender
	log     *logger.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher construye el despachador. timeout <= 0 usa 10s por mensaje.
func NewDispatcher(sender Sender, log *logger.Logger, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{sender: sender, log: log.Component("notify"), timeout: timeout}
}

// Dispatch encola el envío y retorna de inmediato. Debe llamarse después de confirmar la escritura.
func (d *Dispatcher) Dispatch(msg Message) {
	if msg.To == "" {
		d.log.Warn().Str("subject", msg.Subject).Msg("notificación sin destinatario, se omite")
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.send(msg); err != nil {
			d.log.Error().Err(err).
				Str("to", msg.To).
				Str("subject", msg.Subject).
				Msg("envío de notificación fallido")
			return
		}
		d.log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("notificación enviada")
	}()
}

func (d *Dispatcher) send(msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic en sender: %v", r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	return d.sender.Send(ctx, msg)
}

// Wait bloquea hasta que terminen los envíos en curso (apagado ordenado y tests).
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
