package usecase

import "github.com/jhoicas/inventory-control-api/internal/application/notify"

// Notifier recibe los mensajes después de confirmar la escritura. Lo implementa *notify.Dispatcher.
type Notifier interface {
	Dispatch(msg notify.Message)
}
