package alerts

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// Notifier puerto de salida para eventos de alerta de stock. El despacho
// real (email/SMS/webhook) corre por cuenta de un consumidor externo;
// este núcleo solo emite el evento.
type Notifier interface {
	Notify(ctx context.Context, event entity.AlertEvent) error
}

// LogNotifier implementación por defecto cuando no hay broker configurado:
// deja el evento en el log estructurado.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador de log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify registra el evento de alerta en el log.
func (n *LogNotifier) Notify(_ context.Context, event entity.AlertEvent) error {
	n.log.Warn().
		Str("item_id", event.ItemID).
		Str("sku", event.SKU).
		Str("state", string(event.State)).
		Int64("current_stock", event.CurrentStock).
		Int64("threshold", event.Threshold).
		Msg("alerta de stock")
	return nil
}
