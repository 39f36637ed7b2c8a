// Package kafka publica eventos de alerta de stock en un tópico Kafka
// para que consumidores externos (email, SMS, webhooks) los despachen.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/stock-ledger-api/internal/application/alerts"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

var _ alerts.Notifier = (*Notifier)(nil)

// Notifier publica AlertEvent como JSON. La clave del mensaje es el
// item_id: todos los eventos de un mismo ítem caen en la misma partición
// y conservan su orden.
type Notifier struct {
	writer *kafka.Writer
}

// NewNotifier construye el publicador sobre los brokers y tópico dados.
func NewNotifier(brokers []string, topic string) *Notifier {
	return &Notifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Notify serializa y publica el evento.
func (n *Notifier) Notify(ctx context.Context, event entity.AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento de alerta: %w", err)
	}
	if err := n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ItemID),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("publicar evento de alerta: %w", err)
	}
	return nil
}

// Close libera la conexión del writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}
