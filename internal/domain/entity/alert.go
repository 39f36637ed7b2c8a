package entity

import "time"

// AlertState clasificación de stock frente al umbral configurado.
type AlertState string

const (
	AlertOK  AlertState = "OK"  // stock por encima del umbral
	AlertLow AlertState = "LOW" // 0 < stock <= umbral
	AlertOut AlertState = "OUT" // stock agotado (o negativo por backorder)
)

// ClassifyStock aplica la máquina de estados del evaluador de alertas:
// OUT cuando el stock llega a cero (o menos), LOW cuando está dentro del
// umbral, OK en cualquier otro caso. Con umbral 0 solo distingue OK/OUT.
func ClassifyStock(currentStock, threshold int64) AlertState {
	switch {
	case currentStock <= 0:
		return AlertOut
	case currentStock <= threshold:
		return AlertLow
	default:
		return AlertOK
	}
}

// AlertConfig umbral de alerta por ítem. Notified indica si ya se emitió la
// notificación del episodio actual por debajo del umbral; se limpia al
// recuperar stock para que una caída futura vuelva a notificar (debounce).
type AlertConfig struct {
	ItemID    string
	Threshold int64
	Notified  bool
	UpdatedAt time.Time
}

// AlertEvent evento notificable emitido al cruzar el umbral hacia LOW/OUT.
// El despacho real (email/SMS/webhook) es de un consumidor externo.
type AlertEvent struct {
	ItemID       string     `json:"item_id"`
	SKU          string     `json:"sku"`
	ProductName  string     `json:"product_name"`
	State        AlertState `json:"state"`
	CurrentStock int64      `json:"current_stock"`
	Threshold    int64      `json:"threshold"`
	OccurredAt   time.Time  `json:"occurred_at"`
}
