package entity

import "time"

// ReconciliationNote nota de auditoría de una corrección de deriva:
// la proyección almacenada no coincidía con la suma del ledger y fue
// corregida. No es una entrada del ledger (no cambia cantidades).
type ReconciliationNote struct {
	ID               string
	ItemID           string
	StoredQuantity   int64 // proyección encontrada
	ComputedQuantity int64 // suma real del ledger
	Delta            int64 // computed - stored
	CreatedAt        time.Time
}
