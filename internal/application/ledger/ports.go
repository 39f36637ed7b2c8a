package ledger

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza la atomicidad del paso
// append-and-project: entrada del ledger y proyección se confirman juntas
// o ninguna de las dos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.StockItemRepository,
		entryRepo repository.StockEntryRepository,
		noteRepo repository.ReconciliationNoteRepository,
	) error) error
}

// ConflictClassifier decide si un error de la transacción es un conflicto
// de concurrencia recuperable (serialización/deadlock) que amerita reintento.
// La implementación concreta vive en infraestructura (códigos SQLSTATE).
type ConflictClassifier func(err error) bool
