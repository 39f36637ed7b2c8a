package entity

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// ChangeType tipo cerrado de movimiento del ledger.
type ChangeType string

// Tipos de movimiento de stock.
const (
	ChangeSale       ChangeType = "SALE"       // venta (salida)
	ChangeRefund     ChangeType = "REFUND"     // devolución de venta (entrada)
	ChangeRestock    ChangeType = "RESTOCK"    // reposición / recepción de orden de compra (entrada)
	ChangeAdjustment ChangeType = "ADJUSTMENT" // ajuste manual, cualquier signo
	ChangeDamage     ChangeType = "DAMAGE"     // merma por daño (salida)
	ChangeReturn     ChangeType = "RETURN"     // retorno a inventario (entrada)
	ChangeTransfer   ChangeType = "TRANSFER"   // traslado hacia/desde el sistema, cualquier signo
)

// signRule convención de signo por tipo de movimiento.
type signRule int

const (
	signNegative signRule = iota // la cantidad siempre resta
	signPositive                 // la cantidad siempre suma
	signAny                      // el caller indica el signo
)

// signRules tabla cerrada de signos: agregar un ChangeType exige una entrada aquí.
var signRules = map[ChangeType]signRule{
	ChangeSale:       signNegative,
	ChangeRefund:     signPositive,
	ChangeRestock:    signPositive,
	ChangeAdjustment: signAny,
	ChangeDamage:     signNegative,
	ChangeReturn:     signPositive,
	ChangeTransfer:   signAny,
}

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t ChangeType) Valid() bool {
	_, ok := signRules[t]
	return ok
}

// Delta aplica la convención de signo del tipo a la cantidad recibida.
// Para tipos de signo fijo la cantidad debe ser positiva (magnitud);
// para ADJUSTMENT y TRANSFER la cantidad llega firmada y no puede ser cero.
func Delta(t ChangeType, quantity int64) (int64, error) {
	rule, ok := signRules[t]
	if !ok {
		return 0, domain.ErrInvalidInput
	}
	switch rule {
	case signNegative:
		if quantity <= 0 {
			return 0, domain.ErrInvalidQuantity
		}
		return -quantity, nil
	case signPositive:
		if quantity <= 0 {
			return 0, domain.ErrInvalidQuantity
		}
		return quantity, nil
	default:
		if quantity == 0 {
			return 0, domain.ErrInvalidQuantity
		}
		return quantity, nil
	}
}

// StockEntry registro inmutable de un movimiento de cantidad en el ledger.
// Nunca se actualiza ni se borra; las correcciones son nuevos ADJUSTMENT.
// Invariante: QuantityAfter == QuantityBefore + QuantityChange.
type StockEntry struct {
	ID                string // UUIDv7: ordenable por tiempo, clave del cursor compuesto
	ItemID            string
	Type              ChangeType
	QuantityBefore    int64
	QuantityAfter     int64
	QuantityChange    int64
	Reason            string
	RelatedOrderID    *string
	RelatedSupplierID *string
	CreatedBy         string
	CreatedAt         time.Time
}

// ChainsAfter verifica que la entrada encadena con la anterior
// (QuantityBefore de esta == QuantityAfter de prev).
func (e *StockEntry) ChainsAfter(prev *StockEntry) bool {
	return prev == nil || e.QuantityBefore == prev.QuantityAfter
}
