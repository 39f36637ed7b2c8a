package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUnknownItem        = errors.New("ítem de stock no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInvalidQuantity    = errors.New("cantidad inválida para el tipo de movimiento")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrOrderNotReceivable = errors.New("la orden de compra no admite recepciones")
	ErrOverReceipt        = errors.New("la cantidad recibida excede la cantidad ordenada")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrRetryExhausted     = errors.New("conflicto de concurrencia persistente, reintente la operación")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
