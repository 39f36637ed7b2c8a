package purchasing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// CreateOrderInput entrada para crear una orden de compra.
type CreateOrderInput struct {
	SupplierID string
	Items      []CreateOrderLine
	ActorID    string
}

// CreateOrderLine línea solicitada en una orden nueva.
type CreateOrderLine struct {
	ItemID   string
	Quantity int64
	UnitCost decimal.Decimal
}

// UseCase operaciones de ciclo de vida de órdenes de compra (crear,
// consultar, listar, transicionar). La recepción de mercancía vive en
// ReceiveUseCase por su acople transaccional con el ledger.
type UseCase struct {
	orderRepo repository.PurchaseOrderRepository
	itemRepo  repository.StockItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(orderRepo repository.PurchaseOrderRepository, itemRepo repository.StockItemRepository) *UseCase {
	return &UseCase{orderRepo: orderRepo, itemRepo: itemRepo}
}

// Create registra una orden nueva en estado DRAFT. Valida que cada línea
// referencie un ítem existente y pida cantidad positiva.
func (uc *UseCase) Create(ctx context.Context, input CreateOrderInput) (*entity.PurchaseOrder, error) {
	if input.SupplierID == "" || input.ActorID == "" || len(input.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if line.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if seen[line.ItemID] {
			return nil, domain.ErrDuplicate
		}
		seen[line.ItemID] = true
		item, err := uc.itemRepo.GetByID(ctx, line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrUnknownItem
		}
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		SupplierID: input.SupplierID,
		Status:     entity.OrderDraft,
		CreatedBy:  input.ActorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, line := range input.Items {
		order.Items = append(order.Items, &entity.PurchaseOrderItem{
			ItemID:          line.ItemID,
			OrderedQuantity: line.Quantity,
			UnitCost:        line.UnitCost,
		})
	}
	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get devuelve una orden por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// List pagina las órdenes, más recientes primero.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseOrder, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.orderRepo.List(ctx, limit, offset)
}

// ChangeStatus aplica una transición de la máquina de estados.
// RECEIVED no se asigna por aquí: solo lo produce la recepción completa.
func (uc *UseCase) ChangeStatus(ctx context.Context, id string, to entity.OrderStatus) (*entity.PurchaseOrder, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if to == entity.OrderReceived {
		return nil, domain.ErrInvalidTransition
	}
	if !entity.CanTransition(order.Status, to) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.orderRepo.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	return order, nil
}
