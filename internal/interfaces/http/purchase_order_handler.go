package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/purchasing"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// PurchaseOrderHandler maneja las órdenes de compra y sus recepciones (protegido).
type PurchaseOrderHandler struct {
	uc        *purchasing.UseCase
	receiveUC *purchasing.ReceiveUseCase
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(uc *purchasing.UseCase, receiveUC *purchasing.ReceiveUseCase) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{uc: uc, receiveUC: receiveUC}
}

// Create registra una orden en estado DRAFT.
// POST /api/purchase-orders
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := purchasing.CreateOrderInput{SupplierID: in.SupplierID, ActorID: userID}
	for _, line := range in.Items {
		input.Items = append(input.Items, purchasing.CreateOrderLine{
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			UnitCost: line.UnitCost,
		})
	}
	order, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseOrderDTO(order))
}

// List pagina las órdenes.
// GET /api/purchase-orders
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	orders, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"orders": dto.NewPurchaseOrderDTOs(orders),
		"page":   dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetByID devuelve una orden con sus líneas.
// GET /api/purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPurchaseOrderDTO(order))
}

// ChangeStatus aplica una transición de estado a la orden.
// RECEIVED no se asigna por aquí: solo lo produce una recepción completa.
// POST /api/purchase-orders/:id/status
func (h *PurchaseOrderHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	status := entity.OrderStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	order, err := h.uc.ChangeStatus(c.Context(), c.Params("id"), status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewPurchaseOrderDTO(order))
}

// Receive registra una entrega (parcial o total) contra la orden.
// POST /api/purchase-orders/:id/receipts
func (h *PurchaseOrderHandler) Receive(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := purchasing.ReceiptInput{OrderID: c.Params("id"), ActorID: userID}
	for _, line := range in.Items {
		input.Lines = append(input.Lines, purchasing.ReceiptLine{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	result, err := h.receiveUC.ReceiveItems(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiptResponse{
		Order:   dto.NewPurchaseOrderDTO(result.Order),
		Entries: dto.NewStockEntryDTOs(result.Entries),
	})
}
