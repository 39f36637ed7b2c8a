package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/alerts"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/items"
)

// ItemHandler maneja el catálogo de ítems y su configuración de alertas (protegido).
type ItemHandler struct {
	itemsUC     *items.UseCase
	evaluatorUC *alerts.EvaluatorUseCase
}

// NewItemHandler construye el handler.
func NewItemHandler(itemsUC *items.UseCase, evaluatorUC *alerts.EvaluatorUseCase) *ItemHandler {
	return &ItemHandler{itemsUC: itemsUC, evaluatorUC: evaluatorUC}
}

// Create registra un ítem nuevo con stock cero.
// POST /api/inventory/items
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.itemsUC.Create(c.Context(), items.CreateItemInput{
		ProductID:        in.ProductID,
		VariantID:        in.VariantID,
		SKU:              in.SKU,
		Name:             in.Name,
		Category:         in.Category,
		UnitCost:         in.UnitCost,
		BackorderAllowed: in.BackorderAllowed,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockItemDTO(item))
}

// List pagina el catálogo.
// GET /api/inventory/items
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.itemsUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"items": dto.NewStockItemDTOs(list),
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetByID devuelve un ítem.
// GET /api/inventory/items/:id
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	item, err := h.itemsUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewStockItemDTO(item))
}

// GetStock lectura rápida de la proyección de stock.
// GET /api/inventory/items/:id/stock
func (h *ItemHandler) GetStock(c *fiber.Ctx) error {
	itemID := c.Params("id")
	stock, err := h.itemsUC.GetCurrentStock(c.Context(), itemID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CurrentStockDTO{ItemID: itemID, CurrentStock: stock})
}

// GetAlertState estado de alerta derivado del stock y el umbral actuales.
// GET /api/inventory/items/:id/alert
func (h *ItemHandler) GetAlertState(c *fiber.Ctx) error {
	itemID := c.Params("id")
	item, err := h.itemsUC.Get(c.Context(), itemID)
	if err != nil {
		return respondError(c, err)
	}
	state, err := h.evaluatorUC.State(c.Context(), itemID)
	if err != nil {
		return respondError(c, err)
	}
	resp := dto.AlertStateDTO{
		ItemID:       itemID,
		State:        string(state.State),
		CurrentStock: item.CurrentStock,
	}
	if state.Configured {
		threshold := state.Threshold
		resp.Threshold = &threshold
	}
	return c.JSON(resp)
}

// SetAlertConfig configura el umbral de alerta del ítem.
// PUT /api/inventory/items/:id/alert-config
func (h *ItemHandler) SetAlertConfig(c *fiber.Ctx) error {
	var in dto.SetThresholdRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	itemID := c.Params("id")
	if err := h.evaluatorUC.SetThreshold(c.Context(), itemID, in.Threshold); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"item_id": itemID, "threshold": in.Threshold})
}

// DeleteAlertConfig deshabilita las alertas del ítem.
// DELETE /api/inventory/items/:id/alert-config
func (h *ItemHandler) DeleteAlertConfig(c *fiber.Ctx) error {
	if err := h.evaluatorUC.RemoveConfig(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
