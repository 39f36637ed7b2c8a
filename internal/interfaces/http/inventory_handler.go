package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger-api/internal/application/alerts"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// InventoryHandler maneja movimientos del ledger, historial y reconciliación (protegido).
type InventoryHandler struct {
	appendUC    *ledger.AppendUseCase
	historyUC   *ledger.HistoryUseCase
	reconcileUC *ledger.ReconcileUseCase
	evaluatorUC *alerts.EvaluatorUseCase
	log         *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	appendUC *ledger.AppendUseCase,
	historyUC *ledger.HistoryUseCase,
	reconcileUC *ledger.ReconcileUseCase,
	evaluatorUC *alerts.EvaluatorUseCase,
	log *logger.Logger,
) *InventoryHandler {
	return &InventoryHandler{
		appendUC:    appendUC,
		historyUC:   historyUC,
		reconcileUC: reconcileUC,
		evaluatorUC: evaluatorUC,
		log:         log,
	}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock en el ledger
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "item_id, type, quantity (magnitud; firmada para ADJUSTMENT/TRANSFER), reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	changeType := entity.ChangeType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if !changeType.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de movimiento desconocido"})
	}

	entry, err := h.appendUC.Append(c.Context(), ledger.AppendInput{
		ItemID:            in.ItemID,
		Type:              changeType,
		Quantity:          in.Quantity,
		Reason:            in.Reason,
		RelatedOrderID:    in.RelatedOrderID,
		RelatedSupplierID: in.RelatedSupplierID,
		ActorID:           userID,
	})
	if err != nil {
		return respondError(c, err)
	}

	// Evaluación de alertas tras el commit: el movimiento ya es definitivo
	// aunque la evaluación falle.
	resp := dto.MovementResponse{Entry: dto.NewStockEntryDTO(entry)}
	state, err := h.evaluatorUC.Evaluate(c.Context(), in.ItemID)
	if err != nil {
		h.log.Error().Err(err).Str("item_id", in.ItemID).Msg("evaluar alerta tras movimiento")
	} else {
		resp.AlertState = string(state)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetHistory godoc
// @Summary      Historial de movimientos de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        from    query  string  false  "RFC3339, inclusive"
// @Param        to      query  string  false  "RFC3339, inclusive"
// @Param        limit   query  int     false  "máx 200, defecto 50"
// @Param        cursor  query  string  false  "cursor opaco de la página anterior"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/history [get]
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	itemID := c.Params("id")
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
	}

	page, err := h.historyUC.ListForItem(c.Context(), itemID, from, to, c.QueryInt("limit"), c.Query("cursor"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.HistoryResponse{
		Entries:    dto.NewStockEntryDTOs(page.Entries),
		NextCursor: page.NextCursor,
	})
}

// GetRecent godoc
// @Summary      Últimos movimientos del ledger (todos los ítems)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máx 200, defecto 50"
// @Success      200  {object}  map[string][]dto.StockEntryDTO
// @Router       /api/inventory/recent [get]
func (h *InventoryHandler) GetRecent(c *fiber.Ctx) error {
	entries, err := h.historyUC.ListRecent(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"entries": dto.NewStockEntryDTOs(entries)})
}

// Reconcile godoc
// @Summary      Reconciliar la proyección de un ítem contra su ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile/{id} [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	result, err := h.reconcileUC.Reconcile(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{
		ItemID:       result.ItemID,
		Drift:        result.Drift,
		StoredStock:  result.StoredStock,
		CurrentStock: result.CurrentStock,
	})
}

// GetReconciliationNotes godoc
// @Summary      Notas de auditoría de reconciliación de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del ítem"
// @Param        limit  query  int     false  "máx 200, defecto 50"
// @Success      200  {object}  map[string][]dto.ReconciliationNoteDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/reconciliation-notes [get]
func (h *InventoryHandler) GetReconciliationNotes(c *fiber.Ctx) error {
	notes, err := h.reconcileUC.Notes(c.Context(), c.Params("id"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"notes": dto.NewReconciliationNoteDTOs(notes)})
}

// parseTimeQuery lee un query param RFC3339 opcional; nil si está ausente.
func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
