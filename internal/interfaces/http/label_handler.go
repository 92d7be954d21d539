package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/application/labels"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

// labelSheetGenerator contrato mínimo para la hoja PDF (evita acoplar el handler
// a la implementación Maroto).
type labelSheetGenerator interface {
	GenerateLabelSheet(ctx context.Context, order *entity.ProductionOrderRef, labels []*entity.LabelSerial) ([]byte, error)
}

// LabelHandler maneja el ciclo de vida del lote de etiquetas (protegido).
type LabelHandler struct {
	uc    *labels.LabelingUseCase
	sheet labelSheetGenerator
}

// NewLabelHandler construye el handler.
func NewLabelHandler(uc *labels.LabelingUseCase, sheet labelSheetGenerator) *LabelHandler {
	return &LabelHandler{uc: uc, sheet: sheet}
}

// StartDraft godoc
// @Summary      Iniciar borrador de etiquetas para una orden
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartDraftRequest  true  "order_no y label_capacity (peso base)"
// @Success      201   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/labels/drafts [post]
func (h *LabelHandler) StartDraft(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.StartDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := h.uc.StartDraft(c.Context(), userID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(draft)
}

// GetDraft godoc
// @Summary      Consultar borrador
// @Tags         labels
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "handle del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labels/drafts/{id} [get]
func (h *LabelHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.uc.GetDraft(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(draft)
}

// EditLine godoc
// @Summary      Editar la cantidad de una línea del borrador
// @Description  La edición que haría exceder el total objetivo se rechaza de
//
//	inmediato con la discrepancia calculada.
//
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "handle del borrador"
// @Param        line  path  int     true  "índice de la línea (base 0)"
// @Param        body  body  dto.EditLineRequest  true  "nueva cantidad"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labels/drafts/{id}/lines/{line} [patch]
func (h *LabelHandler) EditLine(c *fiber.Ctx) error {
	lineIdx, err := c.ParamsInt("line")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice de línea inválido"})
	}
	var in dto.EditLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	draft, err := h.uc.EditQuantity(c.Params("id"), lineIdx, in.Quantity)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(draft)
}

// CommitDraft godoc
// @Summary      Confirmar el lote de etiquetas
// @Description  Valida reconciliación, fechas e impresora y persiste el lote
//
//	completo más el descuento del saldo de la orden en una transacción.
//
// @Tags         labels
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "handle del borrador"
// @Param        body  body  dto.CommitDraftRequest  true  "fechas e impresora"
// @Success      201   {array}   dto.LabelDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/labels/drafts/{id}/commit [post]
func (h *LabelHandler) CommitDraft(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CommitDraftRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	committed, err := h.uc.CommitDraft(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(committed)
}

// ListByOrder godoc
// @Summary      Listar etiquetas confirmadas de una orden
// @Tags         labels
// @Security     Bearer
// @Produce      json
// @Param        orderNo  path  string  true  "número de orden"
// @Success      200  {array}  dto.LabelDTO
// @Router       /api/labels/orders/{orderNo} [get]
func (h *LabelHandler) ListByOrder(c *fiber.Ctx) error {
	list, err := h.uc.ListByOrder(c.Params("orderNo"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "labels": list})
}

// LabelSheet godoc
// @Summary      Hoja PDF de verificación de etiquetas de una orden
// @Tags         labels
// @Security     Bearer
// @Produce      application/pdf
// @Param        orderNo  path  string  true  "número de orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/labels/orders/{orderNo}/sheet [get]
func (h *LabelHandler) LabelSheet(c *fiber.Ctx) error {
	order, labelsList, err := h.uc.OrderWithLabels(c.Params("orderNo"))
	if err != nil {
		return respondDomainError(c, err)
	}
	pdfBytes, err := h.sheet.GenerateLabelSheet(c.Context(), order, labelsList)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	return c.Send(pdfBytes)
}
