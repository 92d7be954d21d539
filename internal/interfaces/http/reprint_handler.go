package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/application/reprint"
)

// ReprintHandler maneja el flujo de aprobación de reimpresiones (protegido y
// con gate de rol por acción: solicitante crea, aprobador decide, impresor imprime).
type ReprintHandler struct {
	uc *reprint.ReprintUseCase
}

// NewReprintHandler construye el handler.
func NewReprintHandler(uc *reprint.ReprintUseCase) *ReprintHandler {
	return &ReprintHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de reimpresión
// @Description  Los seriales deben corresponder a etiquetas confirmadas y no
//
//	tener otra solicitud abierta (Requested o Approved).
//
// @Tags         reprints
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReprintRequest  true  "serial_numbers y reason"
// @Success      201   {object}  dto.ReprintResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/reprints [post]
func (h *ReprintHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateReprintRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List godoc
// @Summary      Listar solicitudes por estado
// @Tags         reprints
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  true  "REQUESTED | APPROVED | REJECTED | PRINTED"
// @Param        limit   query  int     false "tamaño de página"
// @Param        offset  query  int     false "desplazamiento"
// @Success      200  {array}  dto.ReprintResponse
// @Router       /api/reprints [get]
func (h *ReprintHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	list, err := h.uc.ListByStatus(c.Query("status"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "reprints": list})
}

// GetByID godoc
// @Summary      Consultar una solicitud
// @Tags         reprints
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ReprintResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reprints/{id} [get]
func (h *ReprintHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// Approve godoc
// @Summary      Aprobar solicitud (Requested -> Approved)
// @Tags         reprints
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ReprintResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reprints/{id}/approve [post]
func (h *ReprintHandler) Approve(c *fiber.Ctx) error {
	resp, err := h.uc.Approve(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// Reject godoc
// @Summary      Rechazar solicitud (Requested -> Rejected, terminal)
// @Tags         reprints
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.ReprintResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reprints/{id}/reject [post]
func (h *ReprintHandler) Reject(c *fiber.Ctx) error {
	resp, err := h.uc.Reject(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}

// Print godoc
// @Summary      Ejecutar impresión (Approved -> Printed)
// @Description  Despacha el trabajo a la impresora y solo tras confirmación
//
//	persiste la transición. Si el despacho falla la solicitud queda
//	en Approved y puede reintentarse sin nueva aprobación.
//
// @Tags         reprints
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la solicitud"
// @Param        body  body  dto.PrintReprintRequest  true  "printer_id"
// @Success      200   {object}  dto.ReprintResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/reprints/{id}/print [post]
func (h *ReprintHandler) Print(c *fiber.Ctx) error {
	var in dto.PrintReprintRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.Print(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(resp)
}
