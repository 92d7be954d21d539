package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/domain/repository"
)

// PrinterHandler expone el registro de impresoras para selección.
type PrinterHandler struct {
	repo repository.PrinterRepository
}

// NewPrinterHandler construye el handler.
func NewPrinterHandler(repo repository.PrinterRepository) *PrinterHandler {
	return &PrinterHandler{repo: repo}
}

// List godoc
// @Summary      Listar impresoras activas
// @Tags         printers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Printer
// @Router       /api/printers [get]
func (h *PrinterHandler) List(c *fiber.Ctx) error {
	printers, err := h.repo.ListActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(printers), "printers": printers})
}
