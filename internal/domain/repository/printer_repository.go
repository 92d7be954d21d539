package repository

import "github.com/jhoicas/Etiquetas-api/internal/domain/entity"

// PrinterRepository puerto de consulta del registro de impresoras.
type PrinterRepository interface {
	GetByID(id string) (*entity.Printer, error)
	ListActive() ([]*entity.Printer, error)
}
