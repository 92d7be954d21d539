package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/repository"
)

var _ repository.PrinterRepository = (*PrinterRepo)(nil)

// PrinterRepo implementación del registro de impresoras sobre PostgreSQL.
type PrinterRepo struct {
	pool *pgxpool.Pool
}

// NewPrinterRepository construye el adaptador del registro de impresoras.
func NewPrinterRepository(pool *pgxpool.Pool) *PrinterRepo {
	return &PrinterRepo{pool: pool}
}

// GetByID obtiene una impresora por ID. Retorna nil si no existe.
func (r *PrinterRepo) GetByID(id string) (*entity.Printer, error) {
	query := `
		SELECT id, name, address, dpi, active, created_at
		FROM printers WHERE id = $1`
	var p entity.Printer
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Address, &p.DPI, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get printer: %w", err)
	}
	return &p, nil
}

// ListActive lista las impresoras activas disponibles para selección.
func (r *PrinterRepo) ListActive() ([]*entity.Printer, error) {
	query := `
		SELECT id, name, address, dpi, active, created_at
		FROM printers WHERE active ORDER BY name`
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list printers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Printer
	for rows.Next() {
		var p entity.Printer
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.DPI, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan printer: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate printers: %w", err)
	}
	return out, nil
}
