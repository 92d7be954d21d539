package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/repository"
)

var _ repository.ReprintRepository = (*ReprintRepo)(nil)

// serialListSeparator separa los seriales en la columna serial_numbers.
const serialListSeparator = ";"

// ReprintRepo implementación de ReprintRepository sobre PostgreSQL.
//
// Tablas:
//
//	reprint_requests(id PK, requested_by, requested_at, serial_numbers, reason,
//	                 status, approved_by, approved_at, printed_by, printed_at, printer_id)
//	reprint_open_serials(serial_no PK, request_id)
//
// reprint_open_serials materializa la regla "una sola solicitud abierta por
// serial": la PK sobre serial_no convierte el intento duplicado en una
// violación de unicidad, sin ventana de carrera entre leer y crear.
type ReprintRepo struct {
	pool *pgxpool.Pool
}

// NewReprintRepository construye el adaptador de solicitudes de reimpresión.
func NewReprintRepository(pool *pgxpool.Pool) *ReprintRepo {
	return &ReprintRepo{pool: pool}
}

// Create inserta la solicitud y sus guardas de serial abierto en una transacción.
// Un serial con solicitud abierta produce ErrDuplicatePending y no persiste nada.
func (r *ReprintRepo) Create(req *entity.ReprintRequest) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertReq := `
		INSERT INTO reprint_requests
			(id, requested_by, requested_at, serial_numbers, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = tx.Exec(ctx, insertReq,
		req.ID, req.RequestedBy, req.RequestedAt,
		strings.Join(req.SerialNumbers, serialListSeparator),
		req.Reason, string(req.Status),
	)
	if err != nil {
		return fmt.Errorf("insert reprint request: %w", err)
	}

	insertGuard := `INSERT INTO reprint_open_serials (serial_no, request_id) VALUES ($1, $2)`
	for _, serial := range req.SerialNumbers {
		if _, err := tx.Exec(ctx, insertGuard, serial, req.ID); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicatePending
			}
			return fmt.Errorf("insert open serial guard: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una solicitud por ID. Retorna nil si no existe.
func (r *ReprintRepo) GetByID(id string) (*entity.ReprintRequest, error) {
	query := `
		SELECT id, requested_by, requested_at, serial_numbers, reason, status,
		       COALESCE(approved_by, ''), approved_at,
		       COALESCE(printed_by, ''), printed_at, COALESCE(printer_id, '')
		FROM reprint_requests WHERE id = $1`
	req, err := scanReprint(r.pool.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reprint request: %w", err)
	}
	return req, nil
}

// UpdateStatus persiste la transición con guarda optimista sobre el estado previo.
// Si la solicitud pasa a un estado terminal, libera las guardas de serial en la
// misma transacción.
func (r *ReprintRepo) UpdateStatus(req *entity.ReprintRequest, expected entity.RequestStatus) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE reprint_requests
		SET status = $2,
		    approved_by = NULLIF($3, ''), approved_at = $4,
		    printed_by = NULLIF($5, ''), printed_at = $6,
		    printer_id = NULLIF($7, '')
		WHERE id = $1 AND status = $8`
	tag, err := tx.Exec(ctx, query,
		req.ID, string(req.Status),
		req.ApprovedBy, req.ApprovedAt,
		req.PrintedBy, req.PrintedAt,
		req.PrinterID, string(expected),
	)
	if err != nil {
		return fmt.Errorf("update reprint status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Otro actor transicionó primero: el estado persistido ya no es expected.
		return domain.ErrConflict
	}

	if req.Status.IsTerminal() {
		if _, err := tx.Exec(ctx, `DELETE FROM reprint_open_serials WHERE request_id = $1`, req.ID); err != nil {
			return fmt.Errorf("release open serials: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ListByStatus lista solicitudes por estado, más recientes primero.
func (r *ReprintRepo) ListByStatus(status entity.RequestStatus, limit, offset int) ([]*entity.ReprintRequest, error) {
	query := `
		SELECT id, requested_by, requested_at, serial_numbers, reason, status,
		       COALESCE(approved_by, ''), approved_at,
		       COALESCE(printed_by, ''), printed_at, COALESCE(printer_id, '')
		FROM reprint_requests WHERE status = $1
		ORDER BY requested_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reprint requests: %w", err)
	}
	defer rows.Close()

	var out []*entity.ReprintRequest
	for rows.Next() {
		req, err := scanReprint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reprint request: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reprint requests: %w", err)
	}
	return out, nil
}

func scanReprint(row pgx.Row) (*entity.ReprintRequest, error) {
	var req entity.ReprintRequest
	var serials, status string
	var approvedAt, printedAt *time.Time
	err := row.Scan(
		&req.ID, &req.RequestedBy, &req.RequestedAt, &serials, &req.Reason, &status,
		&req.ApprovedBy, &approvedAt,
		&req.PrintedBy, &printedAt, &req.PrinterID,
	)
	if err != nil {
		return nil, err
	}
	req.SerialNumbers = strings.Split(serials, serialListSeparator)
	req.Status = entity.RequestStatus(status)
	req.ApprovedAt = approvedAt
	req.PrintedAt = printedAt
	return &req, nil
}
