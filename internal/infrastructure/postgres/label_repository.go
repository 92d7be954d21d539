package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/repository"
)

var _ repository.LabelRepository = (*LabelRepo)(nil)

// LabelRepo implementación de LabelRepository sobre PostgreSQL (usable con pool o tx).
//
// Tablas:
//
//	finished_labels(serial_no PK, order_no, item_code, lot_no, sequence, quantity,
//	                manufacture_date, expiry_date, printer_id, created_at, created_by,
//	                UNIQUE(order_no, item_code, lot_no, sequence))
//	serial_counters(order_no, item_code, lot_no, last_sequence,
//	                PK(order_no, item_code, lot_no))
type LabelRepo struct {
	q Querier
}

// NewLabelRepository construye el adaptador de etiquetas. Pasar pool o tx (Querier).
func NewLabelRepository(q Querier) *LabelRepo {
	return &LabelRepo{q: q}
}

// ReserveSequences reserva count secuencias para la clave orden/item/lote en una
// sola sentencia atómica (upsert con RETURNING). El último valor reservado vuelve
// al caller; el rango es [last-count+1, last]. Nunca se calcula el inicio leyendo
// el contador y sumando en el cliente: eso colisiona bajo concurrencia.
func (r *LabelRepo) ReserveSequences(orderNo, itemCode, lotNo string, count int) (int64, error) {
	if count <= 0 {
		return 0, fmt.Errorf("reserve sequences: count debe ser positivo")
	}
	query := `
		INSERT INTO serial_counters (order_no, item_code, lot_no, last_sequence)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (order_no, item_code, lot_no)
		DO UPDATE SET last_sequence = serial_counters.last_sequence + $4
		RETURNING last_sequence`
	var last int64
	err := r.q.QueryRow(context.Background(), query, orderNo, itemCode, lotNo, count).Scan(&last)
	if err != nil {
		return 0, fmt.Errorf("reserve sequences: %w", err)
	}
	return last, nil
}

// CreateBatch inserta el lote de etiquetas. Pensado para ejecutarse dentro de la
// transacción de confirmación: cualquier error hace rollback del lote completo.
func (r *LabelRepo) CreateBatch(labels []*entity.LabelSerial) error {
	query := `
		INSERT INTO finished_labels
			(serial_no, order_no, item_code, lot_no, sequence, quantity,
			 manufacture_date, expiry_date, printer_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, l := range labels {
		_, err := r.q.Exec(context.Background(), query,
			l.SerialNo, l.OrderNo, l.ItemCode, l.LotNo, l.Sequence, l.Quantity,
			l.ManufactureDate, l.ExpiryDate, l.PrinterID, l.CreatedAt, l.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("insert label %s: %w", l.SerialNo, err)
		}
	}
	return nil
}

// ListByOrder lista las etiquetas confirmadas de una orden en orden de secuencia.
func (r *LabelRepo) ListByOrder(orderNo string) ([]*entity.LabelSerial, error) {
	query := `
		SELECT serial_no, order_no, item_code, lot_no, sequence, quantity,
		       manufacture_date, expiry_date, printer_id, created_at, created_by
		FROM finished_labels WHERE order_no = $1
		ORDER BY item_code, lot_no, sequence`
	rows, err := r.q.Query(context.Background(), query, orderNo)
	if err != nil {
		return nil, fmt.Errorf("list labels by order: %w", err)
	}
	defer rows.Close()
	return scanLabels(rows)
}

// ListBySerials obtiene etiquetas por sus números de serie.
func (r *LabelRepo) ListBySerials(serialNos []string) ([]*entity.LabelSerial, error) {
	query := `
		SELECT serial_no, order_no, item_code, lot_no, sequence, quantity,
		       manufacture_date, expiry_date, printer_id, created_at, created_by
		FROM finished_labels WHERE serial_no = ANY($1)
		ORDER BY order_no, item_code, lot_no, sequence`
	rows, err := r.q.Query(context.Background(), query, serialNos)
	if err != nil {
		return nil, fmt.Errorf("list labels by serials: %w", err)
	}
	defer rows.Close()
	return scanLabels(rows)
}

// CountCommitted cuenta cuántos de los seriales dados están confirmados.
func (r *LabelRepo) CountCommitted(serialNos []string) (int, error) {
	query := `SELECT count(*) FROM finished_labels WHERE serial_no = ANY($1)`
	var n int
	if err := r.q.QueryRow(context.Background(), query, serialNos).Scan(&n); err != nil {
		return 0, fmt.Errorf("count committed labels: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanLabels(rows rowScanner) ([]*entity.LabelSerial, error) {
	var out []*entity.LabelSerial
	for rows.Next() {
		var l entity.LabelSerial
		if err := rows.Scan(
			&l.SerialNo, &l.OrderNo, &l.ItemCode, &l.LotNo, &l.Sequence, &l.Quantity,
			&l.ManufactureDate, &l.ExpiryDate, &l.PrinterID, &l.CreatedAt, &l.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		out = append(out, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labels: %w", err)
	}
	return out, nil
}
