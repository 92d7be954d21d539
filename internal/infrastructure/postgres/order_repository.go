package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByNumber obtiene la orden de producción por número. Retorna nil si no existe.
func (r *OrderRepo) GetByNumber(orderNo string) (*entity.ProductionOrderRef, error) {
	query := `
		SELECT order_no, item_code, lot_no, customer, total_quantity, remaining_quantity,
		       unit_of_measure, created_at, updated_at
		FROM production_orders WHERE order_no = $1`
	var o entity.ProductionOrderRef
	err := r.q.QueryRow(context.Background(), query, orderNo).Scan(
		&o.OrderNo, &o.ItemCode, &o.LotNo, &o.Customer, &o.TotalQuantity,
		&o.RemainingQuantity, &o.UnitOfMeasure, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return &o, nil
}

// DecrementRemaining descuenta el saldo restante con guarda contra saldo negativo:
// si el saldo no alcanza, la fila no se toca y se retorna ErrOrderExhausted.
func (r *OrderRepo) DecrementRemaining(orderNo string, qty decimal.Decimal) error {
	query := `
		UPDATE production_orders
		SET remaining_quantity = remaining_quantity - $2, updated_at = now()
		WHERE order_no = $1 AND remaining_quantity >= $2`
	tag, err := r.q.Exec(context.Background(), query, orderNo, qty)
	if err != nil {
		return fmt.Errorf("decrement remaining: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderExhausted
	}
	return nil
}
