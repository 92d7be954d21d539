package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Etiquetas-api/internal/application/labels"
	"github.com/jhoicas/Etiquetas-api/internal/domain/repository"
)

// Ensure TxRunner implements labels.TxRunner.
var _ labels.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Es el mecanismo de atomicidad de la confirmación de lotes: etiquetas y descuento
// del saldo de la orden entran juntos o no entran.
func (r *TxRunner) Run(ctx context.Context, fn func(
	labelRepo repository.LabelRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	labelRepo := NewLabelRepository(tx)
	orderRepo := NewOrderRepository(tx)

	if err := fn(labelRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
