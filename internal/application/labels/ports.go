package labels

import (
	"context"

	"github.com/jhoicas/Etiquetas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que el lote de etiquetas y el descuento del saldo de la
// orden se confirman juntos o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		labelRepo repository.LabelRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
