package repository

import (
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderRepository puerto de lectura/descuento sobre órdenes de producción (fuente de órdenes).
type OrderRepository interface {
	GetByNumber(orderNo string) (*entity.ProductionOrderRef, error)
	// DecrementRemaining descuenta el saldo restante de la orden. Falla con
	// domain.ErrOrderExhausted si el saldo no alcanza (nunca queda negativo).
	DecrementRemaining(orderNo string, qty decimal.Decimal) error
}
