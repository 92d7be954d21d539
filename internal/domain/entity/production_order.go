package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionOrderRef identifica la orden de producción origen de las etiquetas.
// Inmutable durante una sesión de impresión; el saldo restante solo se descuenta
// al confirmar un lote de etiquetas.
type ProductionOrderRef struct {
	OrderNo           string
	ItemCode          string
	LotNo             string
	Customer          string
	TotalQuantity     decimal.Decimal
	RemainingQuantity decimal.Decimal
	UnitOfMeasure     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
