package label

import (
	"fmt"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Partition parte una cantidad total en cantidades por etiqueta acotadas por la
// capacidad base. Produce primero las etiquetas a capacidad completa y al final,
// si existe, una etiqueta con el remanente. El orden es significativo: la
// asignación de seriales sigue exactamente este orden.
//
// La suma de las cantidades retornadas es exactamente igual a total.
func Partition(total, capacity decimal.Decimal) ([]decimal.Decimal, error) {
	if capacity.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: la capacidad por etiqueta debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: la cantidad debe alcanzar al menos para una etiqueta", domain.ErrInvalidInput)
	}

	// QuoRem con precisión 0: total = cociente*capacity + resto, cociente entero.
	quotient, remainder := total.QuoRem(capacity, 0)
	fullLabels := quotient.IntPart()

	quantities := make([]decimal.Decimal, 0, fullLabels+1)
	for i := int64(0); i < fullLabels; i++ {
		quantities = append(quantities, capacity)
	}
	if remainder.GreaterThan(decimal.Zero) {
		quantities = append(quantities, remainder)
	}
	return quantities, nil
}
