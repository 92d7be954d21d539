package label

import (
	"fmt"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Tolerance margen numérico aceptado entre la suma de cantidades y el total
// objetivo al momento de confirmar (0.01 unidades).
var Tolerance = decimal.RequireFromString("0.01")

// DiscrepancyError la suma de cantidades no cuadra con el total objetivo.
// Diff = Sum - Target: negativo faltante, positivo excedente.
type DiscrepancyError struct {
	Target decimal.Decimal
	Sum    decimal.Decimal
	Diff   decimal.Decimal
}

func (e *DiscrepancyError) Error() string {
	if e.Diff.IsNegative() {
		return fmt.Sprintf("las cantidades no cuadran con el total %s: faltan %s", e.Target, e.Diff.Abs())
	}
	return fmt.Sprintf("las cantidades no cuadran con el total %s: exceden por %s", e.Target, e.Diff)
}

// CheckEdit valida una edición de cantidad sobre una línea antes de aplicarla:
// el nuevo valor debe ser >= 0 y la suma resultante nunca puede exceder el total
// objetivo (rechazo inmediato de la edición que desbordaría).
func CheckEdit(quantities []decimal.Decimal, idx int, newValue, target decimal.Decimal) error {
	if idx < 0 || idx >= len(quantities) {
		return fmt.Errorf("%w: línea %d fuera de rango", domain.ErrInvalidInput, idx)
	}
	if newValue.IsNegative() {
		return fmt.Errorf("%w: la cantidad de una etiqueta no puede ser negativa", domain.ErrInvalidInput)
	}
	sum := decimal.Zero
	for i, q := range quantities {
		if i == idx {
			sum = sum.Add(newValue)
			continue
		}
		sum = sum.Add(q)
	}
	if sum.GreaterThan(target) {
		return &DiscrepancyError{Target: target, Sum: sum, Diff: sum.Sub(target)}
	}
	return nil
}

// Reconcile verifica al momento de confirmar que la suma de cantidades iguala el
// total objetivo dentro de la tolerancia. Retorna *DiscrepancyError con la
// discrepancia exacta tanto por faltante como por excedente.
func Reconcile(quantities []decimal.Decimal, target decimal.Decimal) error {
	sum := decimal.Zero
	for _, q := range quantities {
		sum = sum.Add(q)
	}
	diff := sum.Sub(target)
	if diff.Abs().GreaterThan(Tolerance) {
		return &DiscrepancyError{Target: target, Sum: sum, Diff: diff}
	}
	return nil
}
