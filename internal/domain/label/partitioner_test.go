package label_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/label"
)

// ──────────────────────────────────────────────────────────────────────────────
// TestPartition valida la partición del saldo de una orden en cantidades por
// etiqueta: etiquetas completas primero y el remanente (si existe) al final.
// El orden importa porque la asignación de seriales lo sigue uno a uno.
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPartition_ConRemanente(t *testing.T) {
	// 100 kg en etiquetas de 30 kg -> [30, 30, 30, 10]
	qs, err := label.Partition(d("100"), d("30"))
	require.NoError(t, err)
	require.Len(t, qs, 4, "100/30 debe producir 3 etiquetas completas más el remanente")

	assert.True(t, qs[0].Equal(d("30")))
	assert.True(t, qs[1].Equal(d("30")))
	assert.True(t, qs[2].Equal(d("30")))
	assert.True(t, qs[3].Equal(d("10")), "el remanente debe ir al final")
}

func TestPartition_DivisionExacta(t *testing.T) {
	// 90 kg en etiquetas de 30 kg -> [30, 30, 30] sin etiqueta de remanente
	qs, err := label.Partition(d("90"), d("30"))
	require.NoError(t, err)
	require.Len(t, qs, 3, "división exacta no debe producir etiqueta de remanente")
	for i, q := range qs {
		assert.True(t, q.Equal(d("30")), "la etiqueta %d debe ir a capacidad completa", i)
	}
}

func TestPartition_TotalMenorQueCapacidad(t *testing.T) {
	// 5 kg con capacidad 30 kg -> una sola etiqueta de 5 kg
	qs, err := label.Partition(d("5"), d("30"))
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.True(t, qs[0].Equal(d("5")))
}

func TestPartition_CantidadesFraccionarias(t *testing.T) {
	// 25.5 kg en etiquetas de 10 kg -> [10, 10, 5.5]
	qs, err := label.Partition(d("25.5"), d("10"))
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.True(t, qs[2].Equal(d("5.5")))
}

// TestPartition_SumaExacta verifica el invariante central: la suma de las
// cantidades retornadas siempre es exactamente el total de entrada.
func TestPartition_SumaExacta(t *testing.T) {
	cases := []struct{ total, capacity string }{
		{"100", "30"},
		{"90", "30"},
		{"5", "30"},
		{"250", "100"},
		{"25.5", "10"},
		{"0.01", "30"},
	}
	for _, tc := range cases {
		qs, err := label.Partition(d(tc.total), d(tc.capacity))
		require.NoError(t, err, "total=%s capacity=%s", tc.total, tc.capacity)

		sum := decimal.Zero
		for _, q := range qs {
			sum = sum.Add(q)
		}
		assert.True(t, sum.Equal(d(tc.total)),
			"la suma de la partición debe ser exactamente el total (total=%s capacity=%s sum=%s)",
			tc.total, tc.capacity, sum)
	}
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestPartition_CapacidadCero_RetornaError(t *testing.T) {
	_, err := label.Partition(d("100"), decimal.Zero)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPartition_CapacidadNegativa_RetornaError(t *testing.T) {
	_, err := label.Partition(d("100"), d("-10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPartition_TotalCero_RetornaError(t *testing.T) {
	_, err := label.Partition(decimal.Zero, d("30"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
