package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

// Tests del formato canónico de serial: {orden}|{item}|{lote}|{secuencia}.

func TestFormatSerial_Canonico(t *testing.T) {
	s := entity.FormatSerial("OP-2026-001", "SKU-HARINA-25", "L-0315", 7)
	assert.Equal(t, "OP-2026-001|SKU-HARINA-25|L-0315|7", s)
}

func TestParseSerial_RoundTrip(t *testing.T) {
	orderNo, itemCode, lotNo, seq, err := entity.ParseSerial("OP-2026-001|SKU-HARINA-25|L-0315|42")
	require.NoError(t, err)
	assert.Equal(t, "OP-2026-001", orderNo)
	assert.Equal(t, "SKU-HARINA-25", itemCode)
	assert.Equal(t, "L-0315", lotNo)
	assert.Equal(t, int64(42), seq)
}

func TestParseSerial_SegmentosIncorrectos_RetornaError(t *testing.T) {
	casos := []string{
		"",
		"OP-1",
		"OP-1|SKU|LOTE",
		"OP-1|SKU|LOTE|1|extra",
	}
	for _, c := range casos {
		_, _, _, _, err := entity.ParseSerial(c)
		assert.Error(t, err, "serial %q debe rechazarse", c)
	}
}

func TestParseSerial_SecuenciaInvalida_RetornaError(t *testing.T) {
	casos := []string{
		"OP-1|SKU|LOTE|abc",
		"OP-1|SKU|LOTE|0",
		"OP-1|SKU|LOTE|-3",
	}
	for _, c := range casos {
		_, _, _, _, err := entity.ParseSerial(c)
		assert.Error(t, err, "serial %q debe rechazarse por secuencia inválida", c)
	}
}
