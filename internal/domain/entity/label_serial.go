package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SerialSeparator separa los segmentos del número de serie.
const SerialSeparator = "|"

// LabelSerial representa una etiqueta física de producto terminado.
// La cantidad es editable hasta la confirmación del lote; después el registro es inmutable.
type LabelSerial struct {
	SerialNo        string // {orden}|{item}|{lote}|{secuencia}
	OrderNo         string
	ItemCode        string
	LotNo           string
	Sequence        int64 // monotónico dentro de la clave orden/item/lote
	Quantity        decimal.Decimal
	ManufactureDate time.Time
	ExpiryDate      time.Time
	PrinterID       string
	CreatedAt       time.Time
	CreatedBy       string
}

// FormatSerial construye el número de serie canónico para una secuencia.
func FormatSerial(orderNo, itemCode, lotNo string, sequence int64) string {
	return strings.Join([]string{orderNo, itemCode, lotNo, strconv.FormatInt(sequence, 10)}, SerialSeparator)
}

// ParseSerial descompone un número de serie en sus segmentos.
// Retorna error si el formato no es {orden}|{item}|{lote}|{secuencia}.
func ParseSerial(serialNo string) (orderNo, itemCode, lotNo string, sequence int64, err error) {
	parts := strings.Split(serialNo, SerialSeparator)
	if len(parts) != 4 {
		return "", "", "", 0, fmt.Errorf("serial %q: se esperan 4 segmentos separados por %q", serialNo, SerialSeparator)
	}
	seq, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || seq <= 0 {
		return "", "", "", 0, fmt.Errorf("serial %q: secuencia inválida", serialNo)
	}
	return parts[0], parts[1], parts[2], seq, nil
}
