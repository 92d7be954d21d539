package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartDraftRequest inicia un borrador de impresión para una orden.
// LabelCapacity es la cantidad máxima que representa una etiqueta física (peso base).
type StartDraftRequest struct {
	OrderNo       string          `json:"order_no"`
	LabelCapacity decimal.Decimal `json:"label_capacity"`
}

// DraftLineDTO una línea editable del borrador (serial ya asignado + cantidad).
type DraftLineDTO struct {
	SerialNo string          `json:"serial_no"`
	Sequence int64           `json:"sequence"`
	Quantity decimal.Decimal `json:"quantity"`
}

// DraftResponse borrador de lote con sus líneas en el orden de partición.
type DraftResponse struct {
	DraftID        string          `json:"draft_id"`
	OrderNo        string          `json:"order_no"`
	ItemCode       string          `json:"item_code"`
	LotNo          string          `json:"lot_no"`
	Customer       string          `json:"customer"`
	UnitOfMeasure  string          `json:"unit_of_measure"`
	TargetQuantity decimal.Decimal `json:"target_quantity"`
	Lines          []DraftLineDTO  `json:"lines"`
}

// EditLineRequest nueva cantidad para una línea del borrador.
type EditLineRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CommitDraftRequest datos finales para confirmar el lote de etiquetas.
// Fechas en formato 2006-01-02.
type CommitDraftRequest struct {
	ManufactureDate string `json:"manufacture_date"`
	ExpiryDate      string `json:"expiry_date"`
	PrinterID       string `json:"printer_id"`
}

// LabelDTO etiqueta confirmada (inmutable).
type LabelDTO struct {
	SerialNo        string          `json:"serial_no"`
	OrderNo         string          `json:"order_no"`
	ItemCode        string          `json:"item_code"`
	LotNo           string          `json:"lot_no"`
	Sequence        int64           `json:"sequence"`
	Quantity        decimal.Decimal `json:"quantity"`
	ManufactureDate time.Time       `json:"manufacture_date"`
	ExpiryDate      time.Time       `json:"expiry_date"`
	PrinterID       string          `json:"printer_id"`
	CreatedAt       time.Time       `json:"created_at"`
}
