package dto

import "time"

// CreateReprintRequest solicitud de reimpresión sobre seriales ya confirmados.
type CreateReprintRequest struct {
	SerialNumbers []string `json:"serial_numbers"`
	Reason        string   `json:"reason"`
}

// PrintReprintRequest impresora elegida para ejecutar una solicitud aprobada.
type PrintReprintRequest struct {
	PrinterID string `json:"printer_id"`
}

// ReprintResponse estado completo de una solicitud de reimpresión.
type ReprintResponse struct {
	ID            string     `json:"id"`
	RequestedBy   string     `json:"requested_by"`
	RequestedAt   time.Time  `json:"requested_at"`
	SerialNumbers []string   `json:"serial_numbers"`
	Reason        string     `json:"reason"`
	Status        string     `json:"status"`
	ApprovedBy    string     `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	PrintedBy     string     `json:"printed_by,omitempty"`
	PrintedAt     *time.Time `json:"printed_at,omitempty"`
	PrinterID     string     `json:"printer_id,omitempty"`
}
