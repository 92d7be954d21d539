package entity

import (
	"fmt"
	"strings"
	"time"
)

// RequestStatus estado de una solicitud de reimpresión (conjunto cerrado).
type RequestStatus string

const (
	StatusRequested RequestStatus = "REQUESTED" // inicial
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED" // terminal
	StatusPrinted   RequestStatus = "PRINTED"  // terminal
)

// IsTerminal indica si el estado no admite más transiciones.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusPrinted
}

// StateError transición intentada desde un estado que no la admite.
type StateError struct {
	Action  string
	Current RequestStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("estado inválido para esta acción: no se puede %s una solicitud en estado %s", e.Action, e.Current)
}

// ReprintRequest caso de aprobación sobre un conjunto de seriales ya impresos.
// Transiciones permitidas: Requested -> {Approved, Rejected}; Approved -> Printed.
// Rejected y Printed son terminales.
type ReprintRequest struct {
	ID            string
	RequestedBy   string
	RequestedAt   time.Time
	SerialNumbers []string // al menos uno, de etiquetas ya confirmadas
	Reason        string
	Status        RequestStatus
	ApprovedBy    string // quien aprobó o rechazó
	ApprovedAt    *time.Time
	PrintedBy     string
	PrintedAt     *time.Time
	PrinterID     string
}

// NewReprintRequest crea una solicitud en estado Requested.
// Valida que haya al menos un serial y que el motivo no esté vacío.
func NewReprintRequest(id, requestedBy string, serialNumbers []string, reason string, at time.Time) (*ReprintRequest, error) {
	if len(serialNumbers) == 0 {
		return nil, fmt.Errorf("la solicitud debe incluir al menos un serial")
	}
	for _, s := range serialNumbers {
		if strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("serial vacío en la solicitud")
		}
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("el motivo de la reimpresión es obligatorio")
	}
	return &ReprintRequest{
		ID:            id,
		RequestedBy:   requestedBy,
		RequestedAt:   at,
		SerialNumbers: serialNumbers,
		Reason:        reason,
		Status:        StatusRequested,
	}, nil
}

// Approve marca la solicitud como aprobada. Solo válido desde Requested.
func (r *ReprintRequest) Approve(approvedBy string, at time.Time) error {
	if r.Status != StatusRequested {
		return &StateError{Action: "aprobar", Current: r.Status}
	}
	r.Status = StatusApproved
	r.ApprovedBy = approvedBy
	r.ApprovedAt = &at
	return nil
}

// Reject rechaza la solicitud. Solo válido desde Requested; deja estado terminal.
func (r *ReprintRequest) Reject(rejectedBy string, at time.Time) error {
	if r.Status != StatusRequested {
		return &StateError{Action: "rechazar", Current: r.Status}
	}
	r.Status = StatusRejected
	r.ApprovedBy = rejectedBy
	r.ApprovedAt = &at
	return nil
}

// MarkPrinted registra la impresión física. Solo válido desde Approved y únicamente
// después de que el despacho a la impresora confirmó éxito; deja estado terminal.
func (r *ReprintRequest) MarkPrinted(printedBy, printerID string, at time.Time) error {
	if r.Status != StatusApproved {
		return &StateError{Action: "imprimir", Current: r.Status}
	}
	r.Status = StatusPrinted
	r.PrintedBy = printedBy
	r.PrintedAt = &at
	r.PrinterID = printerID
	return nil
}
