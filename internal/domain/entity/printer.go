package entity

import "time"

// Printer identidad de una impresora de etiquetas registrada (registro de impresoras).
type Printer struct {
	ID        string
	Name      string
	Address   string // host:puerto TCP (típicamente :9100)
	DPI       int
	Active    bool
	CreatedAt time.Time
}
