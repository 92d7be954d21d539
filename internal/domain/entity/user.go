package entity

import "time"

// Roles de actor del flujo de reimpresión. Admin puede actuar en cualquier paso.
const (
	RoleAdmin       = "admin"
	RoleSolicitante = "solicitante" // crea solicitudes de reimpresión
	RoleAprobador   = "aprobador"   // aprueba o rechaza
	RoleImpresor    = "impresor"    // ejecuta la impresión física
)

// User usuario de la consola de operaciones.
type User struct {
	ID           string
	PlantID      string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
