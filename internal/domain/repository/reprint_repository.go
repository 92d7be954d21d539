package repository

import "github.com/jhoicas/Etiquetas-api/internal/domain/entity"

// ReprintRepository puerto de persistencia para solicitudes de reimpresión.
type ReprintRepository interface {
	// Create persiste la solicitud y marca sus seriales como "con solicitud
	// abierta" en la misma transacción. Si alguno de los seriales ya tiene una
	// solicitud abierta (Requested o Approved), falla con domain.ErrDuplicatePending.
	Create(req *entity.ReprintRequest) error
	GetByID(id string) (*entity.ReprintRequest, error)
	// UpdateStatus persiste la transición ya aplicada a req, con guarda
	// optimista sobre el estado previo esperado: si la fila ya no está en
	// expected (otro actor se adelantó), falla con domain.ErrConflict sin
	// tocar nada. Al pasar a un estado terminal libera los seriales abiertos.
	UpdateStatus(req *entity.ReprintRequest, expected entity.RequestStatus) error
	ListByStatus(status entity.RequestStatus, limit, offset int) ([]*entity.ReprintRequest, error)
}
