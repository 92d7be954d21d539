package repository

import "github.com/jhoicas/Etiquetas-api/internal/domain/entity"

// LabelRepository puerto de persistencia para etiquetas confirmadas y el contador de seriales.
type LabelRepository interface {
	// ReserveSequences reserva atómicamente count secuencias para la clave
	// orden/item/lote y retorna la última reservada. Dos sesiones concurrentes
	// sobre la misma clave nunca reciben rangos solapados: la reserva vive en la
	// capa de persistencia, no se calcula leyendo y sumando en el cliente.
	ReserveSequences(orderNo, itemCode, lotNo string, count int) (last int64, err error)
	// CreateBatch inserta el lote completo de etiquetas. Se usa dentro de la
	// transacción de confirmación: o entran todas o ninguna.
	CreateBatch(labels []*entity.LabelSerial) error
	ListByOrder(orderNo string) ([]*entity.LabelSerial, error)
	ListBySerials(serialNos []string) ([]*entity.LabelSerial, error)
	// CountCommitted cuenta cuántos de los seriales dados corresponden a
	// etiquetas ya confirmadas.
	CountCommitted(serialNos []string) (int, error)
}
