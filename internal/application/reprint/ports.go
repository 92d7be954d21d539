package reprint

import (
	"context"

	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

// Dispatcher colaborador externo que emite el trabajo de impresión física.
// Debe ser idempotente desde el punto de vista del flujo: un fallo deja la
// solicitud en su estado previo y el despacho puede reintentarse tal cual.
// Un timeout se reporta envolviendo domain.ErrPrinterTimeout, distinto de un
// rechazo de regla de negocio.
type Dispatcher interface {
	Dispatch(ctx context.Context, labels []*entity.LabelSerial, printer *entity.Printer) error
}
