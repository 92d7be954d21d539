package labels

import (
	"sync"
	"time"

	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DraftLine una línea del borrador: serial ya reservado más cantidad editable.
type DraftLine struct {
	SerialNo string
	Sequence int64
	Quantity decimal.Decimal
}

// DraftBatch lote en edición previo a la confirmación. Valor explícito y
// serializable referenciado por su ID: cada paso del flujo recibe el handle en
// lugar de depender de estado ambiente de sesión.
type DraftBatch struct {
	ID             string
	Order          entity.ProductionOrderRef // snapshot al iniciar el borrador
	TargetQuantity decimal.Decimal           // saldo de la orden al momento de particionar
	Capacity       decimal.Decimal
	Lines          []DraftLine
	CreatedBy      string
	CreatedAt      time.Time
}

// Quantities devuelve las cantidades de las líneas en orden (para el reconciliador).
func (d *DraftBatch) Quantities() []decimal.Decimal {
	qs := make([]decimal.Decimal, len(d.Lines))
	for i, l := range d.Lines {
		qs[i] = l.Quantity
	}
	return qs
}

// clone copia profunda del borrador (las líneas son el único estado compartible).
func (d *DraftBatch) clone() *DraftBatch {
	cp := *d
	cp.Lines = make([]DraftLine, len(d.Lines))
	copy(cp.Lines, d.Lines)
	return &cp
}

// DraftStore almacén en memoria de borradores. Los borradores son estado de
// sesión previo a la confirmación: no sobreviven un reinicio del servicio y los
// seriales reservados de un borrador abandonado simplemente quedan sin usar
// (el contador es monotónico, no exige continuidad en las etiquetas confirmadas).
//
// El valor interno nunca sale del store: Get devuelve una copia y las
// mutaciones pasan por Update bajo el lock de escritura. Dos peticiones
// concurrentes sobre el mismo borrador nunca comparten el slice de líneas.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*DraftBatch
}

// NewDraftStore construye el almacén vacío.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*DraftBatch)}
}

// Save guarda o reemplaza el borrador (copia defensiva del valor recibido).
func (s *DraftStore) Save(d *DraftBatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[d.ID] = d.clone()
}

// Get obtiene una copia del borrador por su handle. ErrNotFound si no existe.
// Mutar la copia no afecta el estado del store.
func (s *DraftStore) Get(id string) (*DraftBatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return d.clone(), nil
}

// Update aplica fn sobre el borrador bajo el lock de escritura y devuelve una
// copia del resultado. fn debe validar antes de mutar: si retorna error el
// borrador debe quedar como estaba. ErrNotFound si el borrador no existe.
func (s *DraftStore) Update(id string, fn func(d *DraftBatch) error) (*DraftBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := fn(d); err != nil {
		return nil, err
	}
	return d.clone(), nil
}

// Delete elimina el borrador (tras confirmar o descartar).
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
}
