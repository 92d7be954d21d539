package reprint_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/application/reprint"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fakeReprintRepo replica los dos contratos clave de la
// persistencia real: un serial con solicitud abierta (Requested o Approved)
// bloquea nuevas solicitudes, y UpdateStatus falla con ErrConflict si el estado
// en el almacén ya no es el esperado.
// ──────────────────────────────────────────────────────────────────────────────

type fakeReprintRepo struct {
	requests map[string]*entity.ReprintRequest
	open     map[string]string // serial -> request con solicitud abierta
}

func newFakeReprintRepo() *fakeReprintRepo {
	return &fakeReprintRepo{
		requests: make(map[string]*entity.ReprintRequest),
		open:     make(map[string]string),
	}
}

func (r *fakeReprintRepo) Create(req *entity.ReprintRequest) error {
	for _, s := range req.SerialNumbers {
		if _, ok := r.open[s]; ok {
			return domain.ErrDuplicatePending
		}
	}
	for _, s := range req.SerialNumbers {
		r.open[s] = req.ID
	}
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *fakeReprintRepo) GetByID(id string) (*entity.ReprintRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeReprintRepo) UpdateStatus(req *entity.ReprintRequest, expected entity.RequestStatus) error {
	stored, ok := r.requests[req.ID]
	if !ok || stored.Status != expected {
		return domain.ErrConflict
	}
	cp := *req
	r.requests[req.ID] = &cp
	if req.Status.IsTerminal() {
		for _, s := range req.SerialNumbers {
			delete(r.open, s)
		}
	}
	return nil
}

func (r *fakeReprintRepo) ListByStatus(status entity.RequestStatus, limit, offset int) ([]*entity.ReprintRequest, error) {
	var out []*entity.ReprintRequest
	for _, req := range r.requests {
		if req.Status == status {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeLabelStore struct {
	labels map[string]*entity.LabelSerial
}

func newFakeLabelStore(serials ...string) *fakeLabelStore {
	s := &fakeLabelStore{labels: make(map[string]*entity.LabelSerial)}
	for i, sn := range serials {
		s.labels[sn] = &entity.LabelSerial{
			SerialNo: sn,
			OrderNo:  "OP-2026-001",
			Sequence: int64(i + 1),
			Quantity: decimal.RequireFromString("30"),
		}
	}
	return s
}

func (s *fakeLabelStore) ReserveSequences(orderNo, itemCode, lotNo string, count int) (int64, error) {
	return 0, fmt.Errorf("no aplica en este flujo")
}

func (s *fakeLabelStore) CreateBatch(batch []*entity.LabelSerial) error {
	return fmt.Errorf("no aplica en este flujo")
}

func (s *fakeLabelStore) ListByOrder(orderNo string) ([]*entity.LabelSerial, error) {
	return nil, nil
}

func (s *fakeLabelStore) ListBySerials(serialNos []string) ([]*entity.LabelSerial, error) {
	var out []*entity.LabelSerial
	for _, sn := range serialNos {
		if l, ok := s.labels[sn]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeLabelStore) CountCommitted(serialNos []string) (int, error) {
	n := 0
	for _, sn := range serialNos {
		if _, ok := s.labels[sn]; ok {
			n++
		}
	}
	return n, nil
}

type fakePrinters struct{ printers map[string]*entity.Printer }

func (p *fakePrinters) GetByID(id string) (*entity.Printer, error) {
	pr, ok := p.printers[id]
	if !ok {
		return nil, nil
	}
	return pr, nil
}

func (p *fakePrinters) ListActive() ([]*entity.Printer, error) { return nil, nil }

// fakeDispatcher falla las primeras failures llamadas y luego confirma.
type fakeDispatcher struct {
	failures int
	failWith error
	calls    int
}

func (d *fakeDispatcher) Dispatch(ctx context.Context, labels []*entity.LabelSerial, printer *entity.Printer) error {
	d.calls++
	if d.calls <= d.failures {
		if d.failWith != nil {
			return d.failWith
		}
		return fmt.Errorf("conexión rechazada")
	}
	return nil
}

// ── fixture ───────────────────────────────────────────────────────────────────

const (
	serialA = "OP-2026-001|SKU-HARINA-25|L-0315|1"
	serialB = "OP-2026-001|SKU-HARINA-25|L-0315|2"
)

type reprintFixture struct {
	uc         *reprint.ReprintUseCase
	repo       *fakeReprintRepo
	dispatcher *fakeDispatcher
}

func buildReprintUC(t *testing.T, retries int, dispatcher *fakeDispatcher) *reprintFixture {
	t.Helper()
	repo := newFakeReprintRepo()
	labelsStore := newFakeLabelStore(serialA, serialB)
	printers := &fakePrinters{printers: map[string]*entity.Printer{
		"printer-01": {ID: "printer-01", Name: "Zebra Bodega", Address: "10.0.0.50:9100", Active: true},
	}}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	uc := reprint.NewReprintUseCase(repo, labelsStore, printers, dispatcher, retries, log)
	return &reprintFixture{uc: uc, repo: repo, dispatcher: dispatcher}
}

func createRequest(t *testing.T, f *reprintFixture, serials ...string) *dto.ReprintResponse {
	t.Helper()
	resp, err := f.uc.Create(context.Background(), "user-solicitante", dto.CreateReprintRequest{
		SerialNumbers: serials,
		Reason:        "etiqueta dañada en bodega",
	})
	require.NoError(t, err)
	return resp
}

// ── Create ────────────────────────────────────────────────────────────────────

func TestCreate_SerialesConfirmados_QuedaRequested(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	resp := createRequest(t, f, serialA, serialB)

	assert.Equal(t, string(entity.StatusRequested), resp.Status)
	assert.Equal(t, "user-solicitante", resp.RequestedBy)
	assert.Len(t, resp.SerialNumbers, 2)
}

func TestCreate_SerialNoConfirmado_Rechazado(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	_, err := f.uc.Create(context.Background(), "u1", dto.CreateReprintRequest{
		SerialNumbers: []string{serialA, "OP-9999|X|L|1"},
		Reason:        "motivo",
	})
	assert.ErrorIs(t, err, domain.ErrSerialNotCommitted,
		"un serial sin etiqueta confirmada debe rechazar toda la solicitud")
}

func TestCreate_SerialConSolicitudAbierta_Duplicada(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	createRequest(t, f, serialA)

	_, err := f.uc.Create(context.Background(), "u2", dto.CreateReprintRequest{
		SerialNumbers: []string{serialA},
		Reason:        "otro motivo",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicatePending,
		"un serial con solicitud abierta no admite otra")
}

func TestCreate_TrasRechazo_SerialDisponibleDeNuevo(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	first := createRequest(t, f, serialA)

	_, err := f.uc.Reject(context.Background(), "user-aprobador", first.ID)
	require.NoError(t, err)

	// El rechazo es terminal y libera el serial
	second := createRequest(t, f, serialA)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreate_SinMotivo_EntradaInvalida(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	_, err := f.uc.Create(context.Background(), "u1", dto.CreateReprintRequest{
		SerialNumbers: []string{serialA},
		Reason:        "  ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Approve / Reject ──────────────────────────────────────────────────────────

func TestApprove_Requested_QuedaApproved(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	created := createRequest(t, f, serialA)

	resp, err := f.uc.Approve(context.Background(), "user-aprobador", created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusApproved), resp.Status)
	assert.Equal(t, "user-aprobador", resp.ApprovedBy)
}

func TestApprove_YaAprobada_StateError(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	created := createRequest(t, f, serialA)
	_, err := f.uc.Approve(context.Background(), "a1", created.ID)
	require.NoError(t, err)

	_, err = f.uc.Approve(context.Background(), "a2", created.ID)
	var stateErr *entity.StateError
	assert.ErrorAs(t, err, &stateErr, "aprobar dos veces debe fallar por estado")
}

func TestApprove_Inexistente_NotFound(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	_, err := f.uc.Approve(context.Background(), "a1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Print ─────────────────────────────────────────────────────────────────────

func TestPrint_Aprobada_DespachaYQuedaPrinted(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	created := createRequest(t, f, serialA, serialB)
	_, err := f.uc.Approve(context.Background(), "a1", created.ID)
	require.NoError(t, err)

	resp, err := f.uc.Print(context.Background(), "user-impresor", created.ID, dto.PrintReprintRequest{PrinterID: "printer-01"})
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusPrinted), resp.Status)
	assert.Equal(t, "user-impresor", resp.PrintedBy)
	assert.Equal(t, "printer-01", resp.PrinterID)
	assert.Equal(t, 1, f.dispatcher.calls, "un despacho exitoso no debe reintentarse")
}

func TestPrint_SinAprobacion_StateError(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	created := createRequest(t, f, serialA)

	_, err := f.uc.Print(context.Background(), "i1", created.ID, dto.PrintReprintRequest{PrinterID: "printer-01"})
	var stateErr *entity.StateError
	require.ErrorAs(t, err, &stateErr, "imprimir exige aprobación previa")
	assert.Equal(t, 0, f.dispatcher.calls, "no debe despacharse nada sin aprobación")
}

func TestPrint_DespachoFalla_QuedaApprovedYReintentable(t *testing.T) {
	// El dispatcher falla siempre (más intentos de los configurados)
	f := buildReprintUC(t, 1, &fakeDispatcher{failures: 10})
	created := createRequest(t, f, serialA)
	_, err := f.uc.Approve(context.Background(), "a1", created.ID)
	require.NoError(t, err)

	_, err = f.uc.Print(context.Background(), "i1", created.ID, dto.PrintReprintRequest{PrinterID: "printer-01"})
	require.ErrorIs(t, err, domain.ErrDispatchFailed)
	assert.Equal(t, 2, f.dispatcher.calls, "1 intento + 1 reintento configurado")

	// La solicitud sigue en Approved: reintentable sin nueva aprobación
	current, err := f.uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusApproved), current.Status)

	// Segundo Print: ahora el dispatcher ya "se recuperó"
	f.dispatcher.failures = 0
	f.dispatcher.calls = 0
	resp, err := f.uc.Print(context.Background(), "i1", created.ID, dto.PrintReprintRequest{PrinterID: "printer-01"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusPrinted), resp.Status)
}

func TestPrint_TimeoutDeImpresora_ErrorTipado(t *testing.T) {
	timeoutErr := fmt.Errorf("%w: sin respuesta de 10.0.0.50:9100", domain.ErrPrinterTimeout)
	f := buildReprintUC(t, 0, &fakeDispatcher{failures: 10, failWith: timeoutErr})
	created := createRequest(t, f, serialA)
	_, err := f.uc.Approve(context.Background(), "a1", created.ID)
	require.NoError(t, err)

	_, err = f.uc.Print(context.Background(), "i1", created.ID, dto.PrintReprintRequest{PrinterID: "printer-01"})
	assert.ErrorIs(t, err, domain.ErrPrinterTimeout,
		"el timeout debe pasar tipado, no envuelto como fallo genérico")
}

func TestPrint_ReintentoIntermedio_Exitoso(t *testing.T) {
	// Falla el primer intento, el reintento confirma
	f := buildReprintUC(t, 2, &fakeDispatcher{failures: 1})
	created := createRequest(t, f, serialA)
	_, err := f.uc.Approve(context.Background(), "a1", created.ID)
	require.NoError(t, err)

	resp, err := f.uc.Print(context.Background(), "i1", created.ID, dto.PrintReprintRequest{PrinterID: "printer-01"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusPrinted), resp.Status)
	assert.Equal(t, 2, f.dispatcher.calls)
}

func TestPrint_ImpresoraInexistente_NotFound(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	created := createRequest(t, f, serialA)
	_, err := f.uc.Approve(context.Background(), "a1", created.ID)
	require.NoError(t, err)

	_, err = f.uc.Print(context.Background(), "i1", created.ID, dto.PrintReprintRequest{PrinterID: "printer-fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── ListByStatus ──────────────────────────────────────────────────────────────

func TestListByStatus_EstadoDesconocido_EntradaInvalida(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	_, err := f.uc.ListByStatus("PENDIENTE", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListByStatus_FiltraPorEstado(t *testing.T) {
	f := buildReprintUC(t, 0, &fakeDispatcher{})
	r1 := createRequest(t, f, serialA)
	createRequest(t, f, serialB)
	_, err := f.uc.Approve(context.Background(), "a1", r1.ID)
	require.NoError(t, err)

	requested, err := f.uc.ListByStatus(string(entity.StatusRequested), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, requested, 1)

	approved, err := f.uc.ListByStatus(string(entity.StatusApproved), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, approved, 1)
	assert.Equal(t, r1.ID, approved[0].ID)
}
