package reprint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/repository"
	"github.com/jhoicas/Etiquetas-api/pkg/logger"
)

// ReprintUseCase flujo de aprobación de reimpresiones sobre seriales ya
// confirmados: Requested -> {Approved, Rejected}; Approved -> Printed.
// El despacho a la impresora y la transición a Printed son pasos separados:
// la solicitud solo avanza cuando la impresora confirmó, y un fallo de
// despacho la deja en Approved, reintentable sin nueva aprobación.
type ReprintUseCase struct {
	reprintRepo repository.ReprintRepository
	labelRepo   repository.LabelRepository
	printerRepo repository.PrinterRepository
	dispatcher  Dispatcher
	retries     int // reintentos acotados solo sobre el despacho
	log         *logger.Logger
}

// NewReprintUseCase construye el caso de uso.
func NewReprintUseCase(
	reprintRepo repository.ReprintRepository,
	labelRepo repository.LabelRepository,
	printerRepo repository.PrinterRepository,
	dispatcher Dispatcher,
	retries int,
	log *logger.Logger,
) *ReprintUseCase {
	if retries < 0 {
		retries = 0
	}
	return &ReprintUseCase{
		reprintRepo: reprintRepo,
		labelRepo:   labelRepo,
		printerRepo: printerRepo,
		dispatcher:  dispatcher,
		retries:     retries,
		log:         log,
	}
}

// Create registra una solicitud de reimpresión en estado Requested.
// Todos los seriales deben corresponder a etiquetas confirmadas y ninguno puede
// tener otra solicitud abierta (Requested o Approved): la unicidad la garantiza
// la capa de persistencia, no una lectura previa.
func (uc *ReprintUseCase) Create(ctx context.Context, userID string, in dto.CreateReprintRequest) (*dto.ReprintResponse, error) {
	req, err := entity.NewReprintRequest(uuid.New().String(), userID, dedupe(in.SerialNumbers), in.Reason, time.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}

	committed, err := uc.labelRepo.CountCommitted(req.SerialNumbers)
	if err != nil {
		return nil, fmt.Errorf("verificar seriales: %w", err)
	}
	if committed != len(req.SerialNumbers) {
		return nil, domain.ErrSerialNotCommitted
	}

	if err := uc.reprintRepo.Create(req); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("request_id", req.ID).
		Str("requested_by", userID).
		Int("serials", len(req.SerialNumbers)).
		Msg("solicitud de reimpresión creada")
	return toReprintResponse(req), nil
}

// Approve transición Requested -> Approved por el aprobador.
func (uc *ReprintUseCase) Approve(ctx context.Context, approverID, requestID string) (*dto.ReprintResponse, error) {
	req, err := uc.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	if err := req.Approve(approverID, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.reprintRepo.UpdateStatus(req, entity.StatusRequested); err != nil {
		return nil, err
	}
	return toReprintResponse(req), nil
}

// Reject transición Requested -> Rejected (terminal); libera los seriales.
func (uc *ReprintUseCase) Reject(ctx context.Context, approverID, requestID string) (*dto.ReprintResponse, error) {
	req, err := uc.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	if err := req.Reject(approverID, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.reprintRepo.UpdateStatus(req, entity.StatusRequested); err != nil {
		return nil, err
	}
	return toReprintResponse(req), nil
}

// Print ejecuta una solicitud aprobada: despacha el trabajo a la impresora
// (con reintentos acotados) y solo tras la confirmación persiste la transición
// Approved -> Printed. Si todos los intentos de despacho fallan, la solicitud
// permanece en Approved y puede reintentarse sin nueva aprobación.
func (uc *ReprintUseCase) Print(ctx context.Context, actorID, requestID string, in dto.PrintReprintRequest) (*dto.ReprintResponse, error) {
	if in.PrinterID == "" {
		return nil, fmt.Errorf("%w: debe seleccionar una impresora", domain.ErrInvalidInput)
	}
	req, err := uc.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != entity.StatusApproved {
		return nil, &entity.StateError{Action: "imprimir", Current: req.Status}
	}

	printer, err := uc.printerRepo.GetByID(in.PrinterID)
	if err != nil {
		return nil, err
	}
	if printer == nil {
		return nil, domain.ErrNotFound
	}

	labelsList, err := uc.labelRepo.ListBySerials(req.SerialNumbers)
	if err != nil {
		return nil, fmt.Errorf("cargar etiquetas: %w", err)
	}
	if len(labelsList) != len(req.SerialNumbers) {
		return nil, domain.ErrSerialNotCommitted
	}

	if err := uc.dispatchWithRetry(ctx, labelsList, printer, requestID); err != nil {
		// La solicitud queda en Approved: el despacho es reintentable.
		return nil, err
	}

	if err := req.MarkPrinted(actorID, printer.ID, time.Now()); err != nil {
		return nil, err
	}
	if err := uc.reprintRepo.UpdateStatus(req, entity.StatusApproved); err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("request_id", req.ID).
		Str("printer_id", printer.ID).
		Str("printed_by", actorID).
		Msg("reimpresión despachada y confirmada")
	return toReprintResponse(req), nil
}

// GetByID devuelve una solicitud.
func (uc *ReprintUseCase) GetByID(requestID string) (*dto.ReprintResponse, error) {
	req, err := uc.getRequest(requestID)
	if err != nil {
		return nil, err
	}
	return toReprintResponse(req), nil
}

// ListByStatus lista solicitudes por estado (colas de la consola).
func (uc *ReprintUseCase) ListByStatus(status string, page dto.PageRequest) ([]dto.ReprintResponse, error) {
	st := entity.RequestStatus(status)
	switch st {
	case entity.StatusRequested, entity.StatusApproved, entity.StatusRejected, entity.StatusPrinted:
	default:
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, status)
	}
	page.DefaultPage()
	reqs, err := uc.reprintRepo.ListByStatus(st, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReprintResponse, len(reqs))
	for i, r := range reqs {
		out[i] = *toReprintResponse(r)
	}
	return out, nil
}

func (uc *ReprintUseCase) getRequest(requestID string) (*entity.ReprintRequest, error) {
	req, err := uc.reprintRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// dispatchWithRetry reintenta el despacho hasta retries veces adicionales.
// Solo el despacho se reintenta; las transiciones de estado nunca.
func (uc *ReprintUseCase) dispatchWithRetry(ctx context.Context, labelsList []*entity.LabelSerial, printer *entity.Printer, requestID string) error {
	var lastErr error
	for attempt := 0; attempt <= uc.retries; attempt++ {
		lastErr = uc.dispatcher.Dispatch(ctx, labelsList, printer)
		if lastErr == nil {
			return nil
		}
		uc.log.Warn().
			Err(lastErr).
			Str("request_id", requestID).
			Str("printer_id", printer.ID).
			Int("attempt", attempt+1).
			Msg("despacho de reimpresión falló")
	}
	if errors.Is(lastErr, domain.ErrPrinterTimeout) {
		return lastErr
	}
	return fmt.Errorf("%w: %s", domain.ErrDispatchFailed, lastErr.Error())
}

func dedupe(serials []string) []string {
	seen := make(map[string]struct{}, len(serials))
	out := make([]string, 0, len(serials))
	for _, s := range serials {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func toReprintResponse(r *entity.ReprintRequest) *dto.ReprintResponse {
	return &dto.ReprintResponse{
		ID:            r.ID,
		RequestedBy:   r.RequestedBy,
		RequestedAt:   r.RequestedAt,
		SerialNumbers: r.SerialNumbers,
		Reason:        r.Reason,
		Status:        string(r.Status),
		ApprovedBy:    r.ApprovedBy,
		ApprovedAt:    r.ApprovedAt,
		PrintedBy:     r.PrintedBy,
		PrintedAt:     r.PrintedAt,
		PrinterID:     r.PrinterID,
	}
}
