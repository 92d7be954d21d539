package labels

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Etiquetas-api/internal/application/dto"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/label"
	"github.com/jhoicas/Etiquetas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// LabelingUseCase ciclo de vida del lote de etiquetas: partición del saldo de la
// orden, reserva atómica de seriales, edición reconciliada de cantidades y
// confirmación transaccional.
type LabelingUseCase struct {
	orderRepo   repository.OrderRepository
	labelRepo   repository.LabelRepository
	printerRepo repository.PrinterRepository
	txRunner    TxRunner
	drafts      *DraftStore
}

// NewLabelingUseCase construye el caso de uso.
func NewLabelingUseCase(
	orderRepo repository.OrderRepository,
	labelRepo repository.LabelRepository,
	printerRepo repository.PrinterRepository,
	txRunner TxRunner,
	drafts *DraftStore,
) *LabelingUseCase {
	return &LabelingUseCase{
		orderRepo:   orderRepo,
		labelRepo:   labelRepo,
		printerRepo: printerRepo,
		txRunner:    txRunner,
		drafts:      drafts,
	}
}

// StartDraft particiona el saldo restante de la orden en etiquetas según la
// capacidad dada, reserva las secuencias contra el contador de seriales y deja
// el borrador listo para edición.
func (uc *LabelingUseCase) StartDraft(ctx context.Context, userID string, in dto.StartDraftRequest) (*dto.DraftResponse, error) {
	if in.OrderNo == "" {
		return nil, domain.ErrInvalidInput
	}

	order, err := uc.orderRepo.GetByNumber(in.OrderNo)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.RemainingQuantity.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrOrderExhausted
	}

	quantities, err := label.Partition(order.RemainingQuantity, in.LabelCapacity)
	if err != nil {
		return nil, err
	}

	// Reserva atómica del rango de secuencias en la capa de persistencia:
	// dos sesiones concurrentes sobre la misma clave reciben rangos disjuntos.
	last, err := uc.labelRepo.ReserveSequences(order.OrderNo, order.ItemCode, order.LotNo, len(quantities))
	if err != nil {
		return nil, fmt.Errorf("reservar secuencias: %w", err)
	}
	start := last - int64(len(quantities)) + 1

	lines := make([]DraftLine, len(quantities))
	for i, q := range quantities {
		seq := start + int64(i)
		lines[i] = DraftLine{
			SerialNo: entity.FormatSerial(order.OrderNo, order.ItemCode, order.LotNo, seq),
			Sequence: seq,
			Quantity: q,
		}
	}

	draft := &DraftBatch{
		ID:             uuid.New().String(),
		Order:          *order,
		TargetQuantity: order.RemainingQuantity,
		Capacity:       in.LabelCapacity,
		Lines:          lines,
		CreatedBy:      userID,
		CreatedAt:      time.Now(),
	}
	uc.drafts.Save(draft)

	return toDraftResponse(draft), nil
}

// GetDraft devuelve el borrador por handle.
func (uc *LabelingUseCase) GetDraft(draftID string) (*dto.DraftResponse, error) {
	draft, err := uc.drafts.Get(draftID)
	if err != nil {
		return nil, err
	}
	return toDraftResponse(draft), nil
}

// EditQuantity aplica una edición de cantidad sobre una línea del borrador.
// La edición que haría exceder el total objetivo se rechaza de inmediato con la
// discrepancia calculada. Validación y mutación ocurren bajo el lock de
// escritura del store: ediciones concurrentes sobre el mismo borrador se
// serializan y ninguna lectura observa un estado a medio escribir.
func (uc *LabelingUseCase) EditQuantity(draftID string, lineIdx int, newQty decimal.Decimal) (*dto.DraftResponse, error) {
	draft, err := uc.drafts.Update(draftID, func(d *DraftBatch) error {
		if err := label.CheckEdit(d.Quantities(), lineIdx, newQty, d.TargetQuantity); err != nil {
			return err
		}
		d.Lines[lineIdx].Quantity = newQty
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDraftResponse(draft), nil
}

// CommitDraft confirma el lote: valida precondiciones (reconciliación dentro de
// tolerancia, fechas presentes y coherentes, impresora existente) y persiste en
// una sola transacción las etiquetas más el descuento del saldo de la orden.
// Si la transacción falla no queda nada parcialmente persistido y el borrador
// sigue disponible para reintentar.
func (uc *LabelingUseCase) CommitDraft(ctx context.Context, userID, draftID string, in dto.CommitDraftRequest) ([]dto.LabelDTO, error) {
	draft, err := uc.drafts.Get(draftID)
	if err != nil {
		return nil, err
	}
	if len(draft.Lines) == 0 {
		return nil, fmt.Errorf("%w: el borrador no tiene etiquetas", domain.ErrInvalidInput)
	}

	if err := label.Reconcile(draft.Quantities(), draft.TargetQuantity); err != nil {
		return nil, err
	}

	if in.ManufactureDate == "" || in.ExpiryDate == "" {
		return nil, fmt.Errorf("%w: fecha de fabricación y de vencimiento son obligatorias", domain.ErrInvalidInput)
	}
	mfgDate, err := time.Parse("2006-01-02", in.ManufactureDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de fabricación inválida", domain.ErrInvalidInput)
	}
	expDate, err := time.Parse("2006-01-02", in.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de vencimiento inválida", domain.ErrInvalidInput)
	}
	if !expDate.After(mfgDate) {
		return nil, fmt.Errorf("%w: el vencimiento debe ser posterior a la fabricación", domain.ErrInvalidInput)
	}

	if in.PrinterID == "" {
		return nil, fmt.Errorf("%w: debe seleccionar una impresora", domain.ErrInvalidInput)
	}
	printer, err := uc.printerRepo.GetByID(in.PrinterID)
	if err != nil {
		return nil, err
	}
	if printer == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	batch := make([]*entity.LabelSerial, len(draft.Lines))
	total := decimal.Zero
	for i, line := range draft.Lines {
		batch[i] = &entity.LabelSerial{
			SerialNo:        line.SerialNo,
			OrderNo:         draft.Order.OrderNo,
			ItemCode:        draft.Order.ItemCode,
			LotNo:           draft.Order.LotNo,
			Sequence:        line.Sequence,
			Quantity:        line.Quantity,
			ManufactureDate: mfgDate,
			ExpiryDate:      expDate,
			PrinterID:       printer.ID,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		total = total.Add(line.Quantity)
	}

	// Inserta el lote y descuenta el saldo de la orden: Commit si todo ok,
	// Rollback si algo falla (TxRunner.Run lo hace).
	err = uc.txRunner.Run(ctx, func(
		labelRepo repository.LabelRepository,
		orderRepo repository.OrderRepository,
	) error {
		if err := labelRepo.CreateBatch(batch); err != nil {
			return err
		}
		return orderRepo.DecrementRemaining(draft.Order.OrderNo, total)
	})
	if err != nil {
		return nil, err
	}

	uc.drafts.Delete(draftID)

	out := make([]dto.LabelDTO, len(batch))
	for i, l := range batch {
		out[i] = toLabelDTO(l)
	}
	return out, nil
}

// ListByOrder lista las etiquetas confirmadas de una orden.
func (uc *LabelingUseCase) ListByOrder(orderNo string) ([]dto.LabelDTO, error) {
	labelsList, err := uc.labelRepo.ListByOrder(orderNo)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LabelDTO, len(labelsList))
	for i, l := range labelsList {
		out[i] = toLabelDTO(l)
	}
	return out, nil
}

// OrderWithLabels devuelve la orden y sus etiquetas confirmadas (para la hoja PDF).
func (uc *LabelingUseCase) OrderWithLabels(orderNo string) (*entity.ProductionOrderRef, []*entity.LabelSerial, error) {
	order, err := uc.orderRepo.GetByNumber(orderNo)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	labelsList, err := uc.labelRepo.ListByOrder(orderNo)
	if err != nil {
		return nil, nil, err
	}
	return order, labelsList, nil
}

func toDraftResponse(d *DraftBatch) *dto.DraftResponse {
	lines := make([]dto.DraftLineDTO, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = dto.DraftLineDTO{SerialNo: l.SerialNo, Sequence: l.Sequence, Quantity: l.Quantity}
	}
	return &dto.DraftResponse{
		DraftID:        d.ID,
		OrderNo:        d.Order.OrderNo,
		ItemCode:       d.Order.ItemCode,
		LotNo:          d.Order.LotNo,
		Customer:       d.Order.Customer,
		UnitOfMeasure:  d.Order.UnitOfMeasure,
		TargetQuantity: d.TargetQuantity,
		Lines:          lines,
	}
}

func toLabelDTO(l *entity.LabelSerial) dto.LabelDTO {
	return dto.LabelDTO{
		SerialNo:        l.SerialNo,
		OrderNo:         l.OrderNo,
		ItemCode:        l.ItemCode,
		LotNo:           l.LotNo,
		Sequence:        l.Sequence,
		Quantity:        l.Quantity,
		ManufactureDate: l.ManufactureDate,
		ExpiryDate:      l.ExpiryDate,
		PrinterID:       l.PrinterID,
		CreatedAt:       l.CreatedAt,
	}
}
