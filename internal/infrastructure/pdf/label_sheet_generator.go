// Package pdf implementa la hoja de verificación visual de un lote de etiquetas:
// una página A4 con una fila por etiqueta (serial en Code128, cantidad y fechas)
// para revisar el lote confirmado antes de enviar mercancía con esas etiquetas.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// LabelSheetGenerator genera la hoja de etiquetas de una orden usando Maroto v2.
type LabelSheetGenerator struct{}

// NewLabelSheetGenerator construye el generador.
func NewLabelSheetGenerator() *LabelSheetGenerator { return &LabelSheetGenerator{} }

// GenerateLabelSheet genera el PDF y devuelve sus bytes.
func (g *LabelSheetGenerator) GenerateLabelSheet(
	_ context.Context,
	order *entity.ProductionOrderRef,
	labels []*entity.LabelSerial,
) ([]byte, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("pdf: la orden %s no tiene etiquetas confirmadas", order.OrderNo)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de etiquetas "+order.OrderNo, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order, len(labels)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, l := range labels {
		m.AddRows(labelRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: orden + item/lote (izq) y cliente + total de etiquetas (der).
func headerRow(order *entity.ProductionOrderRef, count int) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Orden "+order.OrderNo, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(order.ItemCode+" / Lote "+order.LotNo, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(order.Customer, props.Text{
				Size: 10, Top: 1, Align: align.Right,
			}),
			text.New(fmt.Sprintf("%d etiquetas", count), props.Text{
				Size: 9, Top: 9, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

// labelRow: una fila por etiqueta con barcode del serial, cantidad y fechas.
func labelRow(l *entity.LabelSerial) core.Row {
	return row.New(22).Add(
		col.New(5).Add(
			code.NewBar(l.SerialNo, props.Barcode{Percent: 90, Center: true}),
		),
		col.New(3).Add(
			text.New(l.SerialNo, props.Text{Size: 7, Top: 2, Color: colorGray}),
			text.New("Seq "+fmt.Sprintf("%d", l.Sequence), props.Text{Size: 7, Top: 8, Color: colorGray}),
		),
		col.New(2).Add(
			text.New(l.Quantity.String(), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 5, Align: align.Right,
			}),
		),
		col.New(2).Add(
			text.New("F "+l.ManufactureDate.Format("2006-01-02"), props.Text{Size: 7, Top: 2, Align: align.Right}),
			text.New("V "+l.ExpiryDate.Format("2006-01-02"), props.Text{Size: 7, Top: 9, Align: align.Right}),
		),
	)
}

func footerRow(order *entity.ProductionOrderRef) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Total orden: %s %s / saldo restante: %s",
				order.TotalQuantity, order.UnitOfMeasure, order.RemainingQuantity),
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}
