// Package printer implementa el despacho de trabajos de impresión a impresoras
// de etiquetas en red. El protocolo es el habitual de las impresoras térmicas
// industriales: payload ZPL crudo escrito sobre TCP (puerto 9100).
package printer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jhoicas/Etiquetas-api/internal/application/reprint"
	"github.com/jhoicas/Etiquetas-api/internal/domain"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
)

var _ reprint.Dispatcher = (*TCPDispatcher)(nil)

// TCPDispatcher despacha trabajos escribiendo ZPL sobre TCP con timeout por intento.
// Un timeout de red se reporta como domain.ErrPrinterTimeout, distinguible de un
// rechazo de regla de negocio; el caller decide si reintenta.
type TCPDispatcher struct {
	timeout time.Duration
}

// NewTCPDispatcher construye el despachador con el timeout por intento.
func NewTCPDispatcher(timeout time.Duration) *TCPDispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &TCPDispatcher{timeout: timeout}
}

// Dispatch envía el trabajo completo (todas las etiquetas) a la impresora.
// El envío es idempotente desde el punto de vista del flujo: si falla, no se
// avanzó ningún estado y puede repetirse tal cual.
func (d *TCPDispatcher) Dispatch(ctx context.Context, labels []*entity.LabelSerial, p *entity.Printer) error {
	if len(labels) == 0 {
		return fmt.Errorf("%w: trabajo sin etiquetas", domain.ErrInvalidInput)
	}
	payload := buildZPL(labels)

	dialer := &net.Dialer{Timeout: d.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		return d.classify(fmt.Errorf("conectar a impresora %s (%s): %w", p.Name, p.Address, err))
	}
	defer conn.Close()

	if err := conn.SetWriteDeadline(time.Now().Add(d.timeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if _, err := conn.Write([]byte(payload)); err != nil {
		return d.classify(fmt.Errorf("escribir trabajo a impresora %s: %w", p.Name, err))
	}
	return nil
}

// classify envuelve los timeouts de red en ErrPrinterTimeout.
func (d *TCPDispatcher) classify(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s", domain.ErrPrinterTimeout, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrPrinterTimeout, err.Error())
	}
	return err
}

// buildZPL arma el payload ZPL del trabajo: un formato ^XA..^XZ por etiqueta con
// el serial en Code128, la cantidad y las fechas.
func buildZPL(labels []*entity.LabelSerial) string {
	var b strings.Builder
	for _, l := range labels {
		b.WriteString("^XA\n")
		b.WriteString("^FO30,30^A0N,28,28^FD" + l.ItemCode + " / " + l.LotNo + "^FS\n")
		b.WriteString("^FO30,70^BY2^BCN,90,Y,N,N^FD" + l.SerialNo + "^FS\n")
		b.WriteString("^FO30,190^A0N,24,24^FDCant: " + l.Quantity.String() + "^FS\n")
		b.WriteString("^FO30,220^A0N,22,22^FDFab: " + l.ManufactureDate.Format("2006-01-02") +
			"  Ven: " + l.ExpiryDate.Format("2006-01-02") + "^FS\n")
		b.WriteString("^XZ\n")
	}
	return b.String()
}
