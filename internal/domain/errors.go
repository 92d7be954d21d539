package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrOrderExhausted     = errors.New("saldo restante de la orden insuficiente")
	ErrSerialNotCommitted = errors.New("el serial no corresponde a una etiqueta impresa")
	ErrDuplicatePending   = errors.New("ya existe una solicitud de reimpresión abierta para el serial")
	ErrPrinterTimeout     = errors.New("timeout comunicando con la impresora")
	ErrDispatchFailed     = errors.New("el despacho a la impresora falló")
)
