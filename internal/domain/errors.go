package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrRejected          = errors.New("operación rechazada por el servidor")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
	ErrTransitionFailed  = errors.New("no se pudo actualizar el estado del envío")
	ErrMalformedPayload  = errors.New("respuesta con formato inesperado")
)
