package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso los envuelven con fmt.Errorf("%w: ...") para dar detalle;
// los handlers HTTP los distinguen con errors.Is.
var (
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrValidation = errors.New("validación fallida")
)
