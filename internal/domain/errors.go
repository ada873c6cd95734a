package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrNotConfirmed = errors.New("operación no confirmada")
	ErrFormClosed   = errors.New("formulario no está abierto")
)
