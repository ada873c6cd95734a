package dto

import "errors"

// FormError mensaje mostrado dentro de un modal (validación local o fallo de envío).
type FormError struct {
	Message string
}

// NewFormError construye un FormError.
func NewFormError(msg string) *FormError {
	return &FormError{Message: msg}
}

func (e *FormError) Error() string { return e.Message }

// ServiceDetailer lo implementan los errores que transportan el "detail" del servicio.
type ServiceDetailer interface {
	ServiceDetail() (string, bool)
}

// FormErrorFrom normaliza un fallo de envío: el detail del servicio tal cual si existe,
// si no el mensaje genérico fallback.
func FormErrorFrom(err error, fallback string) *FormError {
	if err == nil {
		return nil
	}
	var fe *FormError
	if errors.As(err, &fe) {
		return fe
	}
	var sd ServiceDetailer
	if errors.As(err, &sd) {
		if detail, ok := sd.ServiceDetail(); ok {
			return NewFormError(detail)
		}
	}
	return NewFormError(fallback)
}
