package stocklyapi

import (
	"fmt"
	"net/http"

	"github.com/jhoicas/stockly-web/internal/domain"
)

// Kind clasifica un fallo de la capa de cliente.
type Kind int

const (
	// KindTransport fallo de red: conexión rechazada, DNS, cuerpo cortado, contexto cancelado.
	KindTransport Kind = iota + 1
	// KindService el servicio respondió con un status distinto de 2xx.
	KindService
	// KindDecode respuesta 2xx que no respeta el contrato.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindService:
		return "service"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error resultado fallido de una llamada al servicio. Detail sólo se llena cuando el cuerpo
// de error trae {"detail": "<string>"}.
type Error struct {
	Kind   Kind
	Op     string // ej: "GET /api/products"
	Status int    // 0 si no hubo respuesta
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Kind == KindService:
		return fmt.Sprintf("stocklyapi: %s: HTTP %d %s", e.Op, e.Status, http.StatusText(e.Status))
	case e.Err != nil:
		return fmt.Sprintf("stocklyapi: %s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("stocklyapi: %s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ServiceDetail devuelve el detail estructurado del servicio, si existe.
func (e *Error) ServiceDetail() (string, bool) {
	if e.Kind == KindService && e.Detail != "" {
		return e.Detail, true
	}
	return "", false
}

// NotFound indica un 404 del servicio.
func (e *Error) NotFound() bool {
	return e.Kind == KindService && e.Status == http.StatusNotFound
}

// Is hace que errors.Is(err, domain.ErrNotFound) reconozca un 404 del servicio.
func (e *Error) Is(target error) bool {
	return target == domain.ErrNotFound && e.NotFound()
}
