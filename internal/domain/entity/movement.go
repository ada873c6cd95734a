package entity

import (
	"strconv"
	"time"
)

// MovementType tipo de movimiento de estoque.
type MovementType string

// Tipos de movimiento.
const (
	MovementEntrada MovementType = "entrada" // entrada: aumenta el stock
	MovementSaida   MovementType = "saida"   // saída: disminuye el stock
)

// Valid indica si t es un tipo conocido.
func (t MovementType) Valid() bool {
	return t == MovementEntrada || t == MovementSaida
}

// Label texto para la interfaz.
func (t MovementType) Label() string {
	if t == MovementEntrada {
		return "Entrada"
	}
	return "Saída"
}

// Sign "+" para entradas, "-" para saídas.
func (t MovementType) Sign() string {
	if t == MovementEntrada {
		return "+"
	}
	return "-"
}

// Movement movimiento registrado. Inmutable: el contrato no expone update ni delete.
type Movement struct {
	ID          int64
	ProductID   int64
	ProductName *string // snapshot desnormalizado; el servicio puede devolver null
	Type        MovementType
	Quantity    int
	Notes       *string
	CreatedAt   time.Time
}

// DisplayProduct nombre del producto o "#<id>" si el servicio no lo envió.
func (m Movement) DisplayProduct() string {
	if m.ProductName != nil && *m.ProductName != "" {
		return *m.ProductName
	}
	return "#" + strconv.FormatInt(m.ProductID, 10)
}

// MovementPage lista de movimientos con el total del filtro.
type MovementPage struct {
	Data  []Movement
	Total int
}
