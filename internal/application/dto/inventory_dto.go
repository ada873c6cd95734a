package dto

import "github.com/jhoicas/stockly-web/internal/domain/entity"

// Mensajes del formulario de movimiento.
const (
	MsgMovementRequired = "Selecione um produto e informe a quantidade"
	MsgMovementSaveFail = "Erro ao registrar"
	MsgMovementBadType  = "Tipo de movimentação inválido"
)

// MovementQuery filtros de GET /api/movements. Los valores cero no se envían.
type MovementQuery struct {
	ProductID int64
	Type      entity.MovementType
	Limit     int
}

// MovementCreate cuerpo de POST /api/movements.
type MovementCreate struct {
	ProductID int64
	Type      entity.MovementType
	Quantity  int
	Notes     *string
}

// MovementFormInput valores del modal "Nova Movimentação".
type MovementFormInput struct {
	ProductID int64
	Type      entity.MovementType
	Quantity  int
	Notes     string
}

// NewMovementFormInput valores iniciales: primer producto del catálogo, entrada, cantidad 1.
func NewMovementFormInput(products []entity.Product) MovementFormInput {
	in := MovementFormInput{Type: entity.MovementEntrada, Quantity: 1}
	if len(products) > 0 {
		in.ProductID = products[0].ID
	}
	return in
}

// Validate exige producto, cantidad positiva y un tipo conocido (entrada o saida, en
// minúsculas); si falla no se hace ninguna petición.
func (in MovementFormInput) Validate() *FormError {
	if in.ProductID == 0 || in.Quantity <= 0 {
		return NewFormError(MsgMovementRequired)
	}
	if !in.Type.Valid() {
		return NewFormError(MsgMovementBadType)
	}
	return nil
}

// ToCreate convierte el formulario en el cuerpo de creación. El tipo viaja tal cual.
func (in MovementFormInput) ToCreate() MovementCreate {
	out := MovementCreate{ProductID: in.ProductID, Type: in.Type, Quantity: in.Quantity}
	if in.Notes != "" {
		n := in.Notes
		out.Notes = &n
	}
	return out
}
