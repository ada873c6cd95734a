package repository

import (
	"context"

	"github.com/jhoicas/stockly-web/internal/application/dto"
	"github.com/jhoicas/stockly-web/internal/domain/entity"
)

// MovementRepository puerto para movimientos de estoque. Crear un movimiento ajusta
// atómicamente la cantidad del producto en el servicio.
type MovementRepository interface {
	ListMovements(ctx context.Context, q dto.MovementQuery) (*entity.MovementPage, error)
	CreateMovement(ctx context.Context, in dto.MovementCreate) (*entity.Movement, error)
}
