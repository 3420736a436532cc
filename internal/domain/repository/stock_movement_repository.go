package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de stock (solo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByEntrada devuelve los movimientos registrados por una entrada, incluso si ya fue eliminada.
	ListByEntrada(ctx context.Context, entradaID int64) ([]*entity.StockMovement, error)
	// SumByProduct devuelve la suma de Quantity por producto.
	SumByProduct(ctx context.Context) (map[int64]int, error)
}
