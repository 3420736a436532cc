package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ProductSearch filtro de los buscadores de productos (typeahead).
// Solo devuelve productos disponibles: stock > 0 o no inventariados.
type ProductSearch struct {
	Term       string  // subcadena del nombre, sin distinguir mayúsculas; vacío = sin filtro
	ExcludeIDs []int64 // productos ya agregados en la pantalla
	Limit      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock fija el stock materializado. Solo lo usa el libro de stock.
	UpdateStock(ctx context.Context, id int64, stock int) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListInventoried(ctx context.Context) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error)
	Search(ctx context.Context, f ProductSearch) ([]*entity.Product, error)
	Delete(ctx context.Context, id int64) error
}
