package entrada

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; en otro caso Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		entradaRepo repository.EntradaRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// EntradaPDFGenerator genera el documento PDF de una entrada.
// Vive en la capa de aplicación; la implementación concreta está en infrastructure/pdf.
type EntradaPDFGenerator interface {
	Generate(company *entity.Company, entrada *entity.Entrada, items []*entity.EntradaInsumo) ([]byte, error)
}
