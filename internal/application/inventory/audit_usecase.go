package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// AuditUseCase compara el stock materializado de cada producto inventariado con la suma
// de su libro de stock. No corrige nada: solo informa.
type AuditUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	log         *logger.Logger
}

// NewAuditUseCase construye el caso de uso de auditoría.
func NewAuditUseCase(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository, log *logger.Logger) *AuditUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditUseCase{productRepo: productRepo, movRepo: movRepo, log: log.Named("stock_audit")}
}

// AuditStock devuelve los productos cuyo stock no coincide con el libro.
func (uc *AuditUseCase) AuditStock(ctx context.Context) ([]dto.StockDriftDTO, error) {
	products, err := uc.productRepo.ListInventoried(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	sums, err := uc.movRepo.SumByProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("sumar libro: %w", err)
	}

	drifts := []dto.StockDriftDTO{}
	for _, p := range products {
		ledger := sums[p.ID]
		if ledger == p.Stock {
			continue
		}
		d := dto.StockDriftDTO{
			ProductID:   p.ID,
			ProductName: p.Name,
			Stock:       p.Stock,
			LedgerStock: ledger,
			Difference:  p.Stock - ledger,
		}
		uc.log.Warn().
			Int64("product_id", d.ProductID).
			Int("stock", d.Stock).
			Int("ledger_stock", d.LedgerStock).
			Msg("stock no coincide con el libro")
		drifts = append(drifts, d)
	}
	uc.log.Info().Int("productos", len(products)).Int("diferencias", len(drifts)).Msg("auditoría de stock completada")
	return drifts, nil
}
