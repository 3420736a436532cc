package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// DashboardUseCase datos del tablero: totales mensuales de entradas y stock bajo.
type DashboardUseCase struct {
	entradaRepo       repository.EntradaRepository
	productRepo       repository.ProductRepository
	lowStockThreshold int
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(entradaRepo repository.EntradaRepository, productRepo repository.ProductRepository, lowStockThreshold int) *DashboardUseCase {
	return &DashboardUseCase{entradaRepo: entradaRepo, productRepo: productRepo, lowStockThreshold: lowStockThreshold}
}

// Get devuelve el tablero del año indicado; year 0 = año actual.
func (uc *DashboardUseCase) Get(ctx context.Context, year int) (*dto.DashboardResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	if year < 2000 || year > 9999 {
		return nil, domain.NewValidationError("year", "año inválido")
	}
	totals, err := uc.entradaRepo.MonthlyTotals(ctx, year)
	if err != nil {
		return nil, err
	}
	low, err := uc.productRepo.ListLowStock(ctx, uc.lowStockThreshold, 20)
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardResponse{
		Year:          year,
		MonthlyTotals: totals[:],
		LowStock:      make([]dto.ProductResponse, 0, len(low)),
	}
	for _, p := range low {
		out.LowStock = append(out.LowStock, dto.NewProductResponse(p))
	}
	return out, nil
}
