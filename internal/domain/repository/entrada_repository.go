package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// EntradaFilter rango opcional (inclusive) sobre fecha_entrada.
type EntradaFilter struct {
	From *time.Time
	To   *time.Time
}

// EntradaRepository define el puerto de persistencia para Entrada y sus líneas.
type EntradaRepository interface {
	Create(ctx context.Context, entrada *entity.Entrada) error
	GetByID(ctx context.Context, id int64) (*entity.Entrada, error)
	// Update actualiza la cabecera (fecha); el total se recalcula con CalculateInvoice.
	Update(ctx context.Context, entrada *entity.Entrada) error
	// Delete elimina la cabecera; las líneas se eliminan en cascada.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f EntradaFilter) ([]*entity.Entrada, error)

	CreateDetail(ctx context.Context, detail *entity.EntradaInsumo) error
	DeleteDetails(ctx context.Context, entradaID int64) error
	// GetDetails devuelve las líneas con su producto (join) cargado.
	GetDetails(ctx context.Context, entradaID int64) ([]*entity.EntradaInsumo, error)
	// CalculateInvoice recalcula total = SUM(subtotal) de las líneas actuales y lo persiste.
	CalculateInvoice(ctx context.Context, entradaID int64) (decimal.Decimal, error)
	// MonthlyTotals suma los totales por mes (índice 0 = enero) del año dado.
	MonthlyTotals(ctx context.Context, year int) ([12]decimal.Decimal, error)
}
