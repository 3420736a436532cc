package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entrada representa la cabecera de una entrada de insumos al inventario.
// Total es siempre la suma de los subtotales de sus líneas actuales.
type Entrada struct {
	ID           int64
	FechaEntrada time.Time
	Total        decimal.Decimal
	CreatedBy    int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CalculateTotal suma los subtotales de las líneas.
func CalculateTotal(items []*EntradaInsumo) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}
