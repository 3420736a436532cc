package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o insumo del punto de venta.
// Stock solo se modifica vía movimientos del libro de stock; nunca si IsInventoried es false.
type Product struct {
	ID            int64
	Name          string
	CategoryID    int64
	CategoryName  string // solo lectura (join con categories)
	Image         string // ruta relativa al directorio de medios
	IsInventoried bool
	Stock         int
	Pvp           decimal.Decimal // precio de venta
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// String devuelve el texto que se muestra en los buscadores ("nombre / categoría").
func (p *Product) String() string {
	if p.CategoryName == "" {
		return p.Name
	}
	return p.Name + " / " + p.CategoryName
}

// Available indica si el producto puede ofrecerse en los buscadores.
func (p *Product) Available() bool {
	return !p.IsInventoried || p.Stock > 0
}
