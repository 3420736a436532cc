package dto

import (
	"github.com/shopspring/decimal"
)

// SaveProductRequest entrada para crear o editar un producto. Stock no es editable.
type SaveProductRequest struct {
	Name          string          `json:"name" form:"name"`
	CategoryID    int64           `json:"category" form:"category"`
	Image         string          `json:"image" form:"image"`
	IsInventoried bool            `json:"is_inventoried" form:"is_inventoried"`
	Pvp           decimal.Decimal `json:"pvp" form:"pvp"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Category      CategoryResponse `json:"category"`
	Image         string           `json:"image"`
	IsInventoried bool             `json:"is_inventoried"`
	Stock         int              `json:"stock"`
	Pvp           decimal.Decimal  `json:"pvp"`
}

// ProductOption resultado de los buscadores: el producto más el texto a mostrar.
// Value lo usa el autocompletado; Text lo usa select2.
type ProductOption struct {
	ProductResponse
	Value string `json:"value,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Select2TermOption primer elemento de search_products_select2: el término tal cual.
type Select2TermOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
