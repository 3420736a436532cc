package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// EntradaItemRequest línea enviada por la pantalla: {id, cant, pvp}.
// id y cant aceptan número o string numérico (la UI envía ambos).
type EntradaItemRequest struct {
	ID   json.Number     `json:"id"`
	Cant json.Number     `json:"cant"`
	Pvp  decimal.Decimal `json:"pvp"`
}

// SaveEntradaRequest acciones add/edit: fecha (YYYY-MM-DD) y lista completa de líneas.
type SaveEntradaRequest struct {
	FechaEntrada string               `json:"fecha_entrada"`
	Products     []EntradaItemRequest `json:"products"`
}

// EntradaSearchRequest acción search del listado. Fechas YYYY-MM-DD, ambas o ninguna.
type EntradaSearchRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// EntradaResponse cabecera de una entrada.
type EntradaResponse struct {
	ID           int64           `json:"id"`
	FechaEntrada string          `json:"fecha_entrada"`
	Total        decimal.Decimal `json:"total"`
}

// EntradaInsumoResponse línea de detalle con su producto.
type EntradaInsumoResponse struct {
	ID        int64           `json:"id"`
	EntradaID int64           `json:"entrada"`
	Product   ProductResponse `json:"product"`
	Cant      int             `json:"cant"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// EntradaEditItem producto precargado en la pantalla de edición.
// Pvp es el precio registrado en la línea, no el precio vigente del producto.
type EntradaEditItem struct {
	ProductResponse
	Cant     int             `json:"cant"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// EntradaEditResponse contexto de la pantalla de edición.
type EntradaEditResponse struct {
	Action   string            `json:"action"`
	Entrada  EntradaResponse   `json:"entrada"`
	Products []EntradaEditItem `json:"products"`
}
