package entity

import "github.com/shopspring/decimal"

// EntradaInsumo línea de detalle de una entrada. Price es una copia del precio al momento
// del registro, no una referencia al precio vigente del producto.
type EntradaInsumo struct {
	ID        int64
	EntradaID int64
	ProductID int64
	Cant      int
	Price     decimal.Decimal
	Subtotal  decimal.Decimal
	Product   *Product // opcional, cargado por join en las consultas de detalle
}

// NewEntradaInsumo construye la línea con Subtotal = Cant * Price.
func NewEntradaInsumo(entradaID, productID int64, cant int, price decimal.Decimal) *EntradaInsumo {
	return &EntradaInsumo{
		EntradaID: entradaID,
		ProductID: productID,
		Cant:      cant,
		Price:     price,
		Subtotal:  price.Mul(decimal.NewFromInt(int64(cant))),
	}
}
