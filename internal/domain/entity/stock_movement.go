package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	MovementTypeEntrada        = "ENTRADA"         // alta de una entrada
	MovementTypeEntradaAjuste  = "ENTRADA_AJUSTE"  // diferencia neta al editar una entrada
	MovementTypeEntradaReverso = "ENTRADA_REVERSO" // reverso al eliminar una entrada
)

// StockMovement fila del libro de stock (append-only). Quantity es el delta con signo;
// la suma de Quantity por producto debe coincidir con Product.Stock.
type StockMovement struct {
	ID          int64
	BatchID     string // agrupa los movimientos de una misma operación
	ProductID   int64
	EntradaID   int64 // referencia, sin FK: la entrada puede haberse eliminado
	Type        string
	Quantity    int
	StockBefore int
	StockAfter  int
	CreatedAt   time.Time
	CreatedBy   int64
}
