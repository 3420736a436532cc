package dto

import "github.com/shopspring/decimal"

// DashboardResponse totales mensuales de entradas y productos con stock bajo.
type DashboardResponse struct {
	Year          int               `json:"year"`
	MonthlyTotals []decimal.Decimal `json:"monthly_totals"`
	LowStock      []ProductResponse `json:"low_stock"`
}

// StockDriftDTO diferencia entre el stock materializado y la suma del libro.
type StockDriftDTO struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	LedgerStock int    `json:"ledger_stock"`
	Difference  int    `json:"difference"`
}
