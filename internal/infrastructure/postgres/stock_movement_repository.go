package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, batch_id::text, product_id, COALESCE(entrada_id, 0), type, quantity, stock_before, stock_after, created_at, COALESCE(created_by, 0)`

// StockMovementRepo libro de stock sobre PostgreSQL. Solo inserta y lee.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del libro de stock.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO stock_movements (batch_id, product_id, entrada_id, type, quantity, stock_before, stock_after, created_at, created_by)
		VALUES ($1::uuid, $2, NULLIF($3::bigint, 0), $4, $5, $6, $7, $8, NULLIF($9::bigint, 0))
		RETURNING id`,
		m.BatchID, m.ProductID, m.EntradaID, m.Type, m.Quantity, m.StockBefore, m.StockAfter, m.CreatedAt, m.CreatedBy,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert stock_movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock_movements: %w", err)
	}
	defer rows.Close()
	out := []*entity.StockMovement{}
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.BatchID, &m.ProductID, &m.EntradaID, &m.Type, &m.Quantity,
			&m.StockBefore, &m.StockAfter, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock_movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ListByEntrada lista los movimientos generados por una entrada.
func (r *StockMovementRepo) ListByEntrada(ctx context.Context, entradaID int64) ([]*entity.StockMovement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE entrada_id = $1 ORDER BY id`, entradaID)
}

// SumByProduct suma las cantidades del libro por producto.
func (r *StockMovementRepo) SumByProduct(ctx context.Context) (map[int64]int, error) {
	rows, err := r.q.Query(ctx, `SELECT product_id, COALESCE(SUM(quantity), 0)::int FROM stock_movements GROUP BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("sum stock_movements: %w", err)
	}
	defer rows.Close()
	out := make(map[int64]int)
	for rows.Next() {
		var id int64
		var sum int
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan stock sum: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}
