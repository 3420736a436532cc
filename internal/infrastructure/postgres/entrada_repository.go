package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.EntradaRepository = (*EntradaRepo)(nil)

// EntradaRepo implementación del puerto EntradaRepository sobre PostgreSQL (usable con pool o tx).
type EntradaRepo struct {
	q Querier
}

// NewEntradaRepository construye el adaptador de persistencia para entradas.
func NewEntradaRepository(q Querier) *EntradaRepo {
	return &EntradaRepo{q: q}
}

// Create persiste la cabecera con total 0; el total se fija con CalculateInvoice.
func (r *EntradaRepo) Create(ctx context.Context, e *entity.Entrada) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO entradas (fecha_entrada, total, created_by)
		VALUES ($1, 0, NULLIF($2::bigint, 0))
		RETURNING id, total, created_at, updated_at`,
		e.FechaEntrada, e.CreatedBy,
	).Scan(&e.ID, &e.Total, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return createEntradaError(err, e.CreatedBy)
	}
	return nil
}

// createEntradaError traduce el error del INSERT. La única FK de entradas es created_by:
// un token vigente de un usuario eliminado no puede registrar entradas.
func createEntradaError(err error, userID int64) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("usuario %d no existe: %w", userID, domain.ErrUnauthorized)
	}
	return fmt.Errorf("insert entrada: %w", err)
}

// GetByID obtiene la cabecera de una entrada.
func (r *EntradaRepo) GetByID(ctx context.Context, id int64) (*entity.Entrada, error) {
	var e entity.Entrada
	err := r.q.QueryRow(ctx, `
		SELECT id, fecha_entrada, total, COALESCE(created_by, 0), created_at, updated_at
		FROM entradas WHERE id = $1`, id,
	).Scan(&e.ID, &e.FechaEntrada, &e.Total, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entrada: %w", err)
	}
	return &e, nil
}

// Update actualiza la fecha de la cabecera.
func (r *EntradaRepo) Update(ctx context.Context, e *entity.Entrada) error {
	err := r.q.QueryRow(ctx,
		`UPDATE entradas SET fecha_entrada = $2, updated_at = now() WHERE id = $1 RETURNING updated_at`,
		e.ID, e.FechaEntrada,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update entrada: %w", err)
	}
	return nil
}

// Delete elimina la entrada; entrada_insumos cae por ON DELETE CASCADE.
func (r *EntradaRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM entradas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entrada: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista entradas, opcionalmente en un rango inclusivo de fecha_entrada.
func (r *EntradaRepo) List(ctx context.Context, f repository.EntradaFilter) ([]*entity.Entrada, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, fecha_entrada, total, COALESCE(created_by, 0), created_at, updated_at
		FROM entradas
		WHERE ($1::date IS NULL OR fecha_entrada >= $1::date)
		  AND ($2::date IS NULL OR fecha_entrada <= $2::date)
		ORDER BY id`, f.From, f.To)
	if err != nil {
		return nil, fmt.Errorf("list entradas: %w", err)
	}
	defer rows.Close()
	out := []*entity.Entrada{}
	for rows.Next() {
		var e entity.Entrada
		if err := rows.Scan(&e.ID, &e.FechaEntrada, &e.Total, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entrada: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

// CreateDetail persiste una línea de la entrada.
func (r *EntradaRepo) CreateDetail(ctx context.Context, d *entity.EntradaInsumo) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO entrada_insumos (entrada_id, product_id, cant, price, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		d.EntradaID, d.ProductID, d.Cant, d.Price, d.Subtotal,
	).Scan(&d.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("producto %d: %w", d.ProductID, domain.ErrNotFound)
		}
		return fmt.Errorf("insert entrada_insumo: %w", err)
	}
	return nil
}

// DeleteDetails elimina todas las líneas de la entrada.
func (r *EntradaRepo) DeleteDetails(ctx context.Context, entradaID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM entrada_insumos WHERE entrada_id = $1`, entradaID); err != nil {
		return fmt.Errorf("delete entrada_insumos: %w", err)
	}
	return nil
}

// GetDetails devuelve las líneas con su producto y categoría.
func (r *EntradaRepo) GetDetails(ctx context.Context, entradaID int64) ([]*entity.EntradaInsumo, error) {
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.entrada_id, d.product_id, d.cant, d.price, d.subtotal,
		       `+productColumns+`
		FROM entrada_insumos d
		JOIN products p ON p.id = d.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE d.entrada_id = $1
		ORDER BY d.id`, entradaID)
	if err != nil {
		return nil, fmt.Errorf("list entrada_insumos: %w", err)
	}
	defer rows.Close()
	out := []*entity.EntradaInsumo{}
	for rows.Next() {
		var d entity.EntradaInsumo
		var p entity.Product
		if err := rows.Scan(&d.ID, &d.EntradaID, &d.ProductID, &d.Cant, &d.Price, &d.Subtotal,
			&p.ID, &p.Name, &p.CategoryID, &p.CategoryName, &p.Image, &p.IsInventoried,
			&p.Stock, &p.Pvp, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entrada_insumo: %w", err)
		}
		d.Product = &p
		out = append(out, &d)
	}
	return out, rows.Err()
}

// CalculateInvoice recalcula total = SUM(subtotal) de las líneas actuales y lo guarda.
func (r *EntradaRepo) CalculateInvoice(ctx context.Context, entradaID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		UPDATE entradas SET
			total = (SELECT COALESCE(SUM(subtotal), 0) FROM entrada_insumos WHERE entrada_id = $1),
			updated_at = now()
		WHERE id = $1
		RETURNING total`, entradaID,
	).Scan(&total)
	if err != nil {
		if isNoRows(err) {
			return decimal.Zero, domain.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("calculate invoice: %w", err)
	}
	return total, nil
}

// MonthlyTotals suma el total de las entradas por mes del año dado.
func (r *EntradaRepo) MonthlyTotals(ctx context.Context, year int) ([12]decimal.Decimal, error) {
	var out [12]decimal.Decimal
	for i := range out {
		out[i] = decimal.Zero
	}
	rows, err := r.q.Query(ctx, `
		SELECT EXTRACT(MONTH FROM fecha_entrada)::int AS month, COALESCE(SUM(total), 0)
		FROM entradas
		WHERE fecha_entrada >= make_date($1, 1, 1) AND fecha_entrada < make_date($1 + 1, 1, 1)
		GROUP BY month`, year)
	if err != nil {
		return out, fmt.Errorf("monthly totals: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var month int
		var total decimal.Decimal
		if err := rows.Scan(&month, &total); err != nil {
			return out, fmt.Errorf("scan monthly total: %w", err)
		}
		if month >= 1 && month <= 12 {
			out[month-1] = total
		}
	}
	return out, rows.Err()
}
