package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, names, surnames, dni, birthdate, address, gender, created_at, updated_at`

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.Names, &c.Surnames, &c.Dni, &c.Birthdate, &c.Address, &c.Gender, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepo) one(ctx context.Context, query string, arg any) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepo) many(ctx context.Context, query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	out := []*entity.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create persiste un nuevo cliente. ErrDuplicate si la cédula ya existe.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO clients (names, surnames, dni, birthdate, address, gender)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		c.Names, c.Surnames, c.Dni, c.Birthdate, c.Address, c.Gender,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	return r.one(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

// GetByDni obtiene un cliente por cédula.
func (r *ClientRepo) GetByDni(ctx context.Context, dni string) (*entity.Client, error) {
	return r.one(ctx, `SELECT `+clientColumns+` FROM clients WHERE dni = $1`, dni)
}

// Update actualiza los datos del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	err := r.q.QueryRow(ctx, `
		UPDATE clients SET names = $2, surnames = $3, dni = $4, birthdate = $5, address = $6, gender = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		c.ID, c.Names, c.Surnames, c.Dni, c.Birthdate, c.Address, c.Gender,
	).Scan(&c.UpdatedAt)
	if err != nil {
		switch {
		case isNoRows(err):
			return domain.ErrNotFound
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// List lista clientes con paginación.
func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	return r.many(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
}

// Search busca por nombres, apellidos o cédula.
func (r *ClientRepo) Search(ctx context.Context, term string, limit int) ([]*entity.Client, error) {
	return r.many(ctx, `SELECT `+clientColumns+` FROM clients
		WHERE names ILIKE $1 OR surnames ILIKE $1 OR dni ILIKE $1
		ORDER BY id LIMIT $2`, likePattern(term), limit)
}

// Delete elimina un cliente.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
