package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	GetByDni(ctx context.Context, dni string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
	// Search busca por nombres, apellidos o dni (subcadena, sin distinguir mayúsculas).
	Search(ctx context.Context, term string, limit int) ([]*entity.Client, error)
	Delete(ctx context.Context, id int64) error
}
