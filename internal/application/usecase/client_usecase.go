package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes. Lo usan también las pantallas de entradas (create_client).
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. ErrDuplicate si la cédula ya existe.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.SaveClientRequest) (*dto.ClientResponse, error) {
	c := &entity.Client{}
	if err := fillClient(c, in); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByDni(ctx, c.Dni)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewClientResponse(c)
	return &out, nil
}

// Update actualiza los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.SaveClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := fillClient(c, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewClientResponse(c)
	return &out, nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ClientResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.NewClientResponse(c))
	}
	return items, nil
}

// Delete elimina un cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}

func fillClient(c *entity.Client, in dto.SaveClientRequest) error {
	names := strings.TrimSpace(in.Names)
	if names == "" {
		return domain.NewValidationError("names", "es obligatorio")
	}
	dni := strings.TrimSpace(in.Dni)
	if len(dni) != 10 || strings.Trim(dni, "0123456789") != "" {
		return domain.NewValidationError("dni", "debe tener 10 dígitos")
	}
	gender := strings.TrimSpace(in.Gender)
	if gender == "" {
		gender = entity.GenderMale
	}
	if gender != entity.GenderMale && gender != entity.GenderFemale {
		return domain.NewValidationError("gender", "valor inválido")
	}
	var birthdate *time.Time
	if raw := strings.TrimSpace(in.Birthdate); raw != "" {
		t, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			return domain.NewValidationError("birthdate", "formato esperado YYYY-MM-DD")
		}
		birthdate = &t
	}
	c.Names = names
	c.Surnames = strings.TrimSpace(in.Surnames)
	c.Dni = dni
	c.Birthdate = birthdate
	c.Address = strings.TrimSpace(in.Address)
	c.Gender = gender
	return nil
}
