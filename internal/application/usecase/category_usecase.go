package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. ErrDuplicate si el nombre ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.SaveCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	c := &entity.Category{Name: name, Desc: strings.TrimSpace(in.Desc)}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// Update actualiza nombre y descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.SaveCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	c.Name = name
	c.Desc = strings.TrimSpace(in.Desc)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.NewCategoryResponse(c)
	return &out, nil
}

// List lista categorías con paginación.
func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CategoryResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.NewCategoryResponse(c))
	}
	return items, nil
}

// Delete elimina una categoría. ErrConflict si tiene productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.Delete(ctx, id)
}
