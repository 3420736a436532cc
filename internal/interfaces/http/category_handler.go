package http

import (
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// CategoryHandler maneja las pantallas de categorías.
type CategoryHandler struct {
	catalogHandler[dto.SaveCategoryRequest, dto.CategoryResponse]
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{catalogHandler[dto.SaveCategoryRequest, dto.CategoryResponse]{
		create: uc.Create,
		update: uc.Update,
		list:   uc.List,
		remove: uc.Delete,
		idOf:   func(c *dto.CategoryResponse) int64 { return c.ID },
	}}
}
