package dto

// SaveCategoryRequest entrada para crear o editar una categoría.
type SaveCategoryRequest struct {
	Name string `json:"name" form:"name"`
	Desc string `json:"desc" form:"desc"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Desc string `json:"desc,omitempty"`
}
