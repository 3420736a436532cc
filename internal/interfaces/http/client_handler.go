package http

import (
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// ClientHandler maneja las pantallas de clientes.
type ClientHandler struct {
	catalogHandler[dto.SaveClientRequest, dto.ClientResponse]
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{catalogHandler[dto.SaveClientRequest, dto.ClientResponse]{
		create: uc.Create,
		update: uc.Update,
		list:   uc.List,
		remove: uc.Delete,
		idOf:   func(c *dto.ClientResponse) int64 { return c.ID },
	}}
}
