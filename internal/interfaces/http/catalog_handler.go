package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
)

// catalogHandler pantallas CRUD del catálogo (categorías, productos, clientes).
// Req es el cuerpo de add/edit y Resp la salida del caso de uso.
type catalogHandler[Req any, Resp any] struct {
	create func(ctx context.Context, in Req) (*Resp, error)
	update func(ctx context.Context, id int64, in Req) (*Resp, error)
	list   func(ctx context.Context, page dto.PageRequest) ([]Resp, error)
	remove func(ctx context.Context, id int64) error
	idOf   func(*Resp) int64
}

// ListActions acciones de POST /<x>/.
func (h *catalogHandler[Req, Resp]) ListActions() actionTable {
	return actionTable{ActionSearchData: h.searchData}
}

// AddActions acciones de POST /<x>/add/.
func (h *catalogHandler[Req, Resp]) AddActions() actionTable {
	return actionTable{ActionAdd: h.add}
}

// UpdateActions acciones de POST /<x>/update/:id/.
func (h *catalogHandler[Req, Resp]) UpdateActions() actionTable {
	return actionTable{ActionEdit: h.edit}
}

func (h *catalogHandler[Req, Resp]) searchData(c *fiber.Ctx, p *payload) error {
	out, err := h.list(c.UserContext(), p.page())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *catalogHandler[Req, Resp]) add(c *fiber.Ctx, p *payload) error {
	var in Req
	if err := p.bind(&in); err != nil {
		return respondError(c, err)
	}
	out, err := h.create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IDResponse{ID: h.idOf(out)})
}

func (h *catalogHandler[Req, Resp]) edit(c *fiber.Ctx, p *payload) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in Req
	if err := p.bind(&in); err != nil {
		return respondError(c, err)
	}
	if _, err := h.update(c.UserContext(), id, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IDResponse{ID: id})
}

// Delete borra el registro. 409 si otros registros lo referencian.
func (h *catalogHandler[Req, Resp]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.remove(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IDResponse{ID: id})
}
