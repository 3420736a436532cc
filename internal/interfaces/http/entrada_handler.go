package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/entrada"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// pdfDownloader contrato del caso de uso del PDF.
type pdfDownloader interface {
	DownloadPDF(ctx context.Context, id int64) ([]byte, string, error)
}

// EntradaHandler pantallas de entradas de insumos: listado, alta, edición, borrado y PDF.
type EntradaHandler struct {
	uc       *entrada.UseCase
	lookup   *usecase.LookupUseCase
	clientUC *usecase.ClientUseCase
	pdf      pdfDownloader
}

// NewEntradaHandler construye el handler.
func NewEntradaHandler(uc *entrada.UseCase, lookup *usecase.LookupUseCase, clientUC *usecase.ClientUseCase, pdf pdfDownloader) *EntradaHandler {
	return &EntradaHandler{uc: uc, lookup: lookup, clientUC: clientUC, pdf: pdf}
}

// ListActions acciones de POST /entrada/.
func (h *EntradaHandler) ListActions() actionTable {
	return actionTable{
		ActionSearch:               h.search,
		ActionSearchProductsDetail: h.searchProductsDetail,
	}
}

// AddActions acciones de POST /entrada/add/.
func (h *EntradaHandler) AddActions() actionTable {
	t := h.formActions()
	t[ActionAdd] = h.add
	return t
}

// UpdateActions acciones de POST /entrada/update/:id/.
func (h *EntradaHandler) UpdateActions() actionTable {
	t := h.formActions()
	t[ActionEdit] = h.edit
	return t
}

// formActions buscadores compartidos por las pantallas de alta y edición.
func (h *EntradaHandler) formActions() actionTable {
	return actionTable{
		ActionSearchProducts:        h.searchProducts,
		ActionSearchProductsSelect2: h.searchProductsSelect2,
		ActionSearchClient:          h.searchClient,
		ActionCreateClient:          h.createClient,
	}
}

func (h *EntradaHandler) search(c *fiber.Ctx, p *payload) error {
	out, err := h.uc.List(c.UserContext(), dto.EntradaSearchRequest{
		StartDate: p.str("start_date"),
		EndDate:   p.str("end_date"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *EntradaHandler) searchProductsDetail(c *fiber.Ctx, p *payload) error {
	var id int64
	if err := p.decode("id", &id); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Details(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *EntradaHandler) searchProducts(c *fiber.Ctx, p *payload) error {
	ids, err := p.ids()
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.lookup.SearchProducts(c.UserContext(), p.str("term"), ids)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *EntradaHandler) searchProductsSelect2(c *fiber.Ctx, p *payload) error {
	ids, err := p.ids()
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.lookup.SearchProductsSelect2(c.UserContext(), p.str("term"), ids)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *EntradaHandler) searchClient(c *fiber.Ctx, p *payload) error {
	out, err := h.lookup.SearchClients(c.UserContext(), p.str("term"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *EntradaHandler) createClient(c *fiber.Ctx, p *payload) error {
	var in dto.SaveClientRequest
	if err := p.bind(&in); err != nil {
		return respondError(c, err)
	}
	out, err := h.clientUC.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *EntradaHandler) add(c *fiber.Ctx, p *payload) error {
	in, err := p.entrada()
	if err != nil {
		return respondError(c, err)
	}
	id, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IDResponse{ID: id})
}

func (h *EntradaHandler) edit(c *fiber.Ctx, p *payload) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	in, err := p.entrada()
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Update(c.UserContext(), GetUserID(c), id, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IDResponse{ID: id})
}

// EditContext godoc
// @Summary      Datos de la pantalla de edición de una entrada
// @Tags         entradas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.EntradaEditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /entrada/update/{id}/ [get]
func (h *EntradaHandler) EditContext(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.EditContext(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar entrada (revierte el stock según la política configurada)
// @Tags         entradas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {object}  dto.IDResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /entrada/delete/{id}/ [post]
func (h *EntradaHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.IDResponse{ID: id})
}

// DownloadPDF godoc
// @Summary      Comprobante PDF de la entrada
// @Tags         entradas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la entrada"
// @Success      200  {file}  binary
// @Failure      302  "redirección al listado si no se pudo generar"
// @Router       /entrada/invoice/pdf/{id}/ [get]
func (h *EntradaHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err == nil {
		var (
			body     []byte
			filename string
		)
		body, filename, err = h.pdf.DownloadPDF(c.UserContext(), id)
		if err == nil {
			c.Set(fiber.HeaderContentType, "application/pdf")
			c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
			return c.Send(body)
		}
	}
	requestLogger(c).Error().Err(err).Str("id", c.Params("id")).Msg("generar PDF de entrada")
	return c.Redirect("/entrada/", fiber.StatusFound)
}
