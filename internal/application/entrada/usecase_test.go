package entrada_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/entrada"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/inventory"
	"github.com/jhoicas/pos-api/internal/testutil"
)

type fixture struct {
	store    *testutil.Store
	uc       *entrada.UseCase
	harina   int64 // inventariado, stock 5
	servicio int64 // no inventariado
	azucar   int64 // inventariado, stock 0
}

func newFixture(t *testing.T, policy string) *fixture {
	t.Helper()
	s := testutil.NewStore()
	cat := s.AddCategory("Insumos")
	f := &fixture{
		store:    s,
		harina:   s.AddProduct("Harina", cat, true, 5, "2.50"),
		servicio: s.AddProduct("Servicio de entrega", cat, false, 0, "3.00"),
		azucar:   s.AddProduct("Azúcar", cat, true, 0, "1.25"),
	}
	f.uc = entrada.NewUseCase(s, s.Entradas(), policy, nil)
	return f
}

func item(id int64, cant int, pvp string) dto.EntradaItemRequest {
	return dto.EntradaItemRequest{
		ID:   json.Number(decimal.NewFromInt(id).String()),
		Cant: json.Number(decimal.NewFromInt(int64(cant)).String()),
		Pvp:  decimal.RequireFromString(pvp),
	}
}

func req(items ...dto.EntradaItemRequest) dto.SaveEntradaRequest {
	return dto.SaveEntradaRequest{FechaEntrada: "2024-03-15", Products: items}
}

func TestCreate_SumaSoloInventariadosYCalculaTotal(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	ctx := context.Background()

	id, err := f.uc.Create(ctx, 7, req(item(f.harina, 3, "2.50"), item(f.servicio, 1, "10.00"), item(f.azucar, 4, "1.25")))
	require.NoError(t, err)
	require.NotZero(t, id)

	assert.Equal(t, 8, f.store.Stock(f.harina))
	assert.Equal(t, 0, f.store.Stock(f.servicio))
	assert.Equal(t, 4, f.store.Stock(f.azucar))

	e, err := f.store.Entradas().GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("22.50").Equal(e.Total), "total=%s", e.Total)
	assert.Equal(t, int64(7), e.CreatedBy)
	assert.Equal(t, "2024-03-15", e.FechaEntrada.Format(dto.DateLayout))

	movs := f.store.AllMovements()
	require.Len(t, movs, 2)
	for _, m := range movs {
		assert.Equal(t, entity.MovementTypeEntrada, m.Type)
		assert.Equal(t, id, m.EntradaID)
		assert.Equal(t, movs[0].BatchID, m.BatchID)
		assert.Equal(t, m.StockBefore+m.Quantity, m.StockAfter)
	}
}

func TestCreate_BloqueaProductosEnOrdenAscendente(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	_, err := f.uc.Create(context.Background(), 1, req(item(f.azucar, 1, "1"), item(f.harina, 1, "1")))
	require.NoError(t, err)
	assert.Equal(t, []int64{f.harina, f.azucar}, f.store.Locked)
}

func TestCreate_ValidacionFallaAntesDeTocarLaBase(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	ctx := context.Background()

	cases := map[string]dto.SaveEntradaRequest{
		"sin fecha":        {Products: []dto.EntradaItemRequest{item(f.harina, 1, "1")}},
		"fecha inválida":   {FechaEntrada: "15/03/2024", Products: []dto.EntradaItemRequest{item(f.harina, 1, "1")}},
		"sin productos":    {FechaEntrada: "2024-03-15"},
		"cantidad cero":    req(item(f.harina, 0, "1")),
		"precio negativo":  req(item(f.harina, 1, "-1")),
		"cantidad decimal": req(dto.EntradaItemRequest{ID: "1", Cant: "1.5", Pvp: decimal.NewFromInt(1)}),
		"id no numérico":   req(dto.EntradaItemRequest{ID: "abc", Cant: "1", Pvp: decimal.NewFromInt(1)}),
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, 1, in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			var ve *domain.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
	assert.Zero(t, f.store.EntradaCount())
}

func TestCreate_AceptaEnteroConPuntoDecimal(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	_, err := f.uc.Create(context.Background(), 1, req(dto.EntradaItemRequest{
		ID: json.Number(decimal.NewFromInt(f.harina).String()), Cant: "2.0", Pvp: decimal.NewFromInt(1),
	}))
	require.NoError(t, err)
	assert.Equal(t, 7, f.store.Stock(f.harina))
}

func TestCreate_ProductoInexistenteRevierte(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)

	_, err := f.uc.Create(context.Background(), 1, req(item(f.harina, 3, "1"), item(9999, 1, "1")))
	require.ErrorIs(t, err, domain.ErrNotFound)

	assert.Zero(t, f.store.EntradaCount())
	assert.Zero(t, f.store.DetailCount())
	assert.Equal(t, 5, f.store.Stock(f.harina))
	assert.Empty(t, f.store.AllMovements())
}

func TestCreate_FalloTrasActualizarStockRevierte(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	f.store.Fail["CalculateInvoice"] = errors.New("db caída")

	_, err := f.uc.Create(context.Background(), 1, req(item(f.harina, 3, "1")))
	require.Error(t, err)

	assert.Zero(t, f.store.EntradaCount())
	assert.Equal(t, 5, f.store.Stock(f.harina))
	assert.Empty(t, f.store.AllMovements())
}

func TestUpdate_ReconcileAplicaDiferenciaNeta(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	ctx := context.Background()

	id, err := f.uc.Create(ctx, 1, req(item(f.harina, 3, "2.50"), item(f.azucar, 2, "1.25")))
	require.NoError(t, err)
	require.Equal(t, 8, f.store.Stock(f.harina))
	require.Equal(t, 2, f.store.Stock(f.azucar))

	// harina 3 -> 1, azúcar sale, servicio entra
	err = f.uc.Update(ctx, 2, id, dto.SaveEntradaRequest{
		FechaEntrada: "2024-04-01",
		Products:     []dto.EntradaItemRequest{item(f.harina, 1, "3.00"), item(f.servicio, 2, "5.00")},
	})
	require.NoError(t, err)

	assert.Equal(t, 6, f.store.Stock(f.harina))
	assert.Equal(t, 0, f.store.Stock(f.azucar))
	assert.Equal(t, 0, f.store.Stock(f.servicio))

	e, err := f.store.Entradas().GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("13.00").Equal(e.Total), "total=%s", e.Total)
	assert.Equal(t, "2024-04-01", e.FechaEntrada.Format(dto.DateLayout))

	details, err := f.store.Entradas().GetDetails(ctx, id)
	require.NoError(t, err)
	require.Len(t, details, 2)
	for _, d := range details {
		assert.True(t, d.Price.Mul(decimal.NewFromInt(int64(d.Cant))).Equal(d.Subtotal))
	}

	var ajustes int
	for _, m := range f.store.AllMovements() {
		if m.Type == entity.MovementTypeEntradaAjuste {
			ajustes++
			assert.Equal(t, int64(2), m.CreatedBy)
		}
	}
	assert.Equal(t, 2, ajustes)
}

func TestUpdate_TotalSeRecalculaSinAcumular(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	ctx := context.Background()

	id, err := f.uc.Create(ctx, 1, req(item(f.harina, 2, "10")))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, f.uc.Update(ctx, 1, id, req(item(f.harina, 2, "10"))))
	}
	e, err := f.store.Entradas().GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(e.Total), "total=%s", e.Total)
	assert.Equal(t, 7, f.store.Stock(f.harina))
}

func TestUpdate_IncrementOnlyVuelveASumar(t *testing.T) {
	f := newFixture(t, inventory.PolicyIncrementOnly)
	ctx := context.Background()

	id, err := f.uc.Create(ctx, 1, req(item(f.harina, 3, "1")))
	require.NoError(t, err)
	require.NoError(t, f.uc.Update(ctx, 1, id, req(item(f.harina, 3, "1"))))

	assert.Equal(t, 11, f.store.Stock(f.harina))
}

func TestUpdate_RechazaStockNegativo(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	ctx := context.Background()

	id, err := f.uc.Create(ctx, 1, req(item(f.azucar, 4, "1")))
	require.NoError(t, err)
	// simula una venta que consumió el stock
	require.NoError(t, f.store.Products().UpdateStock(ctx, f.azucar, 1))

	err = f.uc.Update(ctx, 1, id, req(item(f.azucar, 1, "1")))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, f.store.Stock(f.azucar))

	details, err := f.store.Entradas().GetDetails(ctx, id)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 4, details[0].Cant)
}

func TestUpdate_NoExiste(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	err := f.uc.Update(context.Background(), 1, 424242, req(item(f.harina, 1, "1")))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_ReconcileRevierteStock(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	ctx := context.Background()

	id, err := f.uc.Create(ctx, 1, req(item(f.harina, 3, "1"), item(f.servicio, 1, "1")))
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(ctx, 1, id))

	assert.Equal(t, 5, f.store.Stock(f.harina))
	assert.Zero(t, f.store.EntradaCount())
	assert.Zero(t, f.store.DetailCount())

	movs := f.store.AllMovements()
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeEntradaReverso, movs[1].Type)
	assert.Equal(t, -3, movs[1].Quantity)
}

// inventariar activa el control de stock de un producto ya existente.
func (f *fixture) inventariar(t *testing.T, id int64) {
	t.Helper()
	ctx := context.Background()
	p, err := f.store.Products().GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	p.IsInventoried = true
	require.NoError(t, f.store.Products().Update(ctx, p))
}

func TestDelete_ReconcileRevierteSoloLoRegistradoEnElLibro(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	ctx := context.Background()

	// registrada cuando el producto todavía no llevaba inventario
	previa, err := f.uc.Create(ctx, 1, req(item(f.servicio, 5, "1")))
	require.NoError(t, err)
	f.inventariar(t, f.servicio)

	_, err = f.uc.Create(ctx, 1, req(item(f.servicio, 10, "1")))
	require.NoError(t, err)
	require.Equal(t, 10, f.store.Stock(f.servicio))

	require.NoError(t, f.uc.Delete(ctx, 1, previa))
	assert.Equal(t, 10, f.store.Stock(f.servicio))
	for _, m := range f.store.AllMovements() {
		assert.NotEqual(t, entity.MovementTypeEntradaReverso, m.Type)
	}
}

func TestUpdate_ReconcileProductoInventariadoDespues(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	ctx := context.Background()

	id, err := f.uc.Create(ctx, 1, req(item(f.servicio, 5, "1")))
	require.NoError(t, err)
	f.inventariar(t, f.servicio)

	// las líneas vigentes pasan a contar; nada se había sumado antes
	require.NoError(t, f.uc.Update(ctx, 1, id, req(item(f.servicio, 5, "1"))))
	assert.Equal(t, 5, f.store.Stock(f.servicio))

	require.NoError(t, f.uc.Delete(ctx, 1, id))
	assert.Equal(t, 0, f.store.Stock(f.servicio))
}

func TestReconcile_TrasHistorialIncrementOnly(t *testing.T) {
	f := newFixture(t, inventory.PolicyIncrementOnly)
	ctx := context.Background()

	id, err := f.uc.Create(ctx, 1, req(item(f.harina, 3, "1")))
	require.NoError(t, err)
	require.NoError(t, f.uc.Update(ctx, 1, id, req(item(f.harina, 3, "1"))))
	require.Equal(t, 11, f.store.Stock(f.harina))

	reconcile := entrada.NewUseCase(f.store, f.store.Entradas(), inventory.PolicyReconcile, nil)
	require.NoError(t, reconcile.Update(ctx, 1, id, req(item(f.harina, 2, "1"))))
	assert.Equal(t, 7, f.store.Stock(f.harina), "stock inicial 5 más las 2 unidades vigentes")

	require.NoError(t, reconcile.Delete(ctx, 1, id))
	assert.Equal(t, 5, f.store.Stock(f.harina))
}

func TestDelete_IncrementOnlyConservaStock(t *testing.T) {
	f := newFixture(t, inventory.PolicyIncrementOnly)
	ctx := context.Background()

	id, err := f.uc.Create(ctx, 1, req(item(f.harina, 3, "1")))
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(ctx, 1, id))

	assert.Equal(t, 8, f.store.Stock(f.harina))
	assert.Zero(t, f.store.EntradaCount())
}

func TestDelete_NoExiste(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	assert.ErrorIs(t, f.uc.Delete(context.Background(), 1, 99), domain.ErrNotFound)
}

func TestList_FiltraPorRangoDeFechas(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	ctx := context.Background()

	for _, d := range []string{"2024-01-10", "2024-02-10", "2024-03-10"} {
		_, err := f.uc.Create(ctx, 1, dto.SaveEntradaRequest{FechaEntrada: d, Products: []dto.EntradaItemRequest{item(f.harina, 1, "1")}})
		require.NoError(t, err)
	}

	all, err := f.uc.List(ctx, dto.EntradaSearchRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := f.uc.List(ctx, dto.EntradaSearchRequest{StartDate: "2024-02-01", EndDate: "2024-03-10"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "2024-02-10", some[0].FechaEntrada)

	_, err = f.uc.List(ctx, dto.EntradaSearchRequest{StartDate: "2024-03-01", EndDate: "2024-02-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEditContext_UsaPrecioDeLaLinea(t *testing.T) {
	f := newFixture(t, inventory.PolicyReconcile)
	ctx := context.Background()

	id, err := f.uc.Create(ctx, 1, req(item(f.harina, 2, "9.99")))
	require.NoError(t, err)

	out, err := f.uc.EditContext(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "edit", out.Action)
	require.Len(t, out.Products, 1)
	p := out.Products[0]
	assert.Equal(t, f.harina, p.ID)
	assert.Equal(t, "Insumos", p.Category.Name)
	assert.Equal(t, 2, p.Cant)
	assert.True(t, decimal.RequireFromString("9.99").Equal(p.Pvp))

	details, err := f.uc.Details(ctx, id)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Harina", details[0].Product.Name)

	_, err = f.uc.EditContext(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewUseCase_PoliticaDesconocidaUsaReconcile(t *testing.T) {
	s := testutil.NewStore()
	uc := entrada.NewUseCase(s, s.Entradas(), "cualquiera", nil)
	assert.Equal(t, inventory.PolicyReconcile, uc.Policy())
}
