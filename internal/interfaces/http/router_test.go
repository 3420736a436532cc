package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/entrada"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/inventory"
	apphttp "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/internal/testutil"
	"github.com/jhoicas/pos-api/pkg/logger"
)

type fakePDF struct{}

func (fakePDF) Generate(*entity.Company, *entity.Entrada, []*entity.EntradaInsumo) ([]byte, error) {
	return []byte("%PDF-1.4 fake"), nil
}

type server struct {
	app    *fiber.App
	store  *testutil.Store
	authUC *auth.AuthUseCase
	harina int64
	azucar int64
	cat    int64
}

func newServer(t *testing.T, withCompany bool) *server {
	t.Helper()
	s := testutil.NewStore()
	if withCompany {
		s.SetCompany("Panadería Central")
	}
	srv := &server{store: s}
	srv.cat = s.AddCategory("Insumos")
	srv.harina = s.AddProduct("Harina", srv.cat, true, 5, "2.50")
	srv.azucar = s.AddProduct("Azúcar", srv.cat, true, 0, "1.25")

	srv.authUC = auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	clientUC := usecase.NewClientUseCase(s.Clients())
	srv.app = fiber.New()
	srv.app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(srv.app, apphttp.RouterDeps{
		AuthUC:      srv.authUC,
		CompanyUC:   usecase.NewCompanyUseCase(s.Company()),
		CategoryUC:  usecase.NewCategoryUseCase(s.Categories()),
		ProductUC:   usecase.NewProductUseCase(s.Products(), s.Categories()),
		ClientUC:    clientUC,
		LookupUC:    usecase.NewLookupUseCase(s.Products(), s.Clients()),
		DashboardUC: usecase.NewDashboardUseCase(s.Entradas(), s.Products(), 5),
		EntradaUC:   entrada.NewUseCase(s, s.Entradas(), inventory.PolicyReconcile, nil),
		EntradaPDF:  entrada.NewPDFUseCase(s.Entradas(), s.Company(), fakePDF{}),
		JWTSecret:   testJWTSecret,
		AppName:     "pos-api-test",
	})
	return srv
}

func (s *server) do(t *testing.T, req *http.Request, role string) *http.Response {
	t.Helper()
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+tokenForRole(t, role))
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *server) form(t *testing.T, path, role string, values url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return s.do(t, req, role)
}

func (s *server) postJSON(t *testing.T, path, role string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	return s.do(t, req, role)
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func id(n int64) string { return strconv.FormatInt(n, 10) }

func TestHealth_Responde(t *testing.T) {
	srv := newServer(t, false)
	resp := srv.do(t, httptest.NewRequest(http.MethodGet, "/health", nil), "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestEntrada_RequiereToken(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.form(t, "/entrada/", "", url.Values{"action": {"search"}})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEntrada_RequiereEmpresa(t *testing.T) {
	srv := newServer(t, false)
	resp := srv.form(t, "/entrada/", "admin", url.Values{"action": {"search"}})

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	assert.Equal(t, "COMPANY_REQUIRED", body.Code)
}

func TestEntrada_RequierePermiso(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.form(t, "/entrada/add/", "vendedor", url.Values{"action": {"add"}})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestEntrada_AccionDesconocida(t *testing.T) {
	srv := newServer(t, true)
	for _, action := range []string{"", "borrar_todo"} {
		resp := srv.form(t, "/entrada/add/", "bodeguero", url.Values{"action": {action}})

		var body dto.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "UNKNOWN_ACTION", body.Code)
		assert.Equal(t, "No ha ingresado a ninguna opción", body.Message)
	}
}

func TestEntrada_AltaPorFormularioEdicionYBorrado(t *testing.T) {
	srv := newServer(t, true)

	products := `[{"id":"` + id(srv.harina) + `","cant":"3","pvp":"2.50"},{"id":` + id(srv.azucar) + `,"cant":4,"pvp":1.25}]`
	resp := srv.form(t, "/entrada/add/", "bodeguero", url.Values{
		"action":        {"add"},
		"fecha_entrada": {"2024-03-15"},
		"products":      {products},
	})
	var created dto.IDResponse
	decodeBody(t, resp, &created)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotZero(t, created.ID)
	assert.Equal(t, 8, srv.store.Stock(srv.harina))
	assert.Equal(t, 4, srv.store.Stock(srv.azucar))

	// edición: contexto con el precio de la línea
	editResp := srv.do(t, httptest.NewRequest(http.MethodGet, "/entrada/update/"+id(created.ID)+"/", nil), "bodeguero")
	var editCtx dto.EntradaEditResponse
	decodeBody(t, editResp, &editCtx)
	require.Equal(t, http.StatusOK, editResp.StatusCode)
	assert.Equal(t, "edit", editCtx.Action)
	assert.Len(t, editCtx.Products, 2)

	// edición vía JSON: harina pasa de 3 a 1, azúcar sale
	resp = srv.postJSON(t, "/entrada/update/"+id(created.ID)+"/", "bodeguero", map[string]any{
		"action":        "edit",
		"fecha_entrada": "2024-03-16",
		"products":      []map[string]any{{"id": srv.harina, "cant": 1, "pvp": "2.50"}},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 6, srv.store.Stock(srv.harina))
	assert.Equal(t, 0, srv.store.Stock(srv.azucar))

	resp = srv.form(t, "/entrada/delete/"+id(created.ID)+"/", "bodeguero", url.Values{})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, srv.store.Stock(srv.harina))
	assert.Equal(t, 0, srv.store.EntradaCount())
}

func TestEntrada_AltaConErrorDeValidacion(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.postJSON(t, "/entrada/add/", "bodeguero", map[string]any{
		"action":        "add",
		"fecha_entrada": "2024-03-15",
		"products":      []map[string]any{{"id": srv.harina, "cant": 0, "pvp": "2.50"}},
	})

	var body dto.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, 0, srv.store.EntradaCount())
}

func TestEntrada_AltaConProductoInexistente(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.postJSON(t, "/entrada/add/", "bodeguero", map[string]any{
		"action":        "add",
		"fecha_entrada": "2024-03-15",
		"products":      []map[string]any{{"id": 999, "cant": 1, "pvp": "1.00"}},
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 0, srv.store.EntradaCount())
}

func TestEntrada_BuscarProductosExcluyeIDsYSinStock(t *testing.T) {
	srv := newServer(t, true)
	otro := srv.store.AddProduct("Harina integral", srv.cat, true, 2, "3.00")

	resp := srv.form(t, "/entrada/add/", "bodeguero", url.Values{
		"action": {"search_products"},
		"term":   {"har"},
		"ids":    {"[" + id(srv.harina) + "]"},
	})
	var out []dto.ProductOption
	decodeBody(t, resp, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out, 1)
	assert.Equal(t, otro, out[0].ID)
	assert.Equal(t, "Harina integral / Insumos", out[0].Value)
}

func TestEntrada_Select2EmpiezaConElTermino(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.postJSON(t, "/entrada/add/", "bodeguero", map[string]any{
		"action": "search_products_select2",
		"term":   "Har",
		"ids":    "[]",
	})
	var out []map[string]any
	decodeBody(t, resp, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out, 2)
	assert.Equal(t, "Har", out[0]["id"])
	assert.Equal(t, "Har", out[0]["text"])
	assert.Equal(t, "Harina / Insumos", out[1]["text"])
}

func TestEntrada_CrearYBuscarCliente(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.form(t, "/entrada/add/", "bodeguero", url.Values{
		"action":   {"create_client"},
		"names":    {"Ana"},
		"surnames": {"Pérez"},
		"dni":      {"0102030405"},
		"gender":   {"female"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = srv.form(t, "/entrada/add/", "bodeguero", url.Values{"action": {"search_client"}, "term": {"0102"}})
	var out []dto.ClientOption
	decodeBody(t, resp, &out)
	require.Len(t, out, 1)
	assert.Equal(t, "Ana", out[0].Names)
}

func TestEntrada_BuscarPorRangoDeFechas(t *testing.T) {
	srv := newServer(t, true)
	ctxUC := entrada.NewUseCase(srv.store, srv.store.Entradas(), inventory.PolicyReconcile, nil)
	for _, fecha := range []string{"2024-01-10", "2024-02-10"} {
		_, err := ctxUC.Create(context.Background(), 1, dto.SaveEntradaRequest{
			FechaEntrada: fecha,
			Products:     []dto.EntradaItemRequest{{ID: json.Number(id(srv.harina)), Cant: "1", Pvp: decimal.RequireFromString("2.50")}},
		})
		require.NoError(t, err)
	}

	resp := srv.form(t, "/entrada/", "vendedor", url.Values{
		"action":     {"search"},
		"start_date": {"2024-02-01"},
		"end_date":   {"2024-02-28"},
	})
	var out []dto.EntradaResponse
	decodeBody(t, resp, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, out, 1)
	assert.Equal(t, "2024-02-10", out[0].FechaEntrada)

	resp = srv.form(t, "/entrada/", "vendedor", url.Values{
		"action": {"search_products_detail"},
		"id":     {id(out[0].ID)},
	})
	var details []dto.EntradaInsumoResponse
	decodeBody(t, resp, &details)
	require.Len(t, details, 1)
	assert.Equal(t, srv.harina, details[0].Product.ID)
}

func TestEntrada_BorrarInexistente(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.form(t, "/entrada/delete/999/", "admin", url.Values{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEntrada_PDFInline(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.postJSON(t, "/entrada/add/", "bodeguero", map[string]any{
		"action":        "add",
		"fecha_entrada": "2024-03-15",
		"products":      []map[string]any{{"id": srv.harina, "cant": 2, "pvp": "2.50"}},
	})
	var created dto.IDResponse
	decodeBody(t, resp, &created)

	resp = srv.do(t, httptest.NewRequest(http.MethodGet, "/entrada/invoice/pdf/"+id(created.ID)+"/", nil), "vendedor")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "entrada_"+id(created.ID)+".pdf")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

func TestEntrada_PDFInexistenteRedirige(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.do(t, httptest.NewRequest(http.MethodGet, "/entrada/invoice/pdf/999/", nil), "vendedor")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/entrada/", resp.Header.Get("Location"))
}

func TestEntrada_PDFSinEmpresaRedirige(t *testing.T) {
	srv := newServer(t, false)
	uc := entrada.NewUseCase(srv.store, srv.store.Entradas(), inventory.PolicyReconcile, nil)
	entradaID, err := uc.Create(context.Background(), 1, dto.SaveEntradaRequest{
		FechaEntrada: "2024-03-15",
		Products:     []dto.EntradaItemRequest{{ID: json.Number(id(srv.harina)), Cant: "1", Pvp: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)

	resp := srv.do(t, httptest.NewRequest(http.MethodGet, "/entrada/invoice/pdf/"+id(entradaID)+"/", nil), "vendedor")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/entrada/", resp.Header.Get("Location"))
}

func TestEntrada_CookieSoloValeEnLecturas(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.postJSON(t, "/entrada/add/", "bodeguero", map[string]any{
		"action":        "add",
		"fecha_entrada": "2024-03-15",
		"products":      []map[string]any{{"id": srv.harina, "cant": 2, "pvp": "2.50"}},
	})
	var created dto.IDResponse
	decodeBody(t, resp, &created)
	cookie := &http.Cookie{Name: apphttp.TokenCookie, Value: tokenForRole(t, "admin")}

	// formulario de borrado con la cookie y sin Authorization
	req := httptest.NewRequest(http.MethodPost, "/entrada/delete/"+id(created.ID)+"/", strings.NewReader(""))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	req.AddCookie(cookie)
	resp = srv.do(t, req, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, srv.store.EntradaCount())
	assert.Equal(t, 7, srv.store.Stock(srv.harina))

	req = httptest.NewRequest(http.MethodGet, "/entrada/invoice/pdf/"+id(created.ID)+"/", nil)
	req.AddCookie(cookie)
	resp = srv.do(t, req, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCategory_AltaEdicionYBorrado(t *testing.T) {
	srv := newServer(t, true)

	resp := srv.form(t, "/category/add/", "bodeguero", url.Values{"action": {"add"}, "name": {"Bebidas"}, "desc": {"frías"}})
	var created dto.IDResponse
	decodeBody(t, resp, &created)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = srv.form(t, "/category/add/", "bodeguero", url.Values{"action": {"add"}, "name": {"bebidas"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "nombre duplicado")

	resp = srv.form(t, "/category/update/"+id(created.ID)+"/", "bodeguero", url.Values{"action": {"edit"}, "name": {"Bebidas frías"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = srv.form(t, "/category/", "vendedor", url.Values{"action": {"searchdata"}})
	var list []dto.CategoryResponse
	decodeBody(t, resp, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Bebidas frías", list[1].Name)

	// Insumos tiene productos
	resp = srv.form(t, "/category/delete/"+id(srv.cat)+"/", "bodeguero", url.Values{})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = srv.form(t, "/category/delete/"+id(created.ID)+"/", "bodeguero", url.Values{})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProduct_AltaPorFormulario(t *testing.T) {
	srv := newServer(t, true)
	resp := srv.form(t, "/product/add/", "bodeguero", url.Values{
		"action":         {"add"},
		"name":           {"Levadura"},
		"category":       {id(srv.cat)},
		"is_inventoried": {"true"},
		"pvp":            {"0.755"},
	})
	var created dto.IDResponse
	decodeBody(t, resp, &created)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = srv.do(t, httptest.NewRequest(http.MethodGet, "/product/update/"+id(created.ID)+"/", nil), "bodeguero")
	var p dto.ProductResponse
	decodeBody(t, resp, &p)
	assert.Equal(t, "Levadura", p.Name)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, "0.76", p.Pvp.StringFixed(2))
}

func TestCompany_Actualizar(t *testing.T) {
	srv := newServer(t, false)

	resp := srv.postJSON(t, "/company/update/", "bodeguero", map[string]any{"action": "edit"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = srv.postJSON(t, "/company/update/", "admin", map[string]any{
		"action": "edit", "name": "Mi Tienda", "ruc": "1790012345001", "address": "Quito",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = srv.do(t, httptest.NewRequest(http.MethodGet, "/company/update/", nil), "admin")
	var company dto.CompanyResponse
	decodeBody(t, resp, &company)
	assert.Equal(t, "Mi Tienda", company.Name)

	// con empresa configurada ya se habilitan las pantallas de inventario
	resp = srv.form(t, "/entrada/", "admin", url.Values{"action": {"search"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDashboard_TotalesYStockBajo(t *testing.T) {
	srv := newServer(t, false)
	resp := srv.do(t, httptest.NewRequest(http.MethodGet, "/dashboard/?year=2024", nil), "vendedor")
	var out dto.DashboardResponse
	decodeBody(t, resp, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2024, out.Year)
	assert.Len(t, out.MonthlyTotals, 12)
	// umbral 5: harina (5) y azúcar (0)
	names := []string{}
	for _, p := range out.LowStock {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Harina", "Azúcar"}, names)
}

func TestAuth_LoginYCrearUsuario(t *testing.T) {
	srv := newServer(t, false)
	_, err := srv.authUC.CreateUser(context.Background(), dto.CreateUserRequest{Username: "admin", Password: "secreto123", Role: "admin"})
	require.NoError(t, err)

	resp := srv.postJSON(t, "/auth/login", "", dto.LoginRequest{Username: "admin", Password: "secreto123"})
	var login dto.LoginResponse
	decodeBody(t, resp, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "admin", login.User.Role)

	resp = srv.postJSON(t, "/auth/login", "", dto.LoginRequest{Username: "admin", Password: "otro-password"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// alta de usuario con el token obtenido
	raw, _ := json.Marshal(dto.CreateUserRequest{Username: "bodega1", Password: "bodega1234", Role: "bodeguero"})
	req := httptest.NewRequest(http.MethodPost, "/auth/users", strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	resp = srv.do(t, req, "")
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = srv.postJSON(t, "/auth/users", "vendedor", dto.CreateUserRequest{Username: "x", Password: "12345678"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
