package http

import (
	"reflect"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/entrada"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CompanyUC   *usecase.CompanyUseCase
	CategoryUC  *usecase.CategoryUseCase
	ProductUC   *usecase.ProductUseCase
	ClientUC    *usecase.ClientUseCase
	LookupUC    *usecase.LookupUseCase
	DashboardUC *usecase.DashboardUseCase
	EntradaUC   *entrada.UseCase
	EntradaPDF  pdfDownloader
	JWTSecret   string
	AppName     string
}

func init() {
	// precios (pvp) enviados como campos de formulario
	fiber.SetParserDecoder(fiber.ParserConfig{
		IgnoreUnknownKeys: true,
		ZeroEmpty:         true,
		ParserType: []fiber.ParserType{{
			Customtype: decimal.Decimal{},
			Converter: func(s string) reflect.Value {
				d, err := decimal.NewFromString(s)
				if err != nil {
					return reflect.Value{}
				}
				return reflect.ValueOf(d)
			},
		}},
	})
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/auth/login", authHandler.Login)

	protected := app.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/users", RequireRole(entity.RoleAdmin), authHandler.CreateUser)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	protected.Get("/company/update", RequirePermission(entity.PermChangeCompany), companyHandler.Get)
	protected.Post("/company/update", RequirePermission(entity.PermChangeCompany), dispatch(companyHandler.Actions()))

	// El PDF solo exige sesión: sin empresa el handler redirige al listado.
	// Se registra antes del grupo con RequireCompany, que intercepta todo lo que viene después.
	entradaHandler := NewEntradaHandler(deps.EntradaUC, deps.LookupUC, deps.ClientUC, deps.EntradaPDF)
	protected.Get("/entrada/invoice/pdf/:id", entradaHandler.DownloadPDF)

	// Pantallas de inventario: requieren la empresa configurada
	inv := protected.Group("/", RequireCompany(deps.CompanyUC))

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	category := inv.Group("/category")
	category.Post("/", RequirePermission(entity.PermViewCategory), dispatch(categoryHandler.ListActions()))
	category.Post("/add", RequirePermission(entity.PermAddCategory), dispatch(categoryHandler.AddActions()))
	category.Post("/update/:id", RequirePermission(entity.PermChangeCategory), dispatch(categoryHandler.UpdateActions()))
	category.Post("/delete/:id", RequirePermission(entity.PermDeleteCategory), categoryHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	product := inv.Group("/product")
	product.Post("/", RequirePermission(entity.PermViewProduct), dispatch(productHandler.ListActions()))
	product.Post("/add", RequirePermission(entity.PermAddProduct), dispatch(productHandler.AddActions()))
	product.Get("/update/:id", RequirePermission(entity.PermChangeProduct), productHandler.GetByID)
	product.Post("/update/:id", RequirePermission(entity.PermChangeProduct), dispatch(productHandler.UpdateActions()))
	product.Post("/delete/:id", RequirePermission(entity.PermDeleteProduct), productHandler.Delete)

	clientHandler := NewClientHandler(deps.ClientUC)
	client := inv.Group("/client")
	client.Post("/", RequirePermission(entity.PermViewClient), dispatch(clientHandler.ListActions()))
	client.Post("/add", RequirePermission(entity.PermAddClient), dispatch(clientHandler.AddActions()))
	client.Post("/update/:id", RequirePermission(entity.PermChangeClient), dispatch(clientHandler.UpdateActions()))
	client.Post("/delete/:id", RequirePermission(entity.PermDeleteClient), clientHandler.Delete)

	ent := inv.Group("/entrada")
	ent.Post("/", RequirePermission(entity.PermViewEntrada), dispatch(entradaHandler.ListActions()))
	ent.Post("/add", RequirePermission(entity.PermAddEntrada), dispatch(entradaHandler.AddActions()))
	ent.Get("/update/:id", RequirePermission(entity.PermChangeEntrada), entradaHandler.EditContext)
	ent.Post("/update/:id", RequirePermission(entity.PermChangeEntrada), dispatch(entradaHandler.UpdateActions()))
	ent.Post("/delete/:id", RequirePermission(entity.PermDeleteEntrada), entradaHandler.Delete)
}
