package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
)

var (
	adminUser     string
	adminPassword string
	withDemo      bool
)

type demoProduct struct {
	name        string
	inventoried bool
	pvp         string
}

// demoCatalog categorías y productos de ejemplo (stock inicial 0: solo las entradas suben stock).
var demoCatalog = []struct {
	category string
	products []demoProduct
}{
	{"Insumos", []demoProduct{
		{"Harina de trigo", true, "1.20"},
		{"Azúcar", true, "0.95"},
		{"Levadura", true, "0.60"},
	}},
	{"Servicios", []demoProduct{
		{"Transporte", false, "5.00"},
	}},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea el usuario administrador y, opcionalmente, datos de demostración",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminPassword == "" {
			return errors.New("--admin-password es obligatorio")
		}
		return withPool(cmd, func(ctx context.Context, pool *pgxpool.Pool) error {
			authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
			_, err := authUC.CreateUser(ctx, dto.CreateUserRequest{
				Username: adminUser,
				Password: adminPassword,
				Names:    "Administrador",
				Role:     entity.RoleAdmin,
			})
			switch {
			case errors.Is(err, domain.ErrDuplicate):
				fmt.Fprintf(cmd.OutOrStdout(), "usuario %q ya existe\n", adminUser)
			case err != nil:
				return fmt.Errorf("crear administrador: %w", err)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "usuario %q creado\n", adminUser)
			}
			if !withDemo {
				return nil
			}
			return seedDemo(ctx, cmd, pool)
		})
	},
}

func seedDemo(ctx context.Context, cmd *cobra.Command, pool *pgxpool.Pool) error {
	companyUC := usecase.NewCompanyUseCase(postgres.NewCompanyRepository(pool))
	exists, err := companyUC.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		if _, err := companyUC.Save(ctx, dto.SaveCompanyRequest{
			Name:    "Comercial Demo",
			RUC:     "1790012345001",
			Address: "Av. Amazonas y Naciones Unidas",
			Phone:   "022345678",
		}); err != nil {
			return fmt.Errorf("crear empresa: %w", err)
		}
	}

	categoryRepo := postgres.NewCategoryRepository(pool)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool), categoryRepo)
	created := 0
	for _, group := range demoCatalog {
		cat, err := categoryUC.Create(ctx, dto.SaveCategoryRequest{Name: group.category})
		if errors.Is(err, domain.ErrDuplicate) {
			// datos de demo ya cargados
			continue
		}
		if err != nil {
			return fmt.Errorf("crear categoría %s: %w", group.category, err)
		}
		for _, p := range group.products {
			_, err := productUC.Create(ctx, dto.SaveProductRequest{
				Name:          p.name,
				CategoryID:    cat.ID,
				IsInventoried: p.inventoried,
				Pvp:           decimal.RequireFromString(p.pvp),
			})
			if err != nil && !errors.Is(err, domain.ErrDuplicate) {
				return fmt.Errorf("crear producto %s: %w", p.name, err)
			}
			created++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "datos de demostración: %d productos\n", created)
	return nil
}

func init() {
	seedCmd.Flags().StringVar(&adminUser, "admin-user", "admin", "username del administrador")
	seedCmd.Flags().StringVar(&adminPassword, "admin-password", "", "password del administrador (mínimo 8 caracteres)")
	seedCmd.Flags().BoolVar(&withDemo, "demo", false, "carga empresa, categorías y productos de ejemplo")
	rootCmd.AddCommand(seedCmd)
}
