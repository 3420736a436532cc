package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/testutil"
)

func TestSearchProducts_FiltraDisponibilidadYExclusiones(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore()
	cat := s.AddCategory("Granos")
	arroz := s.AddProduct("Arroz", cat, true, 3, "1.00")
	s.AddProduct("Arroz integral", cat, true, 0, "1.50") // sin stock
	envio := s.AddProduct("Arroz a domicilio", cat, false, 0, "2.00")
	s.AddProduct("Lenteja", cat, true, 8, "1.10")
	uc := usecase.NewLookupUseCase(s.Products(), s.Clients())

	got, err := uc.SearchProducts(ctx, "  arroz ", nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Arroz", got[0].Name)
	assert.Equal(t, "Arroz / Granos", got[0].Value)
	assert.Equal(t, envio, got[1].ID)

	got, err = uc.SearchProducts(ctx, "arroz", []int64{arroz})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, envio, got[0].ID)

	all, err := uc.SearchProducts(ctx, "", nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSearchProducts_LimitaADiez(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore()
	cat := s.AddCategory("Bebidas")
	for i := 0; i < 15; i++ {
		s.AddProduct(fmt.Sprintf("Gaseosa %02d", i), cat, true, 1, "1.00")
	}
	uc := usecase.NewLookupUseCase(s.Products(), s.Clients())

	got, err := uc.SearchProducts(ctx, "gaseosa", nil)
	require.NoError(t, err)
	assert.Len(t, got, usecase.LookupLimit)

	sel, err := uc.SearchProductsSelect2(ctx, "gaseosa", nil)
	require.NoError(t, err)
	require.Len(t, sel, usecase.LookupLimit+1)
	assert.Equal(t, dto.Select2TermOption{ID: "gaseosa", Text: "gaseosa"}, sel[0])
	opt, ok := sel[1].(dto.ProductOption)
	require.True(t, ok)
	assert.Equal(t, "Gaseosa 00 / Bebidas", opt.Text)
	assert.Empty(t, opt.Value)
}

func TestSearchClients_PorNombreApellidoYCedula(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore()
	clients := usecase.NewClientUseCase(s.Clients())
	_, err := clients.Create(ctx, dto.SaveClientRequest{Names: "Luis", Surnames: "Mora", Dni: "1712345678"})
	require.NoError(t, err)
	_, err = clients.Create(ctx, dto.SaveClientRequest{Names: "Marta", Surnames: "Luna", Dni: "0923456789"})
	require.NoError(t, err)
	uc := usecase.NewLookupUseCase(s.Products(), s.Clients())

	got, err := uc.SearchClients(ctx, "171")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Luis Mora / 1712345678", got[0].Text)

	got, err = uc.SearchClients(ctx, "lu")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func jsonID(id int64) json.Number {
	return json.Number(strconv.FormatInt(id, 10))
}
