package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain"
)

func TestCreateEntradaError_UsuarioInexistenteEsNoAutorizado(t *testing.T) {
	fk := fmt.Errorf("scan: %w", &pgconn.PgError{Code: "23503", ConstraintName: "entradas_created_by_fkey"})
	err := createEntradaError(fk, 77)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "77")

	other := errors.New("conexión cerrada")
	err = createEntradaError(other, 77)
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPgCodes_Clasifica(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isCheckViolation(fmt.Errorf("x: %w", &pgconn.PgError{Code: "23514"})))
	assert.False(t, isForeignKeyViolation(errors.New("otro")))
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, "%", likePattern(""))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
}
