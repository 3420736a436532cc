package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain"
)

func TestValidationError_EnvuelveErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear entrada: %w", domain.NewValidationError("cant", "debe ser mayor a cero"))

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "crear entrada: cant: debe ser mayor a cero", err.Error())

	var ve *domain.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "cant", ve.Field)
}

func TestValidationError_SinCampo(t *testing.T) {
	err := domain.NewValidationError("", "sin productos")
	assert.Equal(t, "sin productos", err.Error())
}
