package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/pkg/logger"
)

type fakeAuditor struct {
	calls  int
	drifts []dto.StockDriftDTO
	err    error
}

func (f *fakeAuditor) AuditStock(context.Context) ([]dto.StockDriftDTO, error) {
	f.calls++
	return f.drifts, f.err
}

func TestStart_SpecVacioNoRegistraTareas(t *testing.T) {
	s := NewScheduler("", &fakeAuditor{}, nil)
	require.NoError(t, s.Start())
	assert.Equal(t, 0, s.Entries())
	s.Stop()
}

func TestStart_SpecInvalido(t *testing.T) {
	s := NewScheduler("cada rato", &fakeAuditor{}, nil)
	err := s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cada rato")
}

func TestStart_RegistraAuditoria(t *testing.T) {
	s := NewScheduler("0 3 * * *", &fakeAuditor{}, nil)
	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Equal(t, 1, s.Entries())
}

func TestRunAudit_LogueaDiferencias(t *testing.T) {
	var buf bytes.Buffer
	auditor := &fakeAuditor{drifts: []dto.StockDriftDTO{{ProductID: 1, Stock: 5, LedgerStock: 3, Difference: 2}}}
	s := NewScheduler("@daily", auditor, logger.NewWithWriter(&buf, "info"))

	s.runAudit()

	assert.Equal(t, 1, auditor.calls)
	assert.Contains(t, buf.String(), "auditoría de stock con diferencias")
}

func TestRunAudit_Error(t *testing.T) {
	var buf bytes.Buffer
	auditor := &fakeAuditor{err: errors.New("sin conexión")}
	s := NewScheduler("@daily", auditor, logger.NewWithWriter(&buf, "info"))

	s.runAudit()

	assert.Contains(t, buf.String(), "sin conexión")
}
