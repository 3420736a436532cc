// Package scheduler ejecuta tareas periódicas del proceso API (auditoría de stock).
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// auditTimeout tiempo máximo de una corrida de auditoría.
const auditTimeout = 2 * time.Minute

// StockAuditor compara stock materializado contra el libro.
type StockAuditor interface {
	AuditStock(ctx context.Context) ([]dto.StockDriftDTO, error)
}

// Scheduler administra las tareas cron.
type Scheduler struct {
	cron    *cron.Cron
	auditor StockAuditor
	spec    string
	log     *logger.Logger
}

// NewScheduler crea el scheduler. spec es una expresión cron estándar de 5 campos;
// vacío deshabilita la auditoría programada.
func NewScheduler(spec string, auditor StockAuditor, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:    cron.New(),
		auditor: auditor,
		spec:    spec,
		log:     log.Named("scheduler"),
	}
}

// Start registra las tareas y arranca el cron. Devuelve error si la expresión es inválida.
func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.log.Info().Msg("auditoría de stock programada deshabilitada")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, s.runAudit); err != nil {
		return fmt.Errorf("programar auditoría de stock %q: %w", s.spec, err)
	}
	s.log.Info().Str("cron", s.spec).Msg("iniciando scheduler")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine la tarea en curso.
func (s *Scheduler) Stop() {
	s.log.Info().Msg("deteniendo scheduler")
	<-s.cron.Stop().Done()
}

// Entries número de tareas registradas.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) runAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	drifts, err := s.auditor.AuditStock(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("auditoría de stock falló")
		return
	}
	if len(drifts) > 0 {
		s.log.Warn().Int("diferencias", len(drifts)).Msg("auditoría de stock con diferencias")
	}
}
