// Package scheduler contém os serviços de agendamento da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/wbarros/stock-control-api/internal/config"
	"github.com/wbarros/stock-control-api/internal/usecases/insighting"
	"github.com/wbarros/stock-control-api/pkg/utils"
)

type InsightSnapshotConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// InsightSnapshotService recalcula os indicadores do painel uma vez por dia e
// persiste o resultado como fotografia datada.
type InsightSnapshotService struct {
	scheduler           *gocron.Scheduler
	insightService      insighting.Insighter
	config              InsightSnapshotConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewInsightSnapshotService(
	insightService insighting.Insighter,
	cfg *config.Config,
) *InsightSnapshotService {
	snapshotConfig := InsightSnapshotConfig{
		CronSchedule: cfg.SnapshotSync.CronSchedule, // Default: 5h da manhã todos os dias
		SyncEnabled:  cfg.SnapshotSync.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": snapshotConfig.CronSchedule,
	}).Info("Configuração do agendador de snapshot de indicadores carregada")

	return &InsightSnapshotService{
		scheduler:      scheduler,
		insightService: insightService,
		config:         snapshotConfig,
	}
}

func (s *InsightSnapshotService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Cron de snapshot de indicadores desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de snapshot de indicadores")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunSnapshot(); err != nil {
			logrus.WithError(err).Error("Erro na gravação do snapshot de indicadores")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshot de indicadores: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de snapshot de indicadores")
		s.scheduler.Stop()
	}()

	return nil
}

// RunSnapshot executa um ciclo de cálculo e gravação. Execuções simultâneas
// são descartadas com aviso.
func (s *InsightSnapshotService) RunSnapshot() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Gravação de snapshot de indicadores já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando gravação do snapshot de indicadores")

	snapshot, err := s.insightService.SaveSnapshot(time.Now())
	if err != nil {
		logrus.WithError(err).Error("Erro ao calcular e salvar o snapshot de indicadores")
		return err
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id":   snapshot.ID,
		"snapshot_date": snapshot.Date.Format("2006-01-02"),
	}).Info("Gravação do snapshot de indicadores concluída")

	logrus.Debug("Snapshot gravado: ", utils.PrettyJson(snapshot))

	return nil
}

// TriggerManualSync inicia manualmente a gravação do snapshot de indicadores
func (s *InsightSnapshotService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Gravação de snapshot já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando gravação manual do snapshot de indicadores")
	go func() {
		if err := s.RunSnapshot(); err != nil {
			logrus.WithError(err).Error("Erro na gravação manual do snapshot de indicadores")
		}
	}()
}

// GetStatus retorna o estado corrente do agendador para o endpoint de cron
func (s *InsightSnapshotService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
