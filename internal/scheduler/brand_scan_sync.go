package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/infrastructure/repository"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"github.com/vfg2006/ad-intel-api/internal/usecases/scanning"
)

// BrandScanSyncConfig representa a configuração do agendador de varreduras de marcas
type BrandScanSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	SyncEnabled         bool
	WithInsight         bool
}

// BrandScanSyncService gerencia o agendamento e execução das varreduras
// recorrentes das marcas ativas da biblioteca
type BrandScanSyncService struct {
	scheduler           *gocron.Scheduler
	config              BrandScanSyncConfig
	appConfig           *config.Config
	brandRepo           repository.BrandRepository
	scanService         scanning.Scanner
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewBrandScanSyncService cria uma nova instância do serviço de varredura recorrente
func NewBrandScanSyncService(
	brandRepo repository.BrandRepository,
	scanService scanning.Scanner,
	appConfig *config.Config,
) *BrandScanSyncService {
	// Criar a configuração com base na config global
	syncConfig := BrandScanSyncConfig{
		CronSchedule:        appConfig.BrandScanSync.CronSchedule,
		RequestDelaySeconds: appConfig.BrandScanSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.BrandScanSync.Enabled,
		WithInsight:         appConfig.BrandScanSync.WithInsight,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
		"with_insight":          syncConfig.WithInsight,
	}).Info("Configuração do agendador de varreduras de marcas carregada")

	return &BrandScanSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		appConfig:   appConfig,
		brandRepo:   brandRepo,
		scanService: scanService,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *BrandScanSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Varredura recorrente de marcas desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de varreduras de marcas")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.scanAllBrands(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar varredura de marcas: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de varreduras de marcas")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara a varredura de todas as marcas fora do horário agendado
func (s *BrandScanSyncService) TriggerManualSync() {
	go s.scanAllBrands(context.Background())
}

// GetStatus retorna o estado atual do agendador
func (s *BrandScanSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"enabled":       s.config.SyncEnabled,
		"cron_schedule": s.config.CronSchedule,
		"running":       s.syncRunning,
	}

	if !s.lastSyncStartedAt.IsZero() {
		status["last_started_at"] = s.lastSyncStartedAt
	}
	if !s.lastSyncCompletedAt.IsZero() {
		status["last_completed_at"] = s.lastSyncCompletedAt
	}

	return status
}

// scanAllBrands varre todas as marcas ativas da biblioteca, uma por vez,
// respeitando o intervalo configurado entre requisições ao scraper
func (s *BrandScanSyncService) scanAllBrands(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Varredura de marcas já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	startTime := time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando varredura de todas as marcas ativas")

	brands, err := s.brandRepo.ListBrands(true)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar lista de marcas para varredura")
		return
	}

	if len(brands) == 0 {
		logrus.Info("Nenhuma marca ativa encontrada para varredura")
		return
	}

	succeeded := 0
	failed := 0

	for i, brand := range brands {
		if ctx.Err() != nil {
			logrus.Warn("Varredura de marcas interrompida pelo contexto")
			break
		}

		if i > 0 && s.config.RequestDelaySeconds > 0 {
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}

		if err := s.scanBrand(ctx, brand); err != nil {
			failed++
			logrus.WithFields(logrus.Fields{
				"brand_id":   brand.ID,
				"brand_name": brand.Name,
				"error":      err.Error(),
			}).Error("Erro na varredura da marca")
			continue
		}

		succeeded++
	}

	logrus.WithFields(logrus.Fields{
		"duration":  time.Since(startTime).String(),
		"brands":    len(brands),
		"succeeded": succeeded,
		"failed":    failed,
	}).Info("Varredura de marcas concluída")
}

func (s *BrandScanSyncService) scanBrand(ctx context.Context, brand *domain.Brand) error {
	report, err := s.scanService.Scan(ctx, &scanning.ScanRequest{
		BrandID: brand.ID,
		Filters: &domain.ScanFilters{
			WithInsight: s.config.WithInsight,
		},
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"brand_id":     brand.ID,
		"report_id":    report.ID,
		"total_groups": report.TotalGroups,
	}).Info("Varredura da marca concluída")

	return nil
}
