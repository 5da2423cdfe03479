package scanning

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify"
	"github.com/vfg2006/ad-intel-api/infrastructure/repository"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"github.com/vfg2006/ad-intel-api/internal/usecases/aggregating"
	"github.com/vfg2006/ad-intel-api/internal/usecases/insighting"
	"github.com/vfg2006/ad-intel-api/pkg/utils"
)

var (
	// ErrMissingSource indica que a requisição não trouxe URL nem marca.
	ErrMissingSource = errors.New("informe uma URL da biblioteca de anúncios ou o ID de uma marca")
	// ErrBrandNotFound indica que a marca referenciada não existe.
	ErrBrandNotFound = errors.New("marca não encontrada")
	// ErrReportNotFound indica que o relatório referenciado não existe.
	ErrReportNotFound = errors.New("relatório não encontrado")
	// ErrInsightGeneration indica que o pipeline de insight falhou ao reprocessar
	// um relatório já persistido.
	ErrInsightGeneration = errors.New("falha ao gerar insight do relatório")
)

// ScanRequest descreve uma varredura: a origem (URL direta ou marca cadastrada)
// e os filtros aplicados sobre o resultado.
type ScanRequest struct {
	SourceURL string              `json:"source_url"`
	BrandID   string              `json:"brand_id"`
	Filters   *domain.ScanFilters `json:"filters"`
}

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Scanner interface {
	Scan(ctx context.Context, req *ScanRequest) (*domain.ScanReport, error)
	GetReport(id string) (*domain.ScanReport, error)
	ListReports(brandID *string, limit int) ([]*domain.ScanReport, error)
	RegenerateInsight(ctx context.Context, reportID string) (*domain.ScanReport, error)
}

type Service struct {
	cfg        *config.Config
	integrator apify.AdLibraryIntegrator
	aggregator aggregating.Aggregator
	insighter  insighting.Insighter
	reportRepo repository.ScanReportRepository
	brandRepo  repository.BrandRepository
	now        func() time.Time
}

func NewService(
	cfg *config.Config,
	integrator apify.AdLibraryIntegrator,
	aggregator aggregating.Aggregator,
	insighter insighting.Insighter,
	reportRepo repository.ScanReportRepository,
	brandRepo repository.BrandRepository,
) *Service {
	return &Service{
		cfg:        cfg,
		integrator: integrator,
		aggregator: aggregator,
		insighter:  insighter,
		reportRepo: reportRepo,
		brandRepo:  brandRepo,
		now:        time.Now,
	}
}

// Scan executa a varredura completa: coleta os anúncios, deduplica, ranqueia,
// gera o insight quando pedido e persiste o relatório. A falha do pipeline de
// insight não derruba a varredura; o ranking é preservado e o motivo da falha
// vai em InsightError.
func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*domain.ScanReport, error) {
	filters := s.normalizeFilters(req.Filters)

	sourceURL := req.SourceURL
	var brandID *string

	if req.BrandID != "" {
		brand, err := s.brandRepo.GetBrandByID(req.BrandID)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao buscar marca")
		}
		if brand == nil {
			return nil, ErrBrandNotFound
		}

		sourceURL = brand.AdLibraryURL
		brandID = &brand.ID
	}

	if sourceURL == "" {
		return nil, ErrMissingSource
	}

	records, err := s.integrator.FetchAds(ctx, sourceURL, filters.ResultsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao coletar anúncios")
	}

	groups := s.aggregator.Aggregate(records)
	if filters.WindowHours != nil {
		groups = s.aggregator.FilterByWindow(groups, *filters.WindowHours)
	}

	reportID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar identificador do relatório")
	}

	report := &domain.ScanReport{
		ID:          reportID,
		BrandID:     brandID,
		SourceURL:   sourceURL,
		TotalRaw:    len(records),
		TotalGroups: len(groups),
		Filters:     filters,
		Groups:      groups,
		CreatedAt:   s.now(),
	}

	if filters.WithInsight && len(groups) > 0 {
		insight, err := s.insighter.GenerateInsight(ctx, groups, filters.TopN)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"report_id": report.ID,
				"error":     err.Error(),
			}).Warn("scan: insight pipeline failed, keeping ranking")
			report.InsightError = err.Error()
		} else {
			report.Insight = insight
		}
	}

	if err := s.reportRepo.SaveReport(report); err != nil {
		return nil, errors.Wrap(err, "erro ao salvar relatório de varredura")
	}

	if brandID != nil {
		if err := s.brandRepo.UpdateLastScan(*brandID, report.CreatedAt); err != nil {
			logrus.WithFields(logrus.Fields{
				"brand_id": *brandID,
				"error":    err.Error(),
			}).Warn("scan: failed to update brand last scan timestamp")
		}
	}

	logrus.WithFields(logrus.Fields{
		"report_id":    report.ID,
		"total_raw":    report.TotalRaw,
		"total_groups": report.TotalGroups,
		"with_insight": report.Insight != nil,
	}).Info("scan: report generated")

	return report, nil
}

func (s *Service) GetReport(id string) (*domain.ScanReport, error) {
	return s.reportRepo.GetReportByID(id)
}

func (s *Service) ListReports(brandID *string, limit int) ([]*domain.ScanReport, error) {
	return s.reportRepo.ListReports(brandID, limit)
}

// RegenerateInsight reexecuta o pipeline de insight sobre o ranking de um
// relatório já persistido. Útil quando a geração original falhou de forma
// transitória (quota, timeout do modelo) e o ranking continua válido.
func (s *Service) RegenerateInsight(ctx context.Context, reportID string) (*domain.ScanReport, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar relatório")
	}
	if report == nil {
		return nil, ErrReportNotFound
	}

	topN := 0
	if report.Filters != nil {
		topN = report.Filters.TopN
	}
	if topN <= 0 {
		topN = s.cfg.Scan.DefaultTopN
	}

	insight, err := s.insighter.GenerateInsight(ctx, report.Groups, topN)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"report_id": report.ID,
			"error":     err.Error(),
		}).Warn("scan: insight regeneration failed")

		if updateErr := s.reportRepo.UpdateReportInsight(report.ID, nil, err.Error()); updateErr != nil {
			logrus.WithFields(logrus.Fields{
				"report_id": report.ID,
				"error":     updateErr.Error(),
			}).Warn("scan: failed to persist insight regeneration error")
		}

		return nil, errors.Wrapf(ErrInsightGeneration, "%s", err.Error())
	}

	if err := s.reportRepo.UpdateReportInsight(report.ID, insight, ""); err != nil {
		return nil, errors.Wrap(err, "erro ao atualizar insight do relatório")
	}

	report.Insight = insight
	report.InsightError = ""

	logrus.WithFields(logrus.Fields{
		"report_id": report.ID,
		"model":     insight.Model,
	}).Info("scan: insight regenerated")

	return report, nil
}

// normalizeFilters aplica os padrões configurados aos campos ausentes.
func (s *Service) normalizeFilters(filters *domain.ScanFilters) *domain.ScanFilters {
	normalized := &domain.ScanFilters{}
	if filters != nil {
		*normalized = *filters
	}

	if normalized.ResultsLimit <= 0 {
		normalized.ResultsLimit = s.cfg.Scan.DefaultResultsLimit
	}
	if normalized.TopN <= 0 {
		normalized.TopN = s.cfg.Scan.DefaultTopN
	}

	return normalized
}
