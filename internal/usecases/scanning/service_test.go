package scanning

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apifymocks "github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify/mocks"
	repomocks "github.com/vfg2006/ad-intel-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"github.com/vfg2006/ad-intel-api/internal/usecases/aggregating"
	insightmocks "github.com/vfg2006/ad-intel-api/internal/usecases/insighting/mocks"
	"go.uber.org/mock/gomock"
)

const adLibraryURL = "https://www.facebook.com/ads/library/?view_all_page_id=123"

type testDeps struct {
	integrator *apifymocks.MockAdLibraryIntegrator
	insighter  *insightmocks.MockInsighter
	reportRepo *repomocks.MockScanReportRepository
	brandRepo  *repomocks.MockBrandRepository
	service    *Service
}

func newTestDeps(t *testing.T) *testDeps {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{
		Scan: config.Scan{
			DefaultResultsLimit: 50,
			DefaultTopN:         3,
		},
	}

	deps := &testDeps{
		integrator: apifymocks.NewMockAdLibraryIntegrator(ctrl),
		insighter:  insightmocks.NewMockInsighter(ctrl),
		reportRepo: repomocks.NewMockScanReportRepository(ctrl),
		brandRepo:  repomocks.NewMockBrandRepository(ctrl),
	}

	deps.service = NewService(
		cfg,
		deps.integrator,
		aggregating.NewService(aggregating.CountScorer),
		deps.insighter,
		deps.reportRepo,
		deps.brandRepo,
	)
	deps.service.now = func() time.Time { return time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC) }

	return deps
}

func sampleRecords() []domain.AdRecord {
	return []domain.AdRecord{
		{AdArchiveID: "ad1", LinkURL: "https://shop.com/x?utm_source=1", ImageURL: "https://cdn.com/a.jpg"},
		{AdArchiveID: "ad2", LinkURL: "https://shop.com/x?utm_source=2", ImageURL: "https://cdn.com/a.jpg"},
		{AdArchiveID: "ad3", LinkURL: "https://shop.com/y", ImageURL: "https://cdn.com/b.jpg"},
	}
}

func TestScan_WithDirectURL(t *testing.T) {
	deps := newTestDeps(t)

	deps.integrator.EXPECT().
		FetchAds(gomock.Any(), adLibraryURL, 50).
		Return(sampleRecords(), nil)

	deps.reportRepo.EXPECT().
		SaveReport(gomock.Any()).
		DoAndReturn(func(report *domain.ScanReport) error {
			assert.NotEmpty(t, report.ID)
			assert.Equal(t, 3, report.TotalRaw)
			assert.Equal(t, 2, report.TotalGroups)
			return nil
		})

	report, err := deps.service.Scan(context.Background(), &ScanRequest{SourceURL: adLibraryURL})

	require.NoError(t, err)
	require.Len(t, report.Groups, 2)
	assert.Equal(t, 2, report.Groups[0].Occurrences)
	assert.Nil(t, report.Insight)
	assert.Empty(t, report.InsightError)
}

func TestScan_WithRegisteredBrand(t *testing.T) {
	deps := newTestDeps(t)

	brand := &domain.Brand{ID: "brand1", Name: "Concorrente X", AdLibraryURL: adLibraryURL}

	deps.brandRepo.EXPECT().GetBrandByID("brand1").Return(brand, nil)
	deps.integrator.EXPECT().FetchAds(gomock.Any(), adLibraryURL, 50).Return(sampleRecords(), nil)
	deps.reportRepo.EXPECT().SaveReport(gomock.Any()).Return(nil)
	deps.brandRepo.EXPECT().UpdateLastScan("brand1", gomock.Any()).Return(nil)

	report, err := deps.service.Scan(context.Background(), &ScanRequest{BrandID: "brand1"})

	require.NoError(t, err)
	require.NotNil(t, report.BrandID)
	assert.Equal(t, "brand1", *report.BrandID)
	assert.Equal(t, adLibraryURL, report.SourceURL)
}

func TestScan_BrandNotFound(t *testing.T) {
	deps := newTestDeps(t)

	deps.brandRepo.EXPECT().GetBrandByID("ghost").Return(nil, nil)

	report, err := deps.service.Scan(context.Background(), &ScanRequest{BrandID: "ghost"})

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrBrandNotFound)
}

func TestScan_MissingSource(t *testing.T) {
	deps := newTestDeps(t)

	report, err := deps.service.Scan(context.Background(), &ScanRequest{})

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrMissingSource)
}

func TestScan_WithInsight(t *testing.T) {
	deps := newTestDeps(t)

	insight := &domain.InsightReport{
		Insight:     "análise",
		RemixPrompt: "prompt",
		Model:       "gemini-2.5-flash",
	}

	deps.integrator.EXPECT().FetchAds(gomock.Any(), adLibraryURL, 50).Return(sampleRecords(), nil)
	deps.insighter.EXPECT().GenerateInsight(gomock.Any(), gomock.Any(), 3).Return(insight, nil)
	deps.reportRepo.EXPECT().SaveReport(gomock.Any()).Return(nil)

	report, err := deps.service.Scan(context.Background(), &ScanRequest{
		SourceURL: adLibraryURL,
		Filters:   &domain.ScanFilters{WithInsight: true},
	})

	require.NoError(t, err)
	assert.Equal(t, insight, report.Insight)
}

func TestScan_InsightFailureKeepsRanking(t *testing.T) {
	deps := newTestDeps(t)

	deps.integrator.EXPECT().FetchAds(gomock.Any(), adLibraryURL, 50).Return(sampleRecords(), nil)
	deps.insighter.EXPECT().
		GenerateInsight(gomock.Any(), gomock.Any(), 3).
		Return(nil, errors.New("quota exceeded"))
	deps.reportRepo.EXPECT().SaveReport(gomock.Any()).Return(nil)

	report, err := deps.service.Scan(context.Background(), &ScanRequest{
		SourceURL: adLibraryURL,
		Filters:   &domain.ScanFilters{WithInsight: true},
	})

	require.NoError(t, err)
	assert.Nil(t, report.Insight)
	assert.Contains(t, report.InsightError, "quota exceeded")
	assert.Len(t, report.Groups, 2, "o ranking sobrevive à falha do insight")
}

func TestScan_AppliesTimeWindow(t *testing.T) {
	deps := newTestDeps(t)

	now := time.Now()
	records := []domain.AdRecord{
		{AdArchiveID: "recent", LinkURL: "https://shop.com/x", FirstSeen: now.Add(-24 * time.Hour)},
		{AdArchiveID: "stale", LinkURL: "https://shop.com/y", FirstSeen: now.Add(-100 * time.Hour)},
	}

	deps.integrator.EXPECT().FetchAds(gomock.Any(), adLibraryURL, 50).Return(records, nil)
	deps.reportRepo.EXPECT().SaveReport(gomock.Any()).Return(nil)

	window := 48
	report, err := deps.service.Scan(context.Background(), &ScanRequest{
		SourceURL: adLibraryURL,
		Filters:   &domain.ScanFilters{WindowHours: &window},
	})

	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, []string{"recent"}, report.Groups[0].AdArchiveIDs)
}

func TestScan_IntegratorFailure(t *testing.T) {
	deps := newTestDeps(t)

	deps.integrator.EXPECT().
		FetchAds(gomock.Any(), adLibraryURL, 50).
		Return(nil, errors.New("actor run failed"))

	report, err := deps.service.Scan(context.Background(), &ScanRequest{SourceURL: adLibraryURL})

	assert.Nil(t, report)
	assert.Error(t, err)
}

func TestRegenerateInsight(t *testing.T) {
	deps := newTestDeps(t)

	stored := &domain.ScanReport{
		ID:           "rep123",
		SourceURL:    adLibraryURL,
		Filters:      &domain.ScanFilters{TopN: 2},
		Groups:       []*domain.AdGroup{{Title: "Oferta A", Occurrences: 3}},
		InsightError: "quota exceeded",
	}

	generated := &domain.InsightReport{Insight: "análise", RemixPrompt: "prompt", Model: "gemini-2.5-flash"}

	deps.reportRepo.EXPECT().
		GetReportByID("rep123").
		Return(stored, nil)

	deps.insighter.EXPECT().
		GenerateInsight(gomock.Any(), stored.Groups, 2).
		Return(generated, nil)

	deps.reportRepo.EXPECT().
		UpdateReportInsight("rep123", generated, "")

	report, err := deps.service.RegenerateInsight(context.Background(), "rep123")

	require.NoError(t, err)
	assert.Equal(t, generated, report.Insight)
	assert.Empty(t, report.InsightError)
}

func TestRegenerateInsight_DefaultsTopN(t *testing.T) {
	deps := newTestDeps(t)

	stored := &domain.ScanReport{
		ID:     "rep123",
		Groups: []*domain.AdGroup{{Title: "Oferta A"}},
	}

	deps.reportRepo.EXPECT().
		GetReportByID("rep123").
		Return(stored, nil)

	// Relatório sem filtros persistidos usa o top N padrão da configuração
	deps.insighter.EXPECT().
		GenerateInsight(gomock.Any(), stored.Groups, 3).
		Return(&domain.InsightReport{Insight: "análise"}, nil)

	deps.reportRepo.EXPECT().
		UpdateReportInsight("rep123", gomock.Any(), "")

	_, err := deps.service.RegenerateInsight(context.Background(), "rep123")

	require.NoError(t, err)
}

func TestRegenerateInsight_ReportNotFound(t *testing.T) {
	deps := newTestDeps(t)

	deps.reportRepo.EXPECT().
		GetReportByID("desconhecido").
		Return(nil, nil)

	_, err := deps.service.RegenerateInsight(context.Background(), "desconhecido")

	assert.ErrorIs(t, err, ErrReportNotFound)
}

func TestRegenerateInsight_ModelFailure(t *testing.T) {
	deps := newTestDeps(t)

	stored := &domain.ScanReport{
		ID:      "rep123",
		Filters: &domain.ScanFilters{TopN: 2},
		Groups:  []*domain.AdGroup{{Title: "Oferta A"}},
	}

	deps.reportRepo.EXPECT().
		GetReportByID("rep123").
		Return(stored, nil)

	deps.insighter.EXPECT().
		GenerateInsight(gomock.Any(), stored.Groups, 2).
		Return(nil, errors.New("quota exceeded"))

	// A falha do modelo é persistida no relatório antes de subir
	deps.reportRepo.EXPECT().
		UpdateReportInsight("rep123", nil, "quota exceeded")

	_, err := deps.service.RegenerateInsight(context.Background(), "rep123")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsightGeneration)
	assert.Contains(t, err.Error(), "quota exceeded")
}
