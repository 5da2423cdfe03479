package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	repomocks "github.com/vfg2006/ad-intel-api/infrastructure/repository/mocks"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"github.com/vfg2006/ad-intel-api/internal/usecases/scanning"
	scanmocks "github.com/vfg2006/ad-intel-api/internal/usecases/scanning/mocks"
	"go.uber.org/mock/gomock"
)

func syncConfig(enabled bool) *config.Config {
	return &config.Config{
		BrandScanSync: config.BrandScanSync{
			CronSchedule:        "0 6 * * *",
			RequestDelaySeconds: 0,
			Enabled:             enabled,
			WithInsight:         true,
		},
	}
}

func TestScanAllBrands(t *testing.T) {
	ctrl := gomock.NewController(t)
	brandRepo := repomocks.NewMockBrandRepository(ctrl)
	scanService := scanmocks.NewMockScanner(ctrl)

	brands := []*domain.Brand{
		{ID: "b1", Name: "Marca 1"},
		{ID: "b2", Name: "Marca 2"},
	}

	brandRepo.EXPECT().ListBrands(true).Return(brands, nil)

	scanService.EXPECT().
		Scan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *scanning.ScanRequest) (*domain.ScanReport, error) {
			assert.True(t, req.Filters.WithInsight)
			return &domain.ScanReport{ID: "r-" + req.BrandID}, nil
		}).
		Times(2)

	service := NewBrandScanSyncService(brandRepo, scanService, syncConfig(true))
	service.scanAllBrands(context.Background())

	status := service.GetStatus()
	assert.Equal(t, false, status["running"])
	assert.Contains(t, status, "last_started_at")
	assert.Contains(t, status, "last_completed_at")
}

func TestScanAllBrands_ContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	brandRepo := repomocks.NewMockBrandRepository(ctrl)
	scanService := scanmocks.NewMockScanner(ctrl)

	brands := []*domain.Brand{
		{ID: "b1", Name: "Marca 1"},
		{ID: "b2", Name: "Marca 2"},
	}

	brandRepo.EXPECT().ListBrands(true).Return(brands, nil)

	gomock.InOrder(
		scanService.EXPECT().Scan(gomock.Any(), gomock.Any()).Return(nil, errors.New("actor run failed")),
		scanService.EXPECT().Scan(gomock.Any(), gomock.Any()).Return(&domain.ScanReport{ID: "r-b2"}, nil),
	)

	service := NewBrandScanSyncService(brandRepo, scanService, syncConfig(true))
	service.scanAllBrands(context.Background())
}

func TestScanAllBrands_RespectsCancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	brandRepo := repomocks.NewMockBrandRepository(ctrl)
	scanService := scanmocks.NewMockScanner(ctrl)

	brandRepo.EXPECT().ListBrands(true).Return([]*domain.Brand{{ID: "b1"}}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewBrandScanSyncService(brandRepo, scanService, syncConfig(true))
	service.scanAllBrands(ctx)
}

func TestStart_DisabledByConfig(t *testing.T) {
	ctrl := gomock.NewController(t)

	service := NewBrandScanSyncService(
		repomocks.NewMockBrandRepository(ctrl),
		scanmocks.NewMockScanner(ctrl),
		syncConfig(false),
	)

	require.NoError(t, service.Start(context.Background()))

	assert.Equal(t, false, service.GetStatus()["running"])
}

func TestStatus_ReflectsRunningState(t *testing.T) {
	ctrl := gomock.NewController(t)
	brandRepo := repomocks.NewMockBrandRepository(ctrl)
	scanService := scanmocks.NewMockScanner(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})

	brandRepo.EXPECT().ListBrands(true).Return([]*domain.Brand{{ID: "b1"}}, nil)
	scanService.EXPECT().
		Scan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *scanning.ScanRequest) (*domain.ScanReport, error) {
			close(started)
			<-release
			return &domain.ScanReport{ID: "r1"}, nil
		})

	service := NewBrandScanSyncService(brandRepo, scanService, syncConfig(true))

	done := make(chan struct{})
	go func() {
		service.scanAllBrands(context.Background())
		close(done)
	}()

	<-started
	assert.Equal(t, true, service.GetStatus()["running"])

	close(release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("varredura não terminou a tempo")
	}

	assert.Equal(t, false, service.GetStatus()["running"])
}
