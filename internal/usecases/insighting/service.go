package insighting

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"github.com/vfg2006/ad-intel-api/internal/domain"
)

var (
	// ErrNoImageAds indica que nenhum dos grupos ranqueados tem criativo de imagem.
	ErrNoImageAds = errors.New("nenhum anúncio de imagem disponível para análise")
	// ErrNoImagesFetched indica que todos os downloads de imagem falharam.
	ErrNoImagesFetched = errors.New("nenhuma imagem pôde ser baixada para análise")
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type Insighter interface {
	GenerateInsight(ctx context.Context, groups []*domain.AdGroup, topN int) (*domain.InsightReport, error)
}

type Service struct {
	cfg     *config.Config
	model   geminiclient.Client
	fetcher gemini.ImageFetcher
	now     func() time.Time
}

func NewService(cfg *config.Config, model geminiclient.Client, fetcher gemini.ImageFetcher) *Service {
	return &Service{
		cfg:     cfg,
		model:   model,
		fetcher: fetcher,
		now:     time.Now,
	}
}

type fetchedImage struct {
	groupIndex int
	data       []byte
	mimeType   string
}

// GenerateInsight analisa os top-N grupos de imagem em uma única chamada
// multimodal. Vídeos são pulados (análise de vídeo ainda não é suportada).
// Falha de download de uma imagem tira o criativo do payload, não do ranking.
func (s *Service) GenerateInsight(ctx context.Context, groups []*domain.AdGroup, topN int) (*domain.InsightReport, error) {
	if topN <= 0 {
		topN = s.cfg.Scan.DefaultTopN
	}

	imageGroups := make([]*domain.AdGroup, 0, topN)
	for _, group := range groups {
		if group.IsVideo || group.ImageURL == "" {
			continue
		}
		imageGroups = append(imageGroups, group)
		if len(imageGroups) == topN {
			break
		}
	}

	if len(imageGroups) == 0 {
		return nil, ErrNoImageAds
	}

	images := make([]fetchedImage, 0, len(imageGroups))
	skipped := 0
	for i, group := range imageGroups {
		data, mimeType, err := s.fetcher.FetchImage(ctx, group.ImageURL)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"image_url": group.ImageURL,
				"error":     err.Error(),
			}).Warn("insights: skipping creative, image fetch failed")
			skipped++
			continue
		}

		images = append(images, fetchedImage{
			groupIndex: i,
			data:       data,
			mimeType:   mimeType,
		})
	}

	if len(images) == 0 {
		return nil, ErrNoImagesFetched
	}

	response, err := s.model.GenerateContent(ctx, buildParts(imageGroups, images))
	if err != nil {
		return nil, errors.Wrap(err, "erro na chamada multimodal de análise")
	}

	insight, remixPrompt := parseResponse(response)
	if remixPrompt == "" {
		logrus.Warn("insights: response missing section markers, using raw text as insight")
	}

	logrus.WithFields(logrus.Fields{
		"creatives_analyzed": len(images),
		"creatives_skipped":  skipped,
	}).Info("insights: report generated")

	return &domain.InsightReport{
		Insight:           insight,
		RemixPrompt:       remixPrompt,
		Model:             s.cfg.Gemini.Model,
		CreativesAnalyzed: len(images),
		CreativesSkipped:  skipped,
		GeneratedAt:       s.now(),
	}, nil
}
