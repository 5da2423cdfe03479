package apify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify/apifyclient"
	apifydomain "github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify/domain"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"github.com/vfg2006/ad-intel-api/pkg/utils"
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks
type AdLibraryIntegrator interface {
	FetchAds(ctx context.Context, adLibraryURL string, resultsLimit int) ([]domain.AdRecord, error)
}

type ApifyIntegrator struct {
	cfg    *config.Config
	Client apifyclient.Client
}

func New(cfg *config.Config, client apifyclient.Client) *ApifyIntegrator {
	return &ApifyIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// FetchAds executa o actor, aguarda a conclusão e retorna os criativos já limpos.
// Itens malformados do dataset são pulados sem interromper a ingestão.
func (s *ApifyIntegrator) FetchAds(ctx context.Context, adLibraryURL string, resultsLimit int) ([]domain.AdRecord, error) {
	run, err := s.Client.StartRun(ctx, adLibraryURL, resultsLimit)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"url":   adLibraryURL,
			"error": err.Error(),
		}).Error("apify: failed to start scraper run")
		return nil, err
	}

	run, err = s.waitForRun(ctx, run.ID)
	if err != nil {
		return nil, err
	}

	items, err := s.Client.GetDatasetItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.AdRecord, 0, len(items))
	skipped := 0
	for i := range items {
		record := FactoryAdRecord(&items[i])
		if record == nil {
			skipped++
			continue
		}
		records = append(records, *record)
	}

	logrus.WithFields(logrus.Fields{
		"url":     adLibraryURL,
		"total":   len(items),
		"cleaned": len(records),
		"skipped": skipped,
	}).Info("apify: successfully fetched and cleaned ads")

	return records, nil
}

// waitForRun consulta o status da execução até um estado terminal ou estouro de tentativas
func (s *ApifyIntegrator) waitForRun(ctx context.Context, runID string) (*apifyclient.Run, error) {
	delay := time.Duration(s.cfg.Apify.PollDelaySecs) * time.Second
	if delay <= 0 {
		delay = 3 * time.Second
	}

	maxAttempts := s.cfg.Apify.PollMaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 100
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}

		run, err := s.Client.GetRun(ctx, runID)
		if err != nil {
			return nil, err
		}

		if !run.Finished() {
			continue
		}

		if run.Status != apifyclient.RunStatusSucceeded {
			return nil, fmt.Errorf("apify run failed with status: %s", run.Status)
		}

		logrus.WithFields(logrus.Fields{
			"run_id":   runID,
			"attempts": attempt + 1,
		}).Debug("apify: run finished")

		return run, nil
	}

	return nil, fmt.Errorf("apify run timed out after %d attempts", maxAttempts)
}

// isTemplateVariable detecta variáveis de template DCO como {{product.brand}}
func isTemplateVariable(text string) bool {
	return text != "" && strings.Contains(text, "{{") && strings.Contains(text, "}}")
}

// FactoryAdRecord limpa um item bruto do dataset e o converte em AdRecord.
// Retorna nil quando o item não tem conteúdo aproveitável (sem ID e sem texto).
func FactoryAdRecord(ad *apifydomain.RawAd) *domain.AdRecord {
	snapshot := ad.Snapshot

	bodyText := snapshot.Body.Text
	cards := snapshot.Cards

	// Texto vazio ou com variável de template: tenta o primeiro card (anúncios DCO/carrossel)
	if (bodyText == "" || isTemplateVariable(bodyText)) && len(cards) > 0 {
		if cardBody := cards[0].Body.Text; cardBody != "" && !isTemplateVariable(cardBody) {
			bodyText = cardBody
		}
	}

	// Sem fallback utilizável, a variável de template não serve como texto
	if isTemplateVariable(bodyText) {
		bodyText = ""
	}

	ctaText := snapshot.CTAText
	if ctaText == "" {
		ctaText = "Learn More"
	}

	isVideo := snapshot.DisplayFormat == string(domain.DisplayFormatVideo) || len(snapshot.Videos) > 0

	// Normaliza o formato quando o snapshot não o informa
	displayFormat := domain.DisplayFormat(snapshot.DisplayFormat)
	if displayFormat == "" {
		switch {
		case isVideo:
			displayFormat = domain.DisplayFormatVideo
		case len(cards) > 1:
			displayFormat = domain.DisplayFormatCarousel
		default:
			displayFormat = domain.DisplayFormatImage
		}
	}

	var previewImageURL, videoURL string
	if isVideo {
		// Anúncio de vídeo: preview via videoPreviewImageUrl, com fallback nos cards
		if len(snapshot.Videos) > 0 {
			video := snapshot.Videos[0]
			previewImageURL = video.VideoPreviewImageURL
			videoURL = video.VideoHDURL
			if videoURL == "" {
				videoURL = video.VideoSDURL
			}
		}
		if videoURL == "" && len(cards) > 0 {
			card := cards[0]
			videoURL = card.VideoHDURL
			if videoURL == "" {
				videoURL = card.VideoURL
			}
			if previewImageURL == "" {
				previewImageURL = card.VideoPreviewImageURL
				if previewImageURL == "" {
					previewImageURL = card.OriginalImageURL
				}
			}
		}
	} else {
		// Anúncio de imagem: carrossel usa só o primeiro card
		if len(cards) > 0 {
			previewImageURL = cards[0].OriginalImageURL
			if previewImageURL == "" {
				previewImageURL = cards[0].ResizedImageURL
			}
		} else if len(snapshot.Images) > 0 {
			previewImageURL = snapshot.Images[0].OriginalImageURL
			if previewImageURL == "" {
				previewImageURL = snapshot.Images[0].ResizedImageURL
			}
		}
	}

	// Título: snapshot.title -> cards[0].title -> primeira linha do texto -> fallback
	title := snapshot.Title
	if (title == "" || isTemplateVariable(title)) && len(cards) > 0 {
		title = cards[0].Title
	}
	if (title == "" || isTemplateVariable(title)) && bodyText != "" {
		firstLine := strings.TrimSpace(strings.SplitN(bodyText, "\n", 2)[0])
		title = utils.TruncateRunes(firstLine, 50)
		if len([]rune(firstLine)) > 50 {
			title += "..."
		}
	}
	if title == "" || isTemplateVariable(title) {
		title = "Sponsored Ad"
	}

	if ad.AdArchiveID == "" && bodyText == "" && previewImageURL == "" {
		return nil
	}

	record := &domain.AdRecord{
		AdArchiveID:   ad.AdArchiveID,
		PageID:        ad.PageID,
		PageName:      ad.PageName,
		Title:         title,
		CopyText:      bodyText,
		CTA:           ctaText,
		LinkURL:       snapshot.LinkURL,
		ImageURL:      previewImageURL,
		VideoURL:      videoURL,
		DisplayFormat: displayFormat,
		IsVideo:       isVideo,
	}

	if ad.StartDateFormatted != "" {
		if firstSeen, err := utils.ParseISODate(ad.StartDateFormatted); err == nil {
			record.FirstSeen = firstSeen
		} else {
			logrus.WithFields(logrus.Fields{
				"ad_archive_id": ad.AdArchiveID,
				"start_date":    ad.StartDateFormatted,
			}).Warn("apify: error parsing ad start date")
		}
	}

	return record
}
