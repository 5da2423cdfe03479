package apify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify/apifyclient"
	apifydomain "github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify/domain"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify/mocks"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"go.uber.org/mock/gomock"
)

const testAdLibraryURL = "https://www.facebook.com/ads/library/?view_all_page_id=123"

func newTestIntegrator(t *testing.T) (*ApifyIntegrator, *mocks.MockClient) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)

	cfg := &config.Config{
		Apify: config.Apify{
			PollDelaySecs:   1,
			PollMaxAttempts: 3,
		},
	}

	return New(cfg, client), client
}

func imageAd(id, body, imageURL string) apifydomain.RawAd {
	return apifydomain.RawAd{
		AdArchiveID: id,
		PageID:      "pg1",
		PageName:    "Loja Exemplo",
		Snapshot: apifydomain.Snapshot{
			Body:    apifydomain.Body{Text: body},
			Title:   "Oferta",
			LinkURL: "https://shop.com/x",
			Images:  []apifydomain.Image{{OriginalImageURL: imageURL}},
		},
	}
}

func TestFetchAds_CleansAndSkipsMalformedItems(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	items := []apifydomain.RawAd{
		imageAd("ad1", "Compre agora", "https://cdn.com/a.jpg"),
		{}, // item sem ID, texto ou imagem é descartado
		imageAd("ad2", "Frete grátis", "https://cdn.com/b.jpg"),
	}

	client.EXPECT().
		StartRun(gomock.Any(), testAdLibraryURL, 50).
		Return(&apifyclient.Run{ID: "run1"}, nil)

	client.EXPECT().
		GetRun(gomock.Any(), "run1").
		Return(&apifyclient.Run{ID: "run1", Status: apifyclient.RunStatusSucceeded, DefaultDatasetID: "ds1"}, nil)

	client.EXPECT().
		GetDatasetItems(gomock.Any(), "ds1").
		Return(items, nil)

	records, err := integrator.FetchAds(context.Background(), testAdLibraryURL, 50)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ad1", records[0].AdArchiveID)
	assert.Equal(t, "ad2", records[1].AdArchiveID)
}

func TestFetchAds_WaitsForRunToFinish(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		StartRun(gomock.Any(), testAdLibraryURL, 10).
		Return(&apifyclient.Run{ID: "run1"}, nil)

	gomock.InOrder(
		client.EXPECT().
			GetRun(gomock.Any(), "run1").
			Return(&apifyclient.Run{ID: "run1", Status: "RUNNING"}, nil),
		client.EXPECT().
			GetRun(gomock.Any(), "run1").
			Return(&apifyclient.Run{ID: "run1", Status: apifyclient.RunStatusSucceeded, DefaultDatasetID: "ds1"}, nil),
	)

	client.EXPECT().
		GetDatasetItems(gomock.Any(), "ds1").
		Return([]apifydomain.RawAd{}, nil)

	records, err := integrator.FetchAds(context.Background(), testAdLibraryURL, 10)

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFetchAds_RunFailed(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		StartRun(gomock.Any(), testAdLibraryURL, 10).
		Return(&apifyclient.Run{ID: "run1"}, nil)

	client.EXPECT().
		GetRun(gomock.Any(), "run1").
		Return(&apifyclient.Run{ID: "run1", Status: apifyclient.RunStatusFailed}, nil)

	_, err := integrator.FetchAds(context.Background(), testAdLibraryURL, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), apifyclient.RunStatusFailed)
}

func TestFetchAds_RunAborted(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		StartRun(gomock.Any(), testAdLibraryURL, 10).
		Return(&apifyclient.Run{ID: "run1"}, nil)

	client.EXPECT().
		GetRun(gomock.Any(), "run1").
		Return(&apifyclient.Run{ID: "run1", Status: apifyclient.RunStatusAborted}, nil)

	_, err := integrator.FetchAds(context.Background(), testAdLibraryURL, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), apifyclient.RunStatusAborted)
}

func TestFetchAds_TimesOutAfterMaxAttempts(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		StartRun(gomock.Any(), testAdLibraryURL, 10).
		Return(&apifyclient.Run{ID: "run1"}, nil)

	client.EXPECT().
		GetRun(gomock.Any(), "run1").
		Return(&apifyclient.Run{ID: "run1", Status: "RUNNING"}, nil).
		Times(3)

	_, err := integrator.FetchAds(context.Background(), testAdLibraryURL, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestFetchAds_CancelledContext(t *testing.T) {
	integrator, client := newTestIntegrator(t)

	client.EXPECT().
		StartRun(gomock.Any(), testAdLibraryURL, 10).
		Return(&apifyclient.Run{ID: "run1"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := integrator.FetchAds(ctx, testAdLibraryURL, 10)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFactoryAdRecord_UsesCardBodyForTemplateVariables(t *testing.T) {
	// Anúncios DCO trazem variáveis como {{product.brand}} no corpo principal;
	// o texto real fica no primeiro card
	ad := &apifydomain.RawAd{
		AdArchiveID: "ad1",
		Snapshot: apifydomain.Snapshot{
			Body:  apifydomain.Body{Text: "{{product.brand}} em promoção"},
			Title: "{{product.name}}",
			Cards: []apifydomain.Card{
				{
					Body:             apifydomain.CardBody{Text: "Óculos com 50% de desconto"},
					Title:            "Promoção de verão",
					OriginalImageURL: "https://cdn.com/card.jpg",
				},
			},
		},
	}

	record := FactoryAdRecord(ad)

	require.NotNil(t, record)
	assert.Equal(t, "Óculos com 50% de desconto", record.CopyText)
	assert.Equal(t, "Promoção de verão", record.Title)
	assert.Equal(t, "https://cdn.com/card.jpg", record.ImageURL)
}

func TestFactoryAdRecord_TemplateCardBodyIsNotUsed(t *testing.T) {
	ad := &apifydomain.RawAd{
		AdArchiveID: "ad1",
		Snapshot: apifydomain.Snapshot{
			Body: apifydomain.Body{Text: "Texto original"},
			Cards: []apifydomain.Card{
				{Body: apifydomain.CardBody{Text: "{{product.description}}"}},
			},
		},
	}

	record := FactoryAdRecord(ad)

	require.NotNil(t, record)
	assert.Equal(t, "Texto original", record.CopyText)
}

func TestFactoryAdRecord_TitleFallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		snapshot apifydomain.Snapshot
		expected string
	}{
		{
			name: "usa o título do snapshot quando presente",
			snapshot: apifydomain.Snapshot{
				Body:  apifydomain.Body{Text: "Corpo"},
				Title: "Título oficial",
			},
			expected: "Título oficial",
		},
		{
			name: "cai para o título do primeiro card",
			snapshot: apifydomain.Snapshot{
				Body:  apifydomain.Body{Text: "Corpo"},
				Cards: []apifydomain.Card{{Title: "Título do card"}},
			},
			expected: "Título do card",
		},
		{
			name: "deriva da primeira linha do texto",
			snapshot: apifydomain.Snapshot{
				Body: apifydomain.Body{Text: "Primeira linha\nSegunda linha"},
			},
			expected: "Primeira linha",
		},
		{
			name:     "usa o fallback quando não há nada aproveitável",
			snapshot: apifydomain.Snapshot{Images: []apifydomain.Image{{OriginalImageURL: "https://cdn.com/a.jpg"}}},
			expected: "Sponsored Ad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := FactoryAdRecord(&apifydomain.RawAd{AdArchiveID: "ad1", Snapshot: tt.snapshot})

			require.NotNil(t, record)
			assert.Equal(t, tt.expected, record.Title)
		})
	}
}

func TestFactoryAdRecord_TruncatesLongDerivedTitle(t *testing.T) {
	longLine := "Uma primeira linha muito longa que certamente ultrapassa os cinquenta caracteres permitidos"

	record := FactoryAdRecord(&apifydomain.RawAd{
		AdArchiveID: "ad1",
		Snapshot:    apifydomain.Snapshot{Body: apifydomain.Body{Text: longLine}},
	})

	require.NotNil(t, record)
	assert.Len(t, []rune(record.Title), 53)
	assert.Contains(t, record.Title, "...")
}

func TestFactoryAdRecord_VideoPreviewResolution(t *testing.T) {
	tests := []struct {
		name          string
		snapshot      apifydomain.Snapshot
		expectedImage string
		expectedVideo string
	}{
		{
			name: "usa o preview e a URL HD do vídeo",
			snapshot: apifydomain.Snapshot{
				Body: apifydomain.Body{Text: "Assista"},
				Videos: []apifydomain.Video{{
					VideoPreviewImageURL: "https://cdn.com/preview.jpg",
					VideoHDURL:           "https://cdn.com/hd.mp4",
					VideoSDURL:           "https://cdn.com/sd.mp4",
				}},
			},
			expectedImage: "https://cdn.com/preview.jpg",
			expectedVideo: "https://cdn.com/hd.mp4",
		},
		{
			name: "cai para a URL SD quando não há HD",
			snapshot: apifydomain.Snapshot{
				Body: apifydomain.Body{Text: "Assista"},
				Videos: []apifydomain.Video{{
					VideoPreviewImageURL: "https://cdn.com/preview.jpg",
					VideoSDURL:           "https://cdn.com/sd.mp4",
				}},
			},
			expectedImage: "https://cdn.com/preview.jpg",
			expectedVideo: "https://cdn.com/sd.mp4",
		},
		{
			name: "formato VIDEO sem lista de vídeos usa o primeiro card",
			snapshot: apifydomain.Snapshot{
				Body:          apifydomain.Body{Text: "Assista"},
				DisplayFormat: string(domain.DisplayFormatVideo),
				Cards: []apifydomain.Card{{
					VideoPreviewImageURL: "https://cdn.com/card-preview.jpg",
					VideoHDURL:           "https://cdn.com/card-hd.mp4",
				}},
			},
			expectedImage: "https://cdn.com/card-preview.jpg",
			expectedVideo: "https://cdn.com/card-hd.mp4",
		},
		{
			name: "card sem preview de vídeo cai para a imagem original",
			snapshot: apifydomain.Snapshot{
				Body:          apifydomain.Body{Text: "Assista"},
				DisplayFormat: string(domain.DisplayFormatVideo),
				Cards: []apifydomain.Card{{
					OriginalImageURL: "https://cdn.com/card.jpg",
					VideoURL:         "https://cdn.com/card.mp4",
				}},
			},
			expectedImage: "https://cdn.com/card.jpg",
			expectedVideo: "https://cdn.com/card.mp4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := FactoryAdRecord(&apifydomain.RawAd{AdArchiveID: "ad1", Snapshot: tt.snapshot})

			require.NotNil(t, record)
			assert.True(t, record.IsVideo)
			assert.Equal(t, domain.DisplayFormatVideo, record.DisplayFormat)
			assert.Equal(t, tt.expectedImage, record.ImageURL)
			assert.Equal(t, tt.expectedVideo, record.VideoURL)
		})
	}
}

func TestFactoryAdRecord_ImagePreviewResolution(t *testing.T) {
	t.Run("carrossel usa só o primeiro card", func(t *testing.T) {
		record := FactoryAdRecord(&apifydomain.RawAd{
			AdArchiveID: "ad1",
			Snapshot: apifydomain.Snapshot{
				Body: apifydomain.Body{Text: "Confira"},
				Cards: []apifydomain.Card{
					{OriginalImageURL: "https://cdn.com/card1.jpg"},
					{OriginalImageURL: "https://cdn.com/card2.jpg"},
				},
			},
		})

		require.NotNil(t, record)
		assert.False(t, record.IsVideo)
		assert.Equal(t, domain.DisplayFormatCarousel, record.DisplayFormat)
		assert.Equal(t, "https://cdn.com/card1.jpg", record.ImageURL)
	})

	t.Run("cai para a imagem redimensionada do card", func(t *testing.T) {
		record := FactoryAdRecord(&apifydomain.RawAd{
			AdArchiveID: "ad1",
			Snapshot: apifydomain.Snapshot{
				Body:  apifydomain.Body{Text: "Confira"},
				Cards: []apifydomain.Card{{ResizedImageURL: "https://cdn.com/resized.jpg"}},
			},
		})

		require.NotNil(t, record)
		assert.Equal(t, domain.DisplayFormatImage, record.DisplayFormat)
		assert.Equal(t, "https://cdn.com/resized.jpg", record.ImageURL)
	})

	t.Run("sem cards usa a lista de imagens do snapshot", func(t *testing.T) {
		record := FactoryAdRecord(&apifydomain.RawAd{
			AdArchiveID: "ad1",
			Snapshot: apifydomain.Snapshot{
				Body:   apifydomain.Body{Text: "Confira"},
				Images: []apifydomain.Image{{ResizedImageURL: "https://cdn.com/img.jpg"}},
			},
		})

		require.NotNil(t, record)
		assert.Equal(t, "https://cdn.com/img.jpg", record.ImageURL)
	})
}

func TestFactoryAdRecord_DefaultsCTA(t *testing.T) {
	record := FactoryAdRecord(&apifydomain.RawAd{
		AdArchiveID: "ad1",
		Snapshot:    apifydomain.Snapshot{Body: apifydomain.Body{Text: "Confira"}},
	})

	require.NotNil(t, record)
	assert.Equal(t, "Learn More", record.CTA)
}

func TestFactoryAdRecord_ReturnsNilForEmptyItem(t *testing.T) {
	assert.Nil(t, FactoryAdRecord(&apifydomain.RawAd{}))

	// Variável de template sem card de fallback não conta como conteúdo
	assert.Nil(t, FactoryAdRecord(&apifydomain.RawAd{
		Snapshot: apifydomain.Snapshot{Body: apifydomain.Body{Text: "{{product.brand}}"}},
	}))
}

func TestFactoryAdRecord_ParsesStartDate(t *testing.T) {
	record := FactoryAdRecord(&apifydomain.RawAd{
		AdArchiveID:        "ad1",
		StartDateFormatted: "2025-11-03",
		Snapshot:           apifydomain.Snapshot{Body: apifydomain.Body{Text: "Confira"}},
	})

	require.NotNil(t, record)
	assert.Equal(t, time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), record.FirstSeen)
}

func TestFactoryAdRecord_KeepsRecordOnUnparsableStartDate(t *testing.T) {
	record := FactoryAdRecord(&apifydomain.RawAd{
		AdArchiveID:        "ad1",
		StartDateFormatted: "03/11/2025",
		Snapshot:           apifydomain.Snapshot{Body: apifydomain.Body{Text: "Confira"}},
	})

	require.NotNil(t, record)
	assert.True(t, record.FirstSeen.IsZero())
}
