package insighting

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/gemini/mocks"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"github.com/vfg2006/ad-intel-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Gemini: config.Gemini{Model: "gemini-2.5-flash"},
		Scan:   config.Scan{DefaultTopN: 3},
	}
}

func testGroups() []*domain.AdGroup {
	return []*domain.AdGroup{
		{Title: "Anúncio A", CopyText: "Oferta A", ImageURL: "https://cdn.com/a.jpg", Occurrences: 5},
		{Title: "Anúncio B", CopyText: "Oferta B", ImageURL: "https://cdn.com/b.jpg", Occurrences: 3},
		{Title: "Anúncio C", CopyText: "Oferta C", ImageURL: "https://cdn.com/c.jpg", Occurrences: 1},
	}
}

func TestGenerateInsight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockImageFetcher(ctrl)
	model := mocks.NewMockClient(ctrl)

	fetcher.EXPECT().FetchImage(gomock.Any(), "https://cdn.com/a.jpg").Return([]byte{0x01}, "image/jpeg", nil)
	fetcher.EXPECT().FetchImage(gomock.Any(), "https://cdn.com/b.jpg").Return([]byte{0x02}, "image/png", nil)
	fetcher.EXPECT().FetchImage(gomock.Any(), "https://cdn.com/c.jpg").Return([]byte{0x03}, "image/jpeg", nil)

	model.EXPECT().
		GenerateContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, parts []geminiclient.Part) (string, error) {
			// prompt de sistema + (texto + imagem) por criativo
			require.Len(t, parts, 7)
			assert.Contains(t, parts[1].Text, "Oferta A")
			assert.Equal(t, []byte{0x01}, parts[2].Data)
			return "[INSIGHT]\nConcorrente apostando em urgência.\n\n[REMIX_PROMPT]\nStudio shot of a product on sale.", nil
		})

	service := NewService(testConfig(), model, fetcher)
	service.now = func() time.Time { return time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC) }

	report, err := service.GenerateInsight(context.Background(), testGroups(), 3)

	require.NoError(t, err)
	assert.Equal(t, "Concorrente apostando em urgência.", report.Insight)
	assert.Equal(t, "Studio shot of a product on sale.", report.RemixPrompt)
	assert.Equal(t, "gemini-2.5-flash", report.Model)
	assert.Equal(t, 3, report.CreativesAnalyzed)
	assert.Equal(t, 0, report.CreativesSkipped)
}

func TestGenerateInsight_SkipsFailedImageDownloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockImageFetcher(ctrl)
	model := mocks.NewMockClient(ctrl)

	fetcher.EXPECT().FetchImage(gomock.Any(), "https://cdn.com/a.jpg").Return([]byte{0x01}, "image/jpeg", nil)
	fetcher.EXPECT().FetchImage(gomock.Any(), "https://cdn.com/b.jpg").Return(nil, "", errors.New("timeout"))
	fetcher.EXPECT().FetchImage(gomock.Any(), "https://cdn.com/c.jpg").Return([]byte{0x03}, "image/jpeg", nil)

	model.EXPECT().
		GenerateContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, parts []geminiclient.Part) (string, error) {
			// o criativo B sai do payload, os demais permanecem
			require.Len(t, parts, 5)
			return "[INSIGHT]\nanálise\n[REMIX_PROMPT]\nprompt", nil
		})

	service := NewService(testConfig(), model, fetcher)

	report, err := service.GenerateInsight(context.Background(), testGroups(), 3)

	require.NoError(t, err)
	assert.Equal(t, 2, report.CreativesAnalyzed)
	assert.Equal(t, 1, report.CreativesSkipped)
}

func TestGenerateInsight_SelectsOnlyTopNImageAds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockImageFetcher(ctrl)
	model := mocks.NewMockClient(ctrl)

	groups := []*domain.AdGroup{
		{Title: "Vídeo", VideoURL: "https://cdn.com/v.mp4", ImageURL: "https://cdn.com/v.jpg", IsVideo: true},
		{Title: "Imagem 1", ImageURL: "https://cdn.com/1.jpg"},
		{Title: "Sem imagem"},
		{Title: "Imagem 2", ImageURL: "https://cdn.com/2.jpg"},
		{Title: "Imagem 3", ImageURL: "https://cdn.com/3.jpg"},
	}

	fetcher.EXPECT().FetchImage(gomock.Any(), "https://cdn.com/1.jpg").Return([]byte{0x01}, "image/jpeg", nil)
	fetcher.EXPECT().FetchImage(gomock.Any(), "https://cdn.com/2.jpg").Return([]byte{0x02}, "image/jpeg", nil)

	model.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).Return("texto sem marcadores", nil)

	service := NewService(testConfig(), model, fetcher)

	report, err := service.GenerateInsight(context.Background(), groups, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, report.CreativesAnalyzed)
}

func TestGenerateInsight_NoImageAds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(testConfig(), mocks.NewMockClient(ctrl), mocks.NewMockImageFetcher(ctrl))

	groups := []*domain.AdGroup{
		{Title: "Vídeo", IsVideo: true, ImageURL: "https://cdn.com/v.jpg"},
	}

	report, err := service.GenerateInsight(context.Background(), groups, 3)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrNoImageAds)
}

func TestGenerateInsight_AllImageDownloadsFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockImageFetcher(ctrl)
	fetcher.EXPECT().FetchImage(gomock.Any(), gomock.Any()).Return(nil, "", errors.New("timeout")).Times(3)

	service := NewService(testConfig(), mocks.NewMockClient(ctrl), fetcher)

	report, err := service.GenerateInsight(context.Background(), testGroups(), 3)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrNoImagesFetched)
}

func TestGenerateInsight_ModelFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := mocks.NewMockImageFetcher(ctrl)
	fetcher.EXPECT().FetchImage(gomock.Any(), gomock.Any()).Return([]byte{0x01}, "image/jpeg", nil).Times(3)

	model := mocks.NewMockClient(ctrl)
	model.EXPECT().GenerateContent(gomock.Any(), gomock.Any()).Return("", errors.New("quota exceeded"))

	service := NewService(testConfig(), model, fetcher)

	report, err := service.GenerateInsight(context.Background(), testGroups(), 3)

	assert.Nil(t, report)
	assert.Error(t, err)
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name            string
		raw             string
		expectedInsight string
		expectedPrompt  string
	}{
		{
			name:            "resposta com os dois marcadores",
			raw:             "[INSIGHT]\nanálise aqui\n\n[REMIX_PROMPT]\nprompt aqui",
			expectedInsight: "análise aqui",
			expectedPrompt:  "prompt aqui",
		},
		{
			name:            "sem marcadores o texto inteiro vira insight",
			raw:             "o modelo ignorou o formato pedido",
			expectedInsight: "o modelo ignorou o formato pedido",
			expectedPrompt:  "",
		},
		{
			name:            "apenas marcador de insight",
			raw:             "[INSIGHT]\nanálise sozinha",
			expectedInsight: "análise sozinha",
			expectedPrompt:  "",
		},
		{
			name:            "apenas marcador de prompt",
			raw:             "preâmbulo\n[REMIX_PROMPT]\nprompt sozinho",
			expectedInsight: "preâmbulo",
			expectedPrompt:  "prompt sozinho",
		},
		{
			name:            "resposta embrulhada em code fence",
			raw:             "```text\n[INSIGHT]\nanálise\n[REMIX_PROMPT]\nprompt\n```",
			expectedInsight: "análise",
			expectedPrompt:  "prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insight, remixPrompt := parseResponse(tt.raw)
			assert.Equal(t, tt.expectedInsight, insight)
			assert.Equal(t, tt.expectedPrompt, remixPrompt)
		})
	}
}
