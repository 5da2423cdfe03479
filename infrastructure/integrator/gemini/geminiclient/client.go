package geminiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"google.golang.org/genai"
)

// Part é uma parte da requisição multimodal: texto ou bytes de imagem.
type Part struct {
	Text     string
	Data     []byte
	MimeType string
}

//go:generate mockgen -source=client.go -destination=../mocks/client_mock.go -package=mocks
type Client interface {
	GenerateContent(ctx context.Context, parts []Part) (string, error)
}

type GeminiClient struct {
	Cfg    *config.Config
	client *genai.Client
}

func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("gemini API key não configurada")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente Gemini: %w", err)
	}

	return &GeminiClient{
		Cfg:    cfg,
		client: client,
	}, nil
}

// GenerateContent envia uma única requisição multimodal e retorna o texto da resposta
func (c *GeminiClient) GenerateContent(ctx context.Context, parts []Part) (string, error) {
	timeout := time.Duration(c.Cfg.Gemini.RequestTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	genaiParts := make([]*genai.Part, 0, len(parts))
	for _, part := range parts {
		if len(part.Data) > 0 {
			genaiParts = append(genaiParts, genai.NewPartFromBytes(part.Data, part.MimeType))
			continue
		}
		genaiParts = append(genaiParts, genai.NewPartFromText(part.Text))
	}

	contents := []*genai.Content{
		genai.NewContentFromParts(genaiParts, genai.RoleUser),
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.Cfg.Gemini.Model, contents, nil)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"model": c.Cfg.Gemini.Model,
			"error": err.Error(),
		}).Error("gemini: generate content request failed")
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}

	logrus.WithFields(logrus.Fields{
		"model":       c.Cfg.Gemini.Model,
		"parts":       len(parts),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("gemini: generate content succeeded")

	return text, nil
}
