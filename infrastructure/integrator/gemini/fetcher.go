package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/internal/config"
)

//go:generate mockgen -source=fetcher.go -destination=mocks/fetcher_mock.go -package=mocks
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) (data []byte, mimeType string, err error)
}

type HTTPImageFetcher struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewImageFetcher(cfg *config.Config) *HTTPImageFetcher {
	timeout := time.Duration(cfg.Gemini.ImageTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTPImageFetcher{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchImage baixa os bytes da imagem de preview de um criativo.
// O mime type vem do Content-Type, com sniffing como fallback.
func (f *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"image_url": imageURL,
			"error":     err.Error(),
		}).Warn("gemini: image download failed")
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image download failed: status %s", resp.Status)
	}

	maxSize := f.cfg.Gemini.MaxImageSizeBytes
	if maxSize <= 0 {
		maxSize = 8 * 1024 * 1024
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSize+1))
	if err != nil {
		return nil, "", err
	}

	if int64(len(data)) > maxSize {
		return nil, "", fmt.Errorf("image exceeds max size of %d bytes", maxSize)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	return data, mimeType, nil
}
