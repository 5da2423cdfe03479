package apifyclient

import (
	"context"
	"net/http"
	"time"

	apifydomain "github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify/domain"
	"github.com/vfg2006/ad-intel-api/internal/config"
)

// Status terminais de uma execução do actor
const (
	RunStatusSucceeded = "SUCCEEDED"
	RunStatusFailed    = "FAILED"
	RunStatusAborted   = "ABORTED"
	RunStatusTimedOut  = "TIMED-OUT"
)

//go:generate mockgen -source=client.go -destination=../mocks/client_mock.go -package=mocks
type Client interface {
	StartRun(ctx context.Context, adLibraryURL string, resultsLimit int) (*Run, error)
	GetRun(ctx context.Context, runID string) (*Run, error)
	GetDatasetItems(ctx context.Context, datasetID string) ([]apifydomain.RawAd, error)
}

// Run é o estado de uma execução do actor na API da Apify
type Run struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

func (r *Run) Finished() bool {
	switch r.Status {
	case RunStatusSucceeded, RunStatusFailed, RunStatusAborted, RunStatusTimedOut:
		return true
	}
	return false
}

type ApifyClient struct {
	Cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &ApifyClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}
