package apifyclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

type startRunInput struct {
	StartURLs    []startURL `json:"startUrls"`
	ResultsLimit int        `json:"resultsLimit"`
	ViewMode     string     `json:"viewMode"`
	RenderType   string     `json:"renderType"`
}

type startURL struct {
	URL string `json:"url"`
}

type runResponse struct {
	Data Run `json:"data"`
}

// StartRun dispara uma execução do actor facebook-ads-scraper para a URL informada.
// ResultsLimit limita o dataset para evitar esperas longas.
func (c *ApifyClient) StartRun(ctx context.Context, adLibraryURL string, resultsLimit int) (*Run, error) {
	if c.Cfg.Apify.APIToken == "" {
		return nil, fmt.Errorf("apify API token não configurado")
	}

	url := fmt.Sprintf("%s/acts/%s/runs?token=%s", c.Cfg.Apify.BaseURL, c.Cfg.Apify.ActorID, c.Cfg.Apify.APIToken)

	input := startRunInput{
		StartURLs:    []startURL{{URL: adLibraryURL}},
		ResultsLimit: resultsLimit,
		ViewMode:     "list",
		RenderType:   "html",
	}

	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		logrus.WithError(err).Error("apify: failed to build start run request")
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("apify: failed to start actor run")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("apify start run failed: status %d: %s", resp.StatusCode, string(body))
	}

	var response runResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("apify: failed to decode start run response")
		return nil, err
	}

	if response.Data.ID == "" {
		return nil, fmt.Errorf("apify start run returned no run ID")
	}

	logrus.WithFields(logrus.Fields{
		"run_id":   response.Data.ID,
		"actor_id": c.Cfg.Apify.ActorID,
	}).Debug("apify: actor run started")

	return &response.Data, nil
}

// GetRun consulta o status de uma execução em andamento
func (c *ApifyClient) GetRun(ctx context.Context, runID string) (*Run, error) {
	url := fmt.Sprintf("%s/actor-runs/%s?token=%s", c.Cfg.Apify.BaseURL, runID, c.Cfg.Apify.APIToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Error("apify: failed to get run status")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("apify get run failed: status %d: %s", resp.StatusCode, string(body))
	}

	var response runResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}

	return &response.Data, nil
}
