package apifyclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	apifydomain "github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify/domain"
	"github.com/vfg2006/ad-intel-api/pkg/utils"
)

// GetDatasetItems baixa os itens do dataset gerado por uma execução bem-sucedida
func (c *ApifyClient) GetDatasetItems(ctx context.Context, datasetID string) ([]apifydomain.RawAd, error) {
	if datasetID == "" {
		return nil, fmt.Errorf("apify run returned no dataset ID")
	}

	url := fmt.Sprintf("%s/datasets/%s/items?token=%s", c.Cfg.Apify.BaseURL, datasetID, c.Cfg.Apify.APIToken)

	data, err := utils.MakeRequest(ctx, url)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"dataset_id": datasetID,
			"error":      err.Error(),
		}).Error("apify: failed to fetch dataset items")
		return nil, err
	}

	var items []apifydomain.RawAd
	if err := json.Unmarshal(data, &items); err != nil {
		logrus.WithError(err).Error("apify: failed to decode dataset items")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"dataset_id": datasetID,
		"items":      len(items),
	}).Debug("apify: dataset items fetched")

	return items, nil
}
