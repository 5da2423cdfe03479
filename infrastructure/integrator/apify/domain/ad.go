package domain

import (
	"encoding/json"
)

// RawAd é um item bruto do dataset retornado pelo actor facebook-ads-scraper.
// Só os campos necessários para a limpeza são mapeados; o resto é descartado.
type RawAd struct {
	AdArchiveID        string   `json:"adArchiveID"`
	PageID             string   `json:"pageID"`
	PageName           string   `json:"pageName"`
	StartDateFormatted string   `json:"startDateFormatted"`
	Snapshot           Snapshot `json:"snapshot"`
}

type Snapshot struct {
	Body          Body    `json:"body"`
	Title         string  `json:"title"`
	CTAText       string  `json:"ctaText"`
	LinkURL       string  `json:"linkUrl"`
	DisplayFormat string  `json:"displayFormat"`
	Images        []Image `json:"images"`
	Videos        []Video `json:"videos"`
	Cards         []Card  `json:"cards"`
}

type Body struct {
	Text string `json:"text"`
}

type Image struct {
	OriginalImageURL string `json:"originalImageUrl"`
	ResizedImageURL  string `json:"resizedImageUrl"`
}

type Video struct {
	VideoPreviewImageURL string `json:"videoPreviewImageUrl"`
	VideoHDURL           string `json:"videoHdUrl"`
	VideoSDURL           string `json:"videoSdUrl"`
}

type Card struct {
	Body                 CardBody `json:"body"`
	Title                string   `json:"title"`
	OriginalImageURL     string   `json:"originalImageUrl"`
	ResizedImageURL      string   `json:"resizedImageUrl"`
	VideoPreviewImageURL string   `json:"videoPreviewImageUrl"`
	VideoHDURL           string   `json:"videoHdUrl"`
	VideoURL             string   `json:"videoUrl"`
}

// CardBody aceita tanto uma string quanto um objeto {"text": "..."},
// já que o actor retorna os dois formatos dependendo do tipo de anúncio.
type CardBody struct {
	Text string
}

func (b *CardBody) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		b.Text = asString
		return nil
	}

	var asObject struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &asObject); err != nil {
		// Formato desconhecido: ignora em vez de falhar a ingestão inteira
		b.Text = ""
		return nil
	}

	b.Text = asObject.Text
	return nil
}
