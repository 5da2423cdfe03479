package domain

import (
	"time"
)

type DisplayFormat string

const (
	DisplayFormatImage    DisplayFormat = "IMAGE"
	DisplayFormatVideo    DisplayFormat = "VIDEO"
	DisplayFormatCarousel DisplayFormat = "CAROUSEL"
)

// AdRecord é um criativo bruto já limpo pelo integrador, pronto para agregação.
// LinkURL é a chave primária de deduplicação; ContentHash é a chave secundária
// usada quando URLs variam (parâmetros de tracking, espelhos) mas o criativo é o mesmo.
type AdRecord struct {
	AdArchiveID   string        `json:"ad_archive_id"`
	PageID        string        `json:"page_id"`
	PageName      string        `json:"page_name"`
	Title         string        `json:"title"`
	CopyText      string        `json:"copy_text"`
	CTA           string        `json:"cta"`
	LinkURL       string        `json:"link_url"`
	ImageURL      string        `json:"image_url"`
	VideoURL      string        `json:"video_url,omitempty"`
	ContentHash   string        `json:"content_hash,omitempty"`
	DisplayFormat DisplayFormat `json:"display_format"`
	IsVideo       bool          `json:"is_video"`
	FirstSeen     time.Time     `json:"first_seen"`
}

// AdGroup é o resultado da deduplicação: um grupo de criativos idênticos
// com a contagem de ocorrências acumulada e o score de intensidade derivado.
type AdGroup struct {
	AdArchiveIDs  []string      `json:"ad_ids"`
	PageID        string        `json:"page_id"`
	PageName      string        `json:"page_name"`
	Title         string        `json:"title"`
	CopyText      string        `json:"copy_text"`
	CopyVariants  []string      `json:"copy_variants,omitempty"`
	CTA           string        `json:"cta"`
	LinkURL       string        `json:"link_url"`
	NormalizedURL string        `json:"-"`
	ImageURL      string        `json:"image_url"`
	VideoURL      string        `json:"video_url,omitempty"`
	ContentHash   string        `json:"-"`
	DisplayFormat DisplayFormat `json:"display_format"`
	IsVideo       bool          `json:"is_video"`
	FirstSeen     time.Time     `json:"first_seen"`
	Occurrences   int           `json:"occurrences"`
	Intensity     float64       `json:"intensity"`
}
