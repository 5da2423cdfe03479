package domain

import (
	"time"
)

// InsightReport é a saída do pipeline de análise multimodal: um resumo
// estratégico da concorrência e um prompt de remix para ferramentas de
// geração de imagem.
type InsightReport struct {
	Insight           string    `json:"insight"`
	RemixPrompt       string    `json:"remix_prompt"`
	Model             string    `json:"model"`
	CreativesAnalyzed int       `json:"creatives_analyzed"`
	CreativesSkipped  int       `json:"creatives_skipped"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// ScanFilters contém os parâmetros de uma varredura de anúncios.
type ScanFilters struct {
	ResultsLimit int  `json:"results_limit"`
	WindowHours  *int `json:"window_hours,omitempty"`
	TopN         int  `json:"top_n"`
	WithInsight  bool `json:"with_insight"`
}

// ScanReport é o resultado persistido de uma varredura: a lista ranqueada
// de grupos deduplicados mais o relatório de insight, quando gerado.
// A falha do pipeline de insight não invalida o ranking (Insight fica nulo
// e InsightError carrega o motivo).
type ScanReport struct {
	ID           string         `json:"id"`
	BrandID      *string        `json:"brand_id,omitempty"`
	SourceURL    string         `json:"source_url"`
	TotalRaw     int            `json:"total_raw"`
	TotalGroups  int            `json:"total_groups"`
	Filters      *ScanFilters   `json:"filters,omitempty"`
	Groups       []*AdGroup     `json:"groups"`
	Insight      *InsightReport `json:"insight,omitempty"`
	InsightError string         `json:"insight_error,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
