package aggregating

import (
	"math"
	"time"
)

// Scorer calcula a intensidade de um grupo a partir da contagem de ocorrências
// e da data em que o criativo foi visto pela primeira vez. Qualquer Scorer deve
// ser monotônico na contagem de ocorrências.
type Scorer func(occurrences int, firstSeen time.Time, now time.Time) float64

// CountScorer usa a contagem pura de ocorrências como intensidade
func CountScorer(occurrences int, _ time.Time, _ time.Time) float64 {
	return float64(occurrences)
}

// RecencyScorer pondera a contagem por um decaimento exponencial com meia-vida
// de 30 dias. Criativos desconhecidos (firstSeen zerado) não recebem bônus.
func RecencyScorer(occurrences int, firstSeen time.Time, now time.Time) float64 {
	base := float64(occurrences)
	if firstSeen.IsZero() || firstSeen.After(now) {
		return base
	}

	ageDays := now.Sub(firstSeen).Hours() / 24
	return base * (1 + math.Exp(-ageDays/30))
}

// ScorerFromName resolve o scorer configurado; "count" é o padrão
func ScorerFromName(name string) Scorer {
	if name == "recency" {
		return RecencyScorer
	}
	return CountScorer
}
