package insighting

import (
	"strings"
)

const (
	insightMarker = "[INSIGHT]"
	promptMarker  = "[REMIX_PROMPT]"
)

// stripCodeFence remove um eventual bloco ```...``` que o modelo insista em
// colocar ao redor da resposta, apesar da instrução em contrário.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// descarta o identificador de linguagem na primeira linha
		first := strings.TrimSpace(trimmed[:idx])
		if first != "" && !strings.ContainsAny(first, " \t") {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}

// parseResponse separa a resposta do modelo nas seções de insight e de prompt.
// Quando os marcadores não aparecem, o texto inteiro vira o insight e o prompt
// fica vazio. Nunca retorna erro.
func parseResponse(raw string) (insight, remixPrompt string) {
	cleaned := stripCodeFence(raw)

	insightIdx := strings.Index(cleaned, insightMarker)
	promptIdx := strings.Index(cleaned, promptMarker)

	if insightIdx < 0 && promptIdx < 0 {
		return cleaned, ""
	}

	if promptIdx < 0 {
		return strings.TrimSpace(cleaned[insightIdx+len(insightMarker):]), ""
	}

	remixPrompt = strings.TrimSpace(cleaned[promptIdx+len(promptMarker):])

	if insightIdx < 0 || insightIdx > promptIdx {
		return strings.TrimSpace(cleaned[:promptIdx]), remixPrompt
	}

	insight = strings.TrimSpace(cleaned[insightIdx+len(insightMarker) : promptIdx])
	return insight, remixPrompt
}
