package aggregating

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/vfg2006/ad-intel-api/pkg/utils"
)

// trackingParams são parâmetros de query que variam entre veiculações do mesmo
// criativo e por isso são removidos antes da comparação de URLs.
var trackingParams = map[string]bool{
	"fbclid":      true,
	"gclid":       true,
	"msclkid":     true,
	"ttclid":      true,
	"igshid":      true,
	"mc_eid":      true,
	"ref":         true,
	"ref_src":     true,
	"campaign_id": true,
	"adset_id":    true,
	"ad_id":       true,
}

// NormalizeURL produz a forma canônica de uma URL para deduplicação:
// host e scheme em minúsculas, parâmetros de tracking removidos, fragmento
// descartado e query restante reordenada. A operação é idempotente.
func NormalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		// URL inquebrável: usa a string crua em minúsculas como melhor esforço
		return strings.ToLower(rawURL)
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""

	query := parsed.Query()
	for param := range query {
		if trackingParams[param] || strings.HasPrefix(param, "utm_") {
			query.Del(param)
		}
	}
	parsed.RawQuery = query.Encode()

	normalized := parsed.String()
	return strings.TrimSuffix(normalized, "/")
}

// cleanImageURL remove tudo após o "?" — URLs de CDN carregam assinaturas
// temporárias que mudam a cada scrape.
func cleanImageURL(imageURL string) string {
	if imageURL == "" {
		return ""
	}
	return strings.SplitN(imageURL, "?", 2)[0]
}

// DeriveContentHash calcula a impressão digital de conteúdo de um criativo:
// os primeiros 50 caracteres do texto mais a URL limpa da imagem de preview.
// Retorna vazio quando não há conteúdo para identificar.
func DeriveContentHash(copyText, imageURL string) string {
	copyPrefix := utils.TruncateRunes(strings.TrimSpace(copyText), 50)
	imageKey := cleanImageURL(imageURL)

	if copyPrefix == "" && imageKey == "" {
		return ""
	}

	sum := sha1.Sum([]byte(copyPrefix + "_" + imageKey))
	return hex.EncodeToString(sum[:])
}
