package aggregating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		expected string
	}{
		{
			name:     "remove parâmetros utm",
			rawURL:   "https://shop.com/promo?utm_source=fb&utm_campaign=x&color=red",
			expected: "https://shop.com/promo?color=red",
		},
		{
			name:     "remove fbclid e gclid",
			rawURL:   "https://shop.com/promo?fbclid=abc&gclid=def",
			expected: "https://shop.com/promo",
		},
		{
			name:     "host e scheme em minúsculas",
			rawURL:   "HTTPS://Shop.Example.COM/Promo",
			expected: "https://shop.example.com/Promo",
		},
		{
			name:     "descarta fragmento e barra final",
			rawURL:   "https://shop.com/promo/#section",
			expected: "https://shop.com/promo",
		},
		{
			name:     "reordena a query restante",
			rawURL:   "https://shop.com/p?b=2&a=1",
			expected: "https://shop.com/p?a=1&b=2",
		},
		{
			name:     "vazio continua vazio",
			rawURL:   "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeURL(tt.rawURL))
		})
	}
}

func TestNormalizeURL_IsIdempotent(t *testing.T) {
	urls := []string{
		"https://Shop.com/Promo?utm_source=fb&b=2&a=1#frag",
		"https://a.com/x/",
		"not a url at all",
	}

	for _, raw := range urls {
		once := NormalizeURL(raw)
		assert.Equal(t, once, NormalizeURL(once))
	}
}

func TestDeriveContentHash(t *testing.T) {
	// Assinaturas de CDN diferentes na imagem não mudam a impressão digital.
	first := DeriveContentHash("Texto do anúncio", "https://cdn.com/img.jpg?sig=1")
	second := DeriveContentHash("Texto do anúncio", "https://cdn.com/img.jpg?sig=2")
	assert.Equal(t, first, second)

	// Textos que divergem dentro dos primeiros 50 caracteres geram hashes distintos.
	assert.NotEqual(t,
		DeriveContentHash("Oferta A imperdível", "https://cdn.com/img.jpg"),
		DeriveContentHash("Oferta B imperdível", "https://cdn.com/img.jpg"),
	)

	// Textos que só divergem após o caractere 50 colapsam no mesmo hash.
	prefix := "0123456789012345678901234567890123456789012345678"
	assert.Equal(t,
		DeriveContentHash(prefix+"9 cauda um", ""),
		DeriveContentHash(prefix+"9 cauda dois", ""),
	)

	assert.Empty(t, DeriveContentHash("", ""))
	assert.Empty(t, DeriveContentHash("   ", ""))
}
