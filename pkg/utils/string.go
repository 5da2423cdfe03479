package utils

// TruncateRunes corta a string em n runas, sem quebrar caracteres multibyte.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
