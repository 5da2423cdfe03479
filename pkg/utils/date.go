package utils

import "time"

// ParseISODate interpreta datas no formato retornado pela Ad Library
// ("2025-11-03T08:00:00.000Z" ou "2025-11-03").
func ParseISODate(dateStr string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return t, nil
	}

	return time.Parse(time.DateOnly, dateStr)
}
