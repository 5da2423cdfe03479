package domain

import (
	"time"
)

// Brand é uma marca salva na biblioteca para varreduras recorrentes.
type Brand struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	AdLibraryURL string     `json:"ad_library_url"`
	Active       bool       `json:"active"`
	LastScanAt   *time.Time `json:"last_scan_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UpdateBrandRequest struct {
	ID           string  `json:"id"`
	Name         *string `json:"name"`
	AdLibraryURL *string `json:"ad_library_url"`
	Active       *bool   `json:"active"`
}
