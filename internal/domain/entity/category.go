package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products and services in the catalog.
type Category struct {
	ID          uuid.UUID
	Name        string // Unique display name.
	Slug        string // Unique URL slug, derived from the name when absent.
	Description string
	Image       string // Storage reference, optional.
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Material is a fabrication material referenced by products.
type Material struct {
	ID          uuid.UUID
	Name        string // Unique display name.
	Description string
	Image       string // Storage reference, optional.
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
