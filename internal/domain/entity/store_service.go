package entity

import (
	"time"

	"github.com/google/uuid"
)

// StoreService is a service offering of the company (construction,
// fabrication, furniture, ...). Distinct from bookable products.
type StoreService struct {
	ID          uuid.UUID
	Title       string
	Slug        string // Unique URL slug, derived from the title when absent.
	Category    string
	Description string
	IconName    string
	Image       string // Storage reference, optional.
	IsActive    bool
	Order       int
	SEO         SEOFields
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Images []*StoreServiceImage // Gallery, ordered by (order asc, primary first).
}

// PrimaryImage returns the gallery image flagged primary, or nil when none is set.
func (s *StoreService) PrimaryImage() *StoreServiceImage {
	for _, img := range s.Images {
		if img.IsPrimary {
			return img
		}
	}

	return nil
}

// StoreServiceImage is one of a store service's gallery images.
type StoreServiceImage struct {
	ID        uuid.UUID
	ServiceID uuid.UUID
	Image     string // Storage reference.
	AltText   string
	IsPrimary bool // At most one per service. Maintained transactionally.
	Order     int
	CreatedAt time.Time
}
