package entity

import (
	"time"

	"github.com/google/uuid"
)

// PortfolioCategory groups showcased projects.
type PortfolioCategory struct {
	ID          uuid.UUID
	Name        string // Unique display name.
	Slug        string // Unique URL slug, derived from the name when absent.
	Description string
	CreatedAt   time.Time
}

// PortfolioProject is a completed job showcased publicly.
type PortfolioProject struct {
	ID             uuid.UUID
	Title          string
	Slug           string     // Unique URL slug, derived from the title when absent.
	CategoryID     *uuid.UUID // Nullable; survives category deletion as null.
	Description    string
	ClientName     string
	ClientLogo     string // Storage reference, optional.
	Location       string
	CompletionDate *time.Time
	IsFeatured     bool
	Order          int
	SEO            SEOFields
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Images []*PortfolioProjectImage // Ordered by (order asc, primary first).
}

// PrimaryImage returns the image flagged primary, or nil when none is set.
func (p *PortfolioProject) PrimaryImage() *PortfolioProjectImage {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img
		}
	}

	return nil
}

// PortfolioProjectImage is one of a portfolio project's gallery images.
type PortfolioProjectImage struct {
	ID        uuid.UUID
	ProjectID uuid.UUID
	Image     string // Storage reference.
	AltText   string
	IsPrimary bool // At most one per project. Maintained transactionally.
	Order     int
}
