package usecase

import (
	"context"
	"time"

	"forge/internal/domain/entity"
	"forge/internal/domain/policy"

	"github.com/google/uuid"
)

// PortfolioUsecase defines the interface for the public project showcase.
// Reads are public; mutations require a staff or admin actor.
type PortfolioUsecase interface {
	ListPortfolioCategories(ctx context.Context) ([]*entity.PortfolioCategory, error)
	CreatePortfolioCategory(ctx context.Context, actor policy.Actor, input *PortfolioCategoryInput) (*entity.PortfolioCategory, error)
	UpdatePortfolioCategory(ctx context.Context, actor policy.Actor, id uuid.UUID, input *PortfolioCategoryInput) (*entity.PortfolioCategory, error)

	// DeletePortfolioCategory removes a category. Projects that referenced it
	// are kept with a null category.
	DeletePortfolioCategory(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	ListPortfolioProjects(ctx context.Context, categoryID *uuid.UUID, featuredOnly bool) ([]*entity.PortfolioProject, error)
	GetPortfolioProjectBySlug(ctx context.Context, slug string) (*entity.PortfolioProject, error)
	CreatePortfolioProject(ctx context.Context, actor policy.Actor, input *PortfolioProjectInput) (*entity.PortfolioProject, error)
	UpdatePortfolioProject(ctx context.Context, actor policy.Actor, id uuid.UUID, input *PortfolioProjectInput) (*entity.PortfolioProject, error)
	DeletePortfolioProject(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// AddProjectImage attaches an image to a showcase project. When flagged
	// primary the flag is moved atomically from any image holding it.
	AddProjectImage(ctx context.Context, actor policy.Actor, projectID uuid.UUID, input *ImageInput) (*entity.PortfolioProjectImage, error)

	// SetPrimaryProjectImage moves the primary flag to the given image.
	SetPrimaryProjectImage(ctx context.Context, actor policy.Actor, projectID, imageID uuid.UUID) error

	RemoveProjectImage(ctx context.Context, actor policy.Actor, projectID, imageID uuid.UUID) error
}

// --- Input DTOs ---

// PortfolioCategoryInput defines the data for a showcase category.
type PortfolioCategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"` // Derived from Name when empty.
	Description string `json:"description"`
}

// PortfolioProjectInput defines the data for a showcase project.
type PortfolioProjectInput struct {
	Title          string     `json:"title"`
	Slug           string     `json:"slug,omitempty"` // Derived from Title when empty.
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	Description    string     `json:"description"`
	ClientName     string     `json:"client_name,omitempty"`
	ClientLogo     string     `json:"client_logo,omitempty"`
	Location       string     `json:"location,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	IsFeatured     *bool      `json:"is_featured,omitempty"`
	Order          int        `json:"order"`
	SEO            *SEOInput  `json:"seo,omitempty"`
}
