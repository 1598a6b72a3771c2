package repository

import (
	"context"
	"errors"

	"forge/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for portfolio persistence.
var (
	// ErrPortfolioCategoryNotFound is returned when a portfolio category is not found.
	ErrPortfolioCategoryNotFound = errors.New("portfolio category not found")
	// ErrPortfolioProjectNotFound is returned when a portfolio project is not found.
	ErrPortfolioProjectNotFound = errors.New("portfolio project not found")
)

// PortfolioRepository defines persistence operations for the public showcase.
type PortfolioRepository interface {
	// CreatePortfolioCategory persists a new showcase category.
	CreatePortfolioCategory(ctx context.Context, category *entity.PortfolioCategory) error

	// ListPortfolioCategories retrieves all showcase categories ordered by name.
	ListPortfolioCategories(ctx context.Context) ([]*entity.PortfolioCategory, error)

	// UpdatePortfolioCategory updates an existing showcase category.
	UpdatePortfolioCategory(ctx context.Context, category *entity.PortfolioCategory) error

	// DeletePortfolioCategory removes a showcase category. Projects referencing
	// it keep a null category, they are never cascaded away.
	DeletePortfolioCategory(ctx context.Context, id uuid.UUID) error

	// CreatePortfolioProject persists a new showcase project with its images.
	CreatePortfolioProject(ctx context.Context, project *entity.PortfolioProject) error

	// FindPortfolioProjectByID retrieves a showcase project with its images.
	FindPortfolioProjectByID(ctx context.Context, id uuid.UUID) (*entity.PortfolioProject, error)

	// FindPortfolioProjectBySlug retrieves a showcase project by its slug.
	FindPortfolioProjectBySlug(ctx context.Context, slug string) (*entity.PortfolioProject, error)

	// ListPortfolioProjects retrieves showcase projects ordered by their
	// display order, optionally restricted to one category or to featured ones.
	ListPortfolioProjects(ctx context.Context, categoryID *uuid.UUID, featuredOnly bool) ([]*entity.PortfolioProject, error)

	// UpdatePortfolioProject updates an existing showcase project.
	UpdatePortfolioProject(ctx context.Context, project *entity.PortfolioProject) error

	// DeletePortfolioProject removes a showcase project by its ID.
	DeletePortfolioProject(ctx context.Context, id uuid.UUID) error

	// AddProjectImage attaches an image to a showcase project.
	AddProjectImage(ctx context.Context, image *entity.PortfolioProjectImage) error

	// ClearPrimaryProjectImage unsets the primary flag on every image of the project.
	ClearPrimaryProjectImage(ctx context.Context, projectID uuid.UUID) error

	// SetPrimaryProjectImage marks a single image of the project as primary.
	SetPrimaryProjectImage(ctx context.Context, projectID, imageID uuid.UUID) error

	// RemoveProjectImage detaches an image from its project.
	RemoveProjectImage(ctx context.Context, id uuid.UUID) error
}
