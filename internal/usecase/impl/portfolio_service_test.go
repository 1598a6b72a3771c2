package impl

import (
	"context"
	"testing"
	"time"

	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type portfolioHarness struct {
	svc     usecase.PortfolioUsecase
	factory *fakeRepoFactory
}

func newPortfolioHarness() *portfolioHarness {
	factory := newFakeFactory()

	svc := NewPortfolioService(PortfolioServiceParams{
		TxManager:     &fakeTxManager{factory: factory},
		PortfolioRepo: factory.portfolio,
		Clock:         fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		Logger:        newDiscardLogger(),
	})

	return &portfolioHarness{svc: svc, factory: factory}
}

func (h *portfolioHarness) seedShowcase(t *testing.T, title string, categoryID *uuid.UUID) *entity.PortfolioProject {
	t.Helper()

	project, err := h.svc.CreatePortfolioProject(context.Background(), staffActor(), &usecase.PortfolioProjectInput{
		Title:      title,
		CategoryID: categoryID,
		ClientName: "Himal Builders",
	})
	require.NoError(t, err)

	return project
}

func TestPortfolioService_Categories(t *testing.T) {
	t.Parallel()

	h := newPortfolioHarness()
	ctx := context.Background()

	category, err := h.svc.CreatePortfolioCategory(ctx, staffActor(), &usecase.PortfolioCategoryInput{
		Name: "Commercial Interiors",
	})
	require.NoError(t, err)
	assert.Equal(t, "commercial-interiors", category.Slug)

	_, err = h.svc.CreatePortfolioCategory(ctx, staffActor(), &usecase.PortfolioCategoryInput{
		Name: "Commercial  Interiors",
		Slug: "commercial-interiors",
	})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DUPLICATE_SLUG", appErr.ErrorCode())

	// Reads are public; writes are not.
	_, err = h.svc.CreatePortfolioCategory(ctx, userActor(), &usecase.PortfolioCategoryInput{Name: "Nope"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	categories, err := h.svc.ListPortfolioCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestPortfolioService_CategoryDeletionKeepsProjects(t *testing.T) {
	t.Parallel()

	h := newPortfolioHarness()
	ctx := context.Background()

	category, err := h.svc.CreatePortfolioCategory(ctx, staffActor(), &usecase.PortfolioCategoryInput{Name: "Residential"})
	require.NoError(t, err)
	project := h.seedShowcase(t, "Lakeside villa", &category.ID)

	// Deleting a category is admin-only and detaches rather than cascades.
	assert.ErrorIs(t, h.svc.DeletePortfolioCategory(ctx, staffActor(), category.ID), domainerrors.ErrForbidden)
	require.NoError(t, h.svc.DeletePortfolioCategory(ctx, adminActor(), category.ID))

	kept, err := h.svc.GetPortfolioProjectBySlug(ctx, project.Slug)
	require.NoError(t, err)
	assert.Nil(t, kept.CategoryID)

	assert.ErrorIs(t, h.svc.DeletePortfolioCategory(ctx, adminActor(), category.ID), domainerrors.ErrNotFound)
}

func TestPortfolioService_Projects(t *testing.T) {
	t.Parallel()

	h := newPortfolioHarness()
	ctx := context.Background()

	project := h.seedShowcase(t, "Lakeside Villa", nil)
	assert.Equal(t, "lakeside-villa", project.Slug)
	assert.False(t, project.IsFeatured)

	_, err := h.svc.CreatePortfolioProject(ctx, staffActor(), &usecase.PortfolioProjectInput{Title: "Lakeside Villa"})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DUPLICATE_SLUG", appErr.ErrorCode())

	featured := true
	h2, err := h.svc.CreatePortfolioProject(ctx, staffActor(), &usecase.PortfolioProjectInput{
		Title:      "City Office",
		IsFeatured: &featured,
	})
	require.NoError(t, err)
	assert.True(t, h2.IsFeatured)

	highlights, err := h.svc.ListPortfolioProjects(ctx, nil, true)
	require.NoError(t, err)
	require.Len(t, highlights, 1)
	assert.Equal(t, h2.ID, highlights[0].ID)

	_, err = h.svc.GetPortfolioProjectBySlug(ctx, "mislaid")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPortfolioService_PrimaryImageMoves(t *testing.T) {
	t.Parallel()

	h := newPortfolioHarness()
	ctx := context.Background()
	staff := staffActor()
	project := h.seedShowcase(t, "Lakeside Villa", nil)

	first, err := h.svc.AddProjectImage(ctx, staff, project.ID, &usecase.ImageInput{
		Image:     "portfolio/villa-front.jpg",
		IsPrimary: true,
	})
	require.NoError(t, err)
	assert.True(t, first.IsPrimary)

	// The primary flag moves to the newest flagged image.
	second, err := h.svc.AddProjectImage(ctx, staff, project.ID, &usecase.ImageInput{
		Image:     "portfolio/villa-terrace.jpg",
		IsPrimary: true,
	})
	require.NoError(t, err)
	assert.True(t, second.IsPrimary)
	assert.False(t, h.factory.portfolio.images[first.ID].IsPrimary)

	require.NoError(t, h.svc.SetPrimaryProjectImage(ctx, staff, project.ID, first.ID))
	assert.True(t, h.factory.portfolio.images[first.ID].IsPrimary)
	assert.False(t, h.factory.portfolio.images[second.ID].IsPrimary)

	// A foreign image cannot take the flag.
	err = h.svc.SetPrimaryProjectImage(ctx, staff, project.ID, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = h.svc.AddProjectImage(ctx, staff, uuid.New(), &usecase.ImageInput{Image: "portfolio/lost.jpg"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.NoError(t, h.svc.RemoveProjectImage(ctx, staff, project.ID, second.ID))
	assert.NotContains(t, h.factory.portfolio.images, second.ID)
}
