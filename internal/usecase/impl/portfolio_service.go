package impl

import (
	"context"
	"log/slog"

	deliverycontext "forge/internal/delivery/context"
	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/policy"
	"forge/internal/domain/repository"
	"forge/internal/domain/service"
	"forge/internal/usecase"
	"forge/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// portfolioService implements the PortfolioUsecase interface.
type portfolioService struct {
	txManager     repository.TransactionManager
	portfolioRepo repository.PortfolioRepository
	clock         service.Clock
	logger        *slog.Logger
}

// PortfolioServiceParams holds dependencies for portfolioService, injected by Fx.
type PortfolioServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	PortfolioRepo repository.PortfolioRepository
	Clock         service.Clock
	Logger        *slog.Logger
}

// NewPortfolioService is the constructor for portfolioService.
func NewPortfolioService(params PortfolioServiceParams) usecase.PortfolioUsecase {
	return &portfolioService{
		txManager:     params.TxManager,
		portfolioRepo: params.PortfolioRepo,
		clock:         params.Clock,
		logger:        params.Logger,
	}
}

func (srv *portfolioService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *portfolioService) ListPortfolioCategories(ctx context.Context) ([]*entity.PortfolioCategory, error) {
	categories, err := srv.portfolioRepo.ListPortfolioCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio categories")
	}

	return categories, nil
}

func (srv *portfolioService) CreatePortfolioCategory(ctx context.Context, actor policy.Actor, input *usecase.PortfolioCategoryInput) (*entity.PortfolioCategory, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	category := &entity.PortfolioCategory{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slugOrDerive(input.Slug, input.Name),
		Description: input.Description,
		CreatedAt:   srv.clock.Now(),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PortfolioRepo().CreatePortfolioCategory(ctx, category); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrDuplicateSlug.WithDetails("slug already in use: " + category.Slug)
			}

			return errors.Wrap(err, "failed to create portfolio category")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (srv *portfolioService) UpdatePortfolioCategory(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.PortfolioCategoryInput) (*entity.PortfolioCategory, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	category := &entity.PortfolioCategory{
		ID:          id,
		Name:        input.Name,
		Slug:        slugOrDerive(input.Slug, input.Name),
		Description: input.Description,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PortfolioRepo().UpdatePortfolioCategory(ctx, category); err != nil {
			if errors.Is(err, repository.ErrPortfolioCategoryNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to update portfolio category")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// DeletePortfolioCategory removes a category. Projects referencing it keep a
// null category; the repository nulls the reference rather than cascading.
func (srv *portfolioService) DeletePortfolioCategory(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Deleting portfolio category", "categoryID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PortfolioRepo().DeletePortfolioCategory(ctx, id); err != nil {
			if errors.Is(err, repository.ErrPortfolioCategoryNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to delete portfolio category")
		}

		return nil
	})
}

func (srv *portfolioService) ListPortfolioProjects(ctx context.Context, categoryID *uuid.UUID, featuredOnly bool) ([]*entity.PortfolioProject, error) {
	projects, err := srv.portfolioRepo.ListPortfolioProjects(ctx, categoryID, featuredOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list portfolio projects")
	}

	return projects, nil
}

func (srv *portfolioService) GetPortfolioProjectBySlug(ctx context.Context, slug string) (*entity.PortfolioProject, error) {
	project, err := srv.portfolioRepo.FindPortfolioProjectBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioProjectNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find portfolio project")
	}

	return project, nil
}

func (srv *portfolioService) CreatePortfolioProject(ctx context.Context, actor policy.Actor, input *usecase.PortfolioProjectInput) (*entity.PortfolioProject, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Creating portfolio project", "title", input.Title)

	now := srv.clock.Now()
	project := &entity.PortfolioProject{
		ID:             uuid.New(),
		Title:          input.Title,
		Slug:           slugOrDerive(input.Slug, input.Title),
		CategoryID:     input.CategoryID,
		Description:    input.Description,
		ClientName:     input.ClientName,
		ClientLogo:     input.ClientLogo,
		Location:       input.Location,
		CompletionDate: input.CompletionDate,
		IsFeatured:     boolOr(input.IsFeatured, false),
		Order:          input.Order,
		SEO:            seoFromInput(input.SEO),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PortfolioRepo().CreatePortfolioProject(ctx, project); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrDuplicateSlug.WithDetails("slug already in use: " + project.Slug)
			}

			return errors.Wrap(err, "failed to create portfolio project")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (srv *portfolioService) UpdatePortfolioProject(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.PortfolioProjectInput) (*entity.PortfolioProject, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	var project *entity.PortfolioProject
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		portfolioRepo := repoFactory.PortfolioRepo()

		found, err := portfolioRepo.FindPortfolioProjectByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrPortfolioProjectNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find portfolio project")
		}

		found.Title = input.Title
		if input.Slug != "" {
			found.Slug = util.Slugify(input.Slug)
		}
		found.CategoryID = input.CategoryID
		found.Description = input.Description
		found.ClientName = input.ClientName
		if input.ClientLogo != "" {
			found.ClientLogo = input.ClientLogo
		}
		found.Location = input.Location
		found.CompletionDate = input.CompletionDate
		if input.IsFeatured != nil {
			found.IsFeatured = *input.IsFeatured
		}
		found.Order = input.Order
		if input.SEO != nil {
			found.SEO = seoFromInput(input.SEO)
		}
		found.UpdatedAt = srv.clock.Now()

		if err := portfolioRepo.UpdatePortfolioProject(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update portfolio project")
		}
		project = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (srv *portfolioService) DeletePortfolioProject(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Deleting portfolio project", "projectID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PortfolioRepo().DeletePortfolioProject(ctx, id); err != nil {
			if errors.Is(err, repository.ErrPortfolioProjectNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to delete portfolio project")
		}

		return nil
	})
}

// AddProjectImage attaches an image; a primary request moves the flag within
// the same transaction.
func (srv *portfolioService) AddProjectImage(ctx context.Context, actor policy.Actor, projectID uuid.UUID, input *usecase.ImageInput) (*entity.PortfolioProjectImage, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	image := &entity.PortfolioProjectImage{
		ID:        uuid.New(),
		ProjectID: projectID,
		Image:     input.Image,
		AltText:   input.AltText,
		Order:     input.Order,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		portfolioRepo := repoFactory.PortfolioRepo()

		if _, err := portfolioRepo.FindPortfolioProjectByID(ctx, projectID); err != nil {
			if errors.Is(err, repository.ErrPortfolioProjectNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find portfolio project")
		}

		if err := portfolioRepo.AddProjectImage(ctx, image); err != nil {
			return errors.Wrap(err, "failed to add project image")
		}

		if input.IsPrimary {
			if err := portfolioRepo.ClearPrimaryProjectImage(ctx, projectID); err != nil {
				return errors.Wrap(err, "failed to clear primary project image")
			}
			if err := portfolioRepo.SetPrimaryProjectImage(ctx, projectID, image.ID); err != nil {
				return errors.Wrap(err, "failed to set primary project image")
			}
			image.IsPrimary = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return image, nil
}

// SetPrimaryProjectImage moves the primary flag to the given image.
func (srv *portfolioService) SetPrimaryProjectImage(ctx context.Context, actor policy.Actor, projectID, imageID uuid.UUID) error {
	if err := policy.RequireStaff(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Setting primary project image", "projectID", projectID, "imageID", imageID)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		portfolioRepo := repoFactory.PortfolioRepo()

		if err := portfolioRepo.ClearPrimaryProjectImage(ctx, projectID); err != nil {
			return errors.Wrap(err, "failed to clear primary project image")
		}
		if err := portfolioRepo.SetPrimaryProjectImage(ctx, projectID, imageID); err != nil {
			if errors.Is(err, repository.ErrImageNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to set primary project image")
		}

		return nil
	})
}

func (srv *portfolioService) RemoveProjectImage(ctx context.Context, actor policy.Actor, projectID, imageID uuid.UUID) error {
	if err := policy.RequireStaff(actor); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return errors.Wrap(repoFactory.PortfolioRepo().RemoveProjectImage(ctx, imageID), "failed to remove project image")
	})
}
