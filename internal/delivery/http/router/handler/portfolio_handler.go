package handler

import (
	"log/slog"
	"net/http"

	"forge/internal/delivery/http/response"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PortfolioHandler holds dependencies for the public project showcase.
type PortfolioHandler struct {
	uc     usecase.PortfolioUsecase
	logger *slog.Logger
}

// NewPortfolioHandler is the constructor for PortfolioHandler, injected by Fx.
func NewPortfolioHandler(uc usecase.PortfolioUsecase, logger *slog.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListCategories handles the public showcase category listing.
func (h *PortfolioHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListPortfolioCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories)
}

// CreateCategory handles the staff showcase category creation.
func (h *PortfolioHandler) CreateCategory(c echo.Context) error {
	var input *usecase.PortfolioCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid category input")
	}

	category, err := h.uc.CreatePortfolioCategory(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, category)
}

// UpdateCategory handles the staff showcase category update.
func (h *PortfolioHandler) UpdateCategory(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.PortfolioCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid category input")
	}

	category, err := h.uc.UpdatePortfolioCategory(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, category)
}

// DeleteCategory removes a showcase category; its projects are kept.
func (h *PortfolioHandler) DeleteCategory(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeletePortfolioCategory(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "category deleted"})
}

// ListProjects handles the public showcase listing, optionally filtered by
// category or restricted to featured projects.
func (h *PortfolioHandler) ListProjects(c echo.Context) error {
	var categoryID *uuid.UUID
	if categoryParam := c.QueryParam("category_id"); categoryParam != "" {
		id, err := uuid.Parse(categoryParam)
		if err != nil {
			return response.BindingError(c, "invalid category_id filter")
		}
		categoryID = &id
	}

	projects, err := h.uc.ListPortfolioProjects(c.Request().Context(), categoryID, boolQuery(c, "featured"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, projects)
}

// GetProject handles the public showcase page lookup by slug.
func (h *PortfolioHandler) GetProject(c echo.Context) error {
	project, err := h.uc.GetPortfolioProjectBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, project)
}

// CreateProject handles the staff showcase project creation.
func (h *PortfolioHandler) CreateProject(c echo.Context) error {
	var input *usecase.PortfolioProjectInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid project input")
	}

	project, err := h.uc.CreatePortfolioProject(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, project)
}

// UpdateProject handles the staff showcase project update.
func (h *PortfolioHandler) UpdateProject(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.PortfolioProjectInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid project input")
	}

	project, err := h.uc.UpdatePortfolioProject(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, project)
}

// DeleteProject handles the staff showcase project removal.
func (h *PortfolioHandler) DeleteProject(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeletePortfolioProject(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "project deleted"})
}

// AddProjectImage attaches an uploaded image to a showcase project.
func (h *PortfolioHandler) AddProjectImage(c echo.Context) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.ImageInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid image input")
	}

	image, err := h.uc.AddProjectImage(c.Request().Context(), actorFrom(c), projectID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, image)
}

// SetPrimaryProjectImage moves the primary flag to the given gallery image.
func (h *PortfolioHandler) SetPrimaryProjectImage(c echo.Context) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	imageID, err := pathUUID(c, "imageID")
	if err != nil {
		return err
	}

	if err := h.uc.SetPrimaryProjectImage(c.Request().Context(), actorFrom(c), projectID, imageID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "primary image updated"})
}

// RemoveProjectImage detaches a gallery image from a showcase project.
func (h *PortfolioHandler) RemoveProjectImage(c echo.Context) error {
	projectID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	imageID, err := pathUUID(c, "imageID")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveProjectImage(c.Request().Context(), actorFrom(c), projectID, imageID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "image removed"})
}
