package handler

import (
	"log/slog"
	"net/http"

	"forge/internal/delivery/http/response"
	"forge/internal/domain/entity"
	"forge/internal/domain/repository"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for catalog browsing and management
// handlers: categories, materials, products, store services and reviews.
type CatalogHandler struct {
	uc     usecase.CatalogUsecase
	logger *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(uc usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: logger,
	}
}

// --- Categories ---

// ListCategories handles the public category listing.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context(), !boolQuery(c, "all"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories)
}

// GetCategory handles the public category page lookup.
func (h *CatalogHandler) GetCategory(c echo.Context) error {
	category, err := h.uc.GetCategoryBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, category)
}

// CreateCategory handles the staff category creation.
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var input *usecase.CategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid category input")
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, category)
}

// UpdateCategory handles the staff category update.
func (h *CatalogHandler) UpdateCategory(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.CategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid category input")
	}

	category, err := h.uc.UpdateCategory(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, category)
}

// DeleteCategory handles the staff category removal.
func (h *CatalogHandler) DeleteCategory(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "category deleted"})
}

// --- Materials ---

// ListMaterials handles the public material listing.
func (h *CatalogHandler) ListMaterials(c echo.Context) error {
	materials, err := h.uc.ListMaterials(c.Request().Context(), !boolQuery(c, "all"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, materials)
}

// CreateMaterial handles the staff material creation.
func (h *CatalogHandler) CreateMaterial(c echo.Context) error {
	var input *usecase.MaterialInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid material input")
	}

	material, err := h.uc.CreateMaterial(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, material)
}

// UpdateMaterial handles the staff material update.
func (h *CatalogHandler) UpdateMaterial(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.MaterialInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid material input")
	}

	material, err := h.uc.UpdateMaterial(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, material)
}

// DeleteMaterial handles the staff material removal.
func (h *CatalogHandler) DeleteMaterial(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteMaterial(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "material deleted"})
}

// --- Products ---

// ListProducts handles the public, filterable product listing.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	filter := repository.ProductFilter{
		ProductType: entity.ProductType(c.QueryParam("type")),
		ActiveOnly:  !boolQuery(c, "all"),
		Search:      c.QueryParam("search"),
	}
	if categoryParam := c.QueryParam("category_id"); categoryParam != "" {
		categoryID, err := uuid.Parse(categoryParam)
		if err != nil {
			return response.BindingError(c, "invalid category_id filter")
		}
		filter.CategoryID = &categoryID
	}
	if featured := c.QueryParam("featured"); featured != "" {
		isFeatured := featured == "true"
		filter.Featured = &isFeatured
	}

	products, err := h.uc.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products)
}

// GetProduct handles the public product page lookup by slug.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.uc.GetProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product)
}

// CreateProduct handles the staff product creation.
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	var input *usecase.ProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid product input")
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product)
}

// UpdateProduct handles the staff product update.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.ProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid product input")
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product)
}

// DeleteProduct handles the staff product removal.
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "product deleted"})
}

// AddProductImage attaches an uploaded image to a product gallery.
func (h *CatalogHandler) AddProductImage(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.ImageInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid image input")
	}

	image, err := h.uc.AddProductImage(c.Request().Context(), actorFrom(c), productID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, image)
}

// SetPrimaryProductImage moves the primary flag to the given gallery image.
func (h *CatalogHandler) SetPrimaryProductImage(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	imageID, err := pathUUID(c, "imageID")
	if err != nil {
		return err
	}

	if err := h.uc.SetPrimaryProductImage(c.Request().Context(), actorFrom(c), productID, imageID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "primary image updated"})
}

// RemoveProductImage detaches a gallery image from a product.
func (h *CatalogHandler) RemoveProductImage(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	imageID, err := pathUUID(c, "imageID")
	if err != nil {
		return err
	}

	if err := h.uc.RemoveProductImage(c.Request().Context(), actorFrom(c), productID, imageID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "image removed"})
}

type imageOrderRequest struct {
	ImageIDs []uuid.UUID `json:"image_ids" validate:"required,min=1"`
}

// ReorderProductImages rewrites the gallery order for a product.
func (h *CatalogHandler) ReorderProductImages(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req imageOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid image order input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ReorderProductImages(c.Request().Context(), actorFrom(c), productID, req.ImageIDs); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "images reordered"})
}

// ReplaceSpecifications swaps a product's full specification table.
func (h *CatalogHandler) ReplaceSpecifications(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var inputs []*usecase.SpecificationInput
	if err := c.Bind(&inputs); err != nil {
		return response.BindingError(c, "invalid specification input")
	}

	if err := h.uc.ReplaceSpecifications(c.Request().Context(), actorFrom(c), productID, inputs); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "specifications replaced"})
}

// --- Store services ---

// ListServices handles the public store service listing.
func (h *CatalogHandler) ListServices(c echo.Context) error {
	services, err := h.uc.ListServices(c.Request().Context(), !boolQuery(c, "all"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, services)
}

// GetService handles the public store service page lookup.
func (h *CatalogHandler) GetService(c echo.Context) error {
	storeService, err := h.uc.GetServiceBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, storeService)
}

// CreateService handles the staff store service creation.
func (h *CatalogHandler) CreateService(c echo.Context) error {
	var input *usecase.StoreServiceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid service input")
	}

	storeService, err := h.uc.CreateService(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, storeService)
}

// UpdateService handles the staff store service update.
func (h *CatalogHandler) UpdateService(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.StoreServiceInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid service input")
	}

	storeService, err := h.uc.UpdateService(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, storeService)
}

// DeleteService handles the staff store service removal.
func (h *CatalogHandler) DeleteService(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteService(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "service deleted"})
}

// AddServiceImage attaches an uploaded image to a store service gallery.
func (h *CatalogHandler) AddServiceImage(c echo.Context) error {
	serviceID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.ImageInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid image input")
	}

	image, err := h.uc.AddServiceImage(c.Request().Context(), actorFrom(c), serviceID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, image)
}

// SetPrimaryServiceImage moves the primary flag to the given gallery image.
func (h *CatalogHandler) SetPrimaryServiceImage(c echo.Context) error {
	serviceID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	imageID, err := pathUUID(c, "imageID")
	if err != nil {
		return err
	}

	if err := h.uc.SetPrimaryServiceImage(c.Request().Context(), actorFrom(c), serviceID, imageID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "primary image updated"})
}

// --- Reviews ---

// ListProductReviews handles the review listing on a product page.
// Staff callers also see reviews still awaiting approval.
func (h *CatalogHandler) ListProductReviews(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.uc.ListProductReviews(c.Request().Context(), actorFrom(c), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews)
}

// CreateReview files a review on a product for the calling user.
func (h *CatalogHandler) CreateReview(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.ReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid review input")
	}

	review, err := h.uc.CreateReview(c.Request().Context(), actorFrom(c), productID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, review)
}

// UpdateReview lets the author revise their own review.
func (h *CatalogHandler) UpdateReview(c echo.Context) error {
	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.ReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid review input")
	}

	review, err := h.uc.UpdateReview(c.Request().Context(), actorFrom(c), reviewID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, review)
}

// ApproveReview publishes a pending review.
func (h *CatalogHandler) ApproveReview(c echo.Context) error {
	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.ApproveReview(c.Request().Context(), actorFrom(c), reviewID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "review approved"})
}

// DeleteReview removes a review. Owners may delete their own; staff any.
func (h *CatalogHandler) DeleteReview(c echo.Context) error {
	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteReview(c.Request().Context(), actorFrom(c), reviewID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "review deleted"})
}
