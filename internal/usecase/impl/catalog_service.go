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

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager        repository.TransactionManager
	categoryRepo     repository.CategoryRepository
	materialRepo     repository.MaterialRepository
	productRepo      repository.ProductRepository
	reviewRepo       repository.ReviewRepository
	storeServiceRepo repository.StoreServiceRepository
	userRepo         repository.UserRepository
	clock            service.Clock
	logger           *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	CategoryRepo     repository.CategoryRepository
	MaterialRepo     repository.MaterialRepository
	ProductRepo      repository.ProductRepository
	ReviewRepo       repository.ReviewRepository
	StoreServiceRepo repository.StoreServiceRepository
	UserRepo         repository.UserRepository
	Clock            service.Clock
	Logger           *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:        params.TxManager,
		categoryRepo:     params.CategoryRepo,
		materialRepo:     params.MaterialRepo,
		productRepo:      params.ProductRepo,
		reviewRepo:       params.ReviewRepo,
		storeServiceRepo: params.StoreServiceRepo,
		userRepo:         params.UserRepo,
		clock:            params.Clock,
		logger:           params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// --- Categories ---

func (srv *catalogService) ListCategories(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.ListCategories(ctx, activeOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *catalogService) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	return category, nil
}

func (srv *catalogService) CreateCategory(ctx context.Context, actor policy.Actor, input *usecase.CategoryInput) (*entity.Category, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Creating category", "name", input.Name)

	now := srv.clock.Now()
	category := &entity.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        slugOrDerive(input.Slug, input.Name),
		Description: input.Description,
		Image:       input.Image,
		IsActive:    boolOr(input.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CategoryRepo().CreateCategory(ctx, category); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrDuplicateSlug
			}

			return errors.Wrap(err, "failed to create category")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (srv *catalogService) UpdateCategory(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.CategoryInput) (*entity.Category, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	var category *entity.Category
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.CategoryRepo()

		found, err := categoryRepo.FindCategoryByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find category")
		}

		found.Name = input.Name
		if input.Slug != "" {
			found.Slug = util.Slugify(input.Slug)
		}
		found.Description = input.Description
		if input.Image != "" {
			found.Image = input.Image
		}
		if input.IsActive != nil {
			found.IsActive = *input.IsActive
		}
		found.UpdatedAt = srv.clock.Now()

		if err := categoryRepo.UpdateCategory(ctx, found); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrDuplicateSlug
			}

			return errors.Wrap(err, "failed to update category")
		}
		category = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (srv *catalogService) DeleteCategory(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Deleting category", "categoryID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.CategoryRepo().DeleteCategory(ctx, id); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to delete category")
		}

		return nil
	})
}

// --- Materials ---

func (srv *catalogService) ListMaterials(ctx context.Context, activeOnly bool) ([]*entity.Material, error) {
	materials, err := srv.materialRepo.ListMaterials(ctx, activeOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list materials")
	}

	return materials, nil
}

func (srv *catalogService) CreateMaterial(ctx context.Context, actor policy.Actor, input *usecase.MaterialInput) (*entity.Material, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	now := srv.clock.Now()
	material := &entity.Material{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		IsActive:    boolOr(input.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return errors.Wrap(repoFactory.MaterialRepo().CreateMaterial(ctx, material), "failed to create material")
	})
	if err != nil {
		return nil, err
	}

	return material, nil
}

func (srv *catalogService) UpdateMaterial(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.MaterialInput) (*entity.Material, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	var material *entity.Material
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		materialRepo := repoFactory.MaterialRepo()

		found, err := materialRepo.FindMaterialByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrMaterialNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find material")
		}

		found.Name = input.Name
		found.Description = input.Description
		if input.Image != "" {
			found.Image = input.Image
		}
		if input.IsActive != nil {
			found.IsActive = *input.IsActive
		}
		found.UpdatedAt = srv.clock.Now()

		if err := materialRepo.UpdateMaterial(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update material")
		}
		material = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return material, nil
}

func (srv *catalogService) DeleteMaterial(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.MaterialRepo().DeleteMaterial(ctx, id); err != nil {
			if errors.Is(err, repository.ErrMaterialNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to delete material")
		}

		return nil
	})
}

// --- Products ---

func (srv *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *catalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := srv.productRepo.FindProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}
	if err := srv.attachRating(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product")
	}
	if err := srv.attachRating(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// attachRating loads the product's approved reviews and publishes their
// aggregate. Pending reviews stay invisible until moderation approves them.
func (srv *catalogService) attachRating(ctx context.Context, product *entity.Product) error {
	reviews, err := srv.reviewRepo.ListReviewsByProduct(ctx, product.ID, true)
	if err != nil {
		return errors.Wrap(err, "failed to load product reviews")
	}
	product.Reviews = reviews
	product.AverageRating, product.ReviewCount = product.ApprovedAverageRating()

	return nil
}

func (srv *catalogService) CreateProduct(ctx context.Context, actor policy.Actor, input *usecase.ProductInput) (*entity.Product, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}
	if !input.ProductType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown product type: " + string(input.ProductType))
	}
	srv.log(ctx).Info("Creating product", "name", input.Name)

	now := srv.clock.Now()
	product := &entity.Product{
		ID:                uuid.New(),
		Name:              input.Name,
		Slug:              slugOrDerive(input.Slug, input.Name),
		CategoryID:        input.CategoryID,
		Description:       input.Description,
		ProductType:       input.ProductType,
		BasePrice:         input.BasePrice,
		IsPriceVisible:    boolOr(input.IsPriceVisible, true),
		Length:            input.Length,
		Width:             input.Width,
		Height:            input.Height,
		Weight:            input.Weight,
		IsCustomizable:    boolOr(input.IsCustomizable, false),
		CustomizationNote: input.CustomizationNote,
		StockQuantity:     intOr(input.StockQuantity, 0),
		LowStockThreshold: intOr(input.LowStockThreshold, 5),
		IsActive:          boolOr(input.IsActive, true),
		IsFeatured:        boolOr(input.IsFeatured, false),
		SEO:               seoFromInput(input.SEO),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.CategoryRepo().FindCategoryByID(ctx, input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrValidationFailed.WithDetails("category does not exist")
			}

			return errors.Wrap(err, "failed to find category")
		}

		for _, materialID := range input.MaterialIDs {
			material, err := repoFactory.MaterialRepo().FindMaterialByID(ctx, materialID)
			if err != nil {
				if errors.Is(err, repository.ErrMaterialNotFound) {
					return domainerrors.ErrValidationFailed.WithDetails("material does not exist: " + materialID.String())
				}

				return errors.Wrap(err, "failed to find material")
			}
			product.Materials = append(product.Materials, material)
		}

		if err := repoFactory.ProductRepo().CreateProduct(ctx, product); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrDuplicateSlug
			}

			return errors.Wrap(err, "failed to create product")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (srv *catalogService) UpdateProduct(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.ProductInput) (*entity.Product, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	var product *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		found, err := productRepo.FindProductByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		found.Name = input.Name
		if input.Slug != "" {
			found.Slug = util.Slugify(input.Slug)
		}
		found.CategoryID = input.CategoryID
		found.Description = input.Description
		if input.ProductType != "" {
			if !input.ProductType.IsValid() {
				return domainerrors.ErrValidationFailed.WithDetails("unknown product type: " + string(input.ProductType))
			}
			found.ProductType = input.ProductType
		}
		found.BasePrice = input.BasePrice
		found.Length = input.Length
		found.Width = input.Width
		found.Height = input.Height
		found.Weight = input.Weight
		found.CustomizationNote = input.CustomizationNote
		if input.IsPriceVisible != nil {
			found.IsPriceVisible = *input.IsPriceVisible
		}
		if input.IsCustomizable != nil {
			found.IsCustomizable = *input.IsCustomizable
		}
		if input.StockQuantity != nil {
			found.StockQuantity = *input.StockQuantity
		}
		if input.LowStockThreshold != nil {
			found.LowStockThreshold = *input.LowStockThreshold
		}
		if input.IsActive != nil {
			found.IsActive = *input.IsActive
		}
		if input.IsFeatured != nil {
			found.IsFeatured = *input.IsFeatured
		}
		if input.SEO != nil {
			found.SEO = seoFromInput(input.SEO)
		}
		found.UpdatedAt = srv.clock.Now()

		if input.MaterialIDs != nil {
			found.Materials = found.Materials[:0]
			for _, materialID := range input.MaterialIDs {
				material, err := repoFactory.MaterialRepo().FindMaterialByID(ctx, materialID)
				if err != nil {
					if errors.Is(err, repository.ErrMaterialNotFound) {
						return domainerrors.ErrValidationFailed.WithDetails("material does not exist: " + materialID.String())
					}

					return errors.Wrap(err, "failed to find material")
				}
				found.Materials = append(found.Materials, material)
			}
		}

		if err := productRepo.UpdateProduct(ctx, found); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrDuplicateSlug
			}

			return errors.Wrap(err, "failed to update product")
		}
		product = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (srv *catalogService) DeleteProduct(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Deleting product", "productID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.ProductRepo().DeleteProduct(ctx, id); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
}

// AddProductImage attaches an uploaded image. A primary request moves the
// flag inside the same transaction, so the at-most-one invariant holds even
// when the gallery already had a primary.
func (srv *catalogService) AddProductImage(ctx context.Context, actor policy.Actor, productID uuid.UUID, input *usecase.ImageInput) (*entity.ProductImage, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	image := &entity.ProductImage{
		ID:        uuid.New(),
		ProductID: productID,
		Image:     input.Image,
		AltText:   input.AltText,
		Order:     input.Order,
		CreatedAt: srv.clock.Now(),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		if _, err := productRepo.FindProductByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := productRepo.AddImage(ctx, image); err != nil {
			return errors.Wrap(err, "failed to add image")
		}

		if input.IsPrimary {
			if err := productRepo.ClearPrimaryImage(ctx, productID); err != nil {
				return errors.Wrap(err, "failed to clear primary image")
			}
			if err := productRepo.SetPrimaryImage(ctx, productID, image.ID); err != nil {
				return errors.Wrap(err, "failed to set primary image")
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

// SetPrimaryProductImage moves the primary flag to the given image.
func (srv *catalogService) SetPrimaryProductImage(ctx context.Context, actor policy.Actor, productID, imageID uuid.UUID) error {
	if err := policy.RequireStaff(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Setting primary product image", "productID", productID, "imageID", imageID)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		if err := productRepo.ClearPrimaryImage(ctx, productID); err != nil {
			return errors.Wrap(err, "failed to clear primary image")
		}
		if err := productRepo.SetPrimaryImage(ctx, productID, imageID); err != nil {
			if errors.Is(err, repository.ErrImageNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to set primary image")
		}

		return nil
	})
}

func (srv *catalogService) RemoveProductImage(ctx context.Context, actor policy.Actor, productID, imageID uuid.UUID) error {
	if err := policy.RequireStaff(actor); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		image, err := productRepo.FindImageByID(ctx, imageID)
		if err != nil {
			if errors.Is(err, repository.ErrImageNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find image")
		}
		if image.ProductID != productID {
			return domainerrors.ErrNotFound
		}

		if err := productRepo.RemoveImage(ctx, imageID); err != nil {
			return errors.Wrap(err, "failed to remove image")
		}

		return nil
	})
}

// ReorderProductImages rewrites gallery positions to match the id sequence.
func (srv *catalogService) ReorderProductImages(ctx context.Context, actor policy.Actor, productID uuid.UUID, imageIDs []uuid.UUID) error {
	if err := policy.RequireStaff(actor); err != nil {
		return err
	}
	if len(imageIDs) == 0 {
		return domainerrors.ErrValidationFailed.WithDetails("empty image id list")
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		for position, imageID := range imageIDs {
			if err := productRepo.SetImageOrder(ctx, productID, imageID, position); err != nil {
				if errors.Is(err, repository.ErrImageNotFound) {
					return domainerrors.ErrNotFound
				}

				return errors.Wrap(err, "failed to set image order")
			}
		}

		return nil
	})
}

func (srv *catalogService) ReplaceSpecifications(ctx context.Context, actor policy.Actor, productID uuid.UUID, inputs []*usecase.SpecificationInput) error {
	if err := policy.RequireStaff(actor); err != nil {
		return err
	}

	specs := make([]*entity.Specification, 0, len(inputs))
	for _, in := range inputs {
		specs = append(specs, &entity.Specification{
			ID:        uuid.New(),
			ProductID: productID,
			Name:      in.Name,
			Value:     in.Value,
			Order:     in.Order,
		})
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		if _, err := productRepo.FindProductByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		return errors.Wrap(productRepo.ReplaceSpecifications(ctx, productID, specs), "failed to replace specifications")
	})
}

// --- Store services ---

func (srv *catalogService) ListServices(ctx context.Context, activeOnly bool) ([]*entity.StoreService, error) {
	services, err := srv.storeServiceRepo.ListServices(ctx, activeOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list services")
	}

	return services, nil
}

func (srv *catalogService) GetServiceBySlug(ctx context.Context, slug string) (*entity.StoreService, error) {
	storeService, err := srv.storeServiceRepo.FindServiceBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrServiceNotFound) {
			return nil, domainerrors.ErrNotFound
		}

		return nil, errors.Wrap(err, "failed to find service")
	}

	return storeService, nil
}

func (srv *catalogService) CreateService(ctx context.Context, actor policy.Actor, input *usecase.StoreServiceInput) (*entity.StoreService, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	now := srv.clock.Now()
	storeService := &entity.StoreService{
		ID:          uuid.New(),
		Title:       input.Title,
		Slug:        slugOrDerive(input.Slug, input.Title),
		Category:    input.Category,
		Description: input.Description,
		IconName:    input.IconName,
		Image:       input.Image,
		IsActive:    boolOr(input.IsActive, true),
		Order:       input.Order,
		SEO:         seoFromInput(input.SEO),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.StoreServiceRepo().CreateService(ctx, storeService); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrDuplicateSlug
			}

			return errors.Wrap(err, "failed to create service")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return storeService, nil
}

func (srv *catalogService) UpdateService(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.StoreServiceInput) (*entity.StoreService, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	var storeService *entity.StoreService
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		serviceRepo := repoFactory.StoreServiceRepo()

		found, err := serviceRepo.FindServiceByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrServiceNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find service")
		}

		found.Title = input.Title
		if input.Slug != "" {
			found.Slug = util.Slugify(input.Slug)
		}
		found.Category = input.Category
		found.Description = input.Description
		found.IconName = input.IconName
		if input.Image != "" {
			found.Image = input.Image
		}
		if input.IsActive != nil {
			found.IsActive = *input.IsActive
		}
		found.Order = input.Order
		if input.SEO != nil {
			found.SEO = seoFromInput(input.SEO)
		}
		found.UpdatedAt = srv.clock.Now()

		if err := serviceRepo.UpdateService(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update service")
		}
		storeService = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return storeService, nil
}

func (srv *catalogService) DeleteService(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.StoreServiceRepo().DeleteService(ctx, id); err != nil {
			if errors.Is(err, repository.ErrServiceNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to delete service")
		}

		return nil
	})
}

func (srv *catalogService) AddServiceImage(ctx context.Context, actor policy.Actor, serviceID uuid.UUID, input *usecase.ImageInput) (*entity.StoreServiceImage, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	image := &entity.StoreServiceImage{
		ID:        uuid.New(),
		ServiceID: serviceID,
		Image:     input.Image,
		AltText:   input.AltText,
		Order:     input.Order,
		CreatedAt: srv.clock.Now(),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		serviceRepo := repoFactory.StoreServiceRepo()

		if _, err := serviceRepo.FindServiceByID(ctx, serviceID); err != nil {
			if errors.Is(err, repository.ErrServiceNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find service")
		}

		if err := serviceRepo.AddServiceImage(ctx, image); err != nil {
			return errors.Wrap(err, "failed to add service image")
		}

		if input.IsPrimary {
			if err := serviceRepo.ClearPrimaryServiceImage(ctx, serviceID); err != nil {
				return errors.Wrap(err, "failed to clear primary service image")
			}
			if err := serviceRepo.SetPrimaryServiceImage(ctx, serviceID, image.ID); err != nil {
				return errors.Wrap(err, "failed to set primary service image")
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

func (srv *catalogService) SetPrimaryServiceImage(ctx context.Context, actor policy.Actor, serviceID, imageID uuid.UUID) error {
	if err := policy.RequireStaff(actor); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		serviceRepo := repoFactory.StoreServiceRepo()

		if err := serviceRepo.ClearPrimaryServiceImage(ctx, serviceID); err != nil {
			return errors.Wrap(err, "failed to clear primary service image")
		}
		if err := serviceRepo.SetPrimaryServiceImage(ctx, serviceID, imageID); err != nil {
			if errors.Is(err, repository.ErrImageNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to set primary service image")
		}

		return nil
	})
}

// --- Reviews ---

// ListProductReviews returns a product's reviews. Non-staff callers only see
// approved ones.
func (srv *catalogService) ListProductReviews(ctx context.Context, actor policy.Actor, productID uuid.UUID) ([]*entity.Review, error) {
	approvedOnly := !actor.IsStaffOrAdmin()

	reviews, err := srv.reviewRepo.ListReviewsByProduct(ctx, productID, approvedOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}

// CreateReview files a review. The (product, user) uniqueness is checked
// up front for a friendly error and enforced again by the unique index.
func (srv *catalogService) CreateReview(ctx context.Context, actor policy.Actor, productID uuid.UUID, input *usecase.ReviewInput) (*entity.Review, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Creating review", "productID", productID, "userID", actor.ID)

	author, err := srv.userRepo.FindByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	now := srv.clock.Now()
	review := &entity.Review{
		ID:         uuid.New(),
		ProductID:  productID,
		UserID:     actor.ID,
		UserName:   author.FullName(),
		UserAvatar: author.ProfilePicture,
		Rating:     input.Rating,
		Title:      input.Title,
		Comment:    input.Comment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if !review.ValidRating() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ProductRepo().FindProductByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound
			}

			return errors.Wrap(err, "failed to find product")
		}

		reviewRepo := repoFactory.ReviewRepo()

		if _, err := reviewRepo.FindReviewByProductAndUser(ctx, productID, actor.ID); err == nil {
			return domainerrors.ErrDuplicateReview
		} else if !errors.Is(err, repository.ErrReviewNotFound) {
			return errors.Wrap(err, "failed to check for existing review")
		}

		if err := reviewRepo.CreateReview(ctx, review); err != nil {
			if errors.Is(err, repository.ErrDuplicateReview) {
				return domainerrors.ErrDuplicateReview
			}

			return errors.Wrap(err, "failed to create review")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// UpdateReview lets the author revise their review. Any edit returns the
// review to the unapproved pool for a fresh moderation pass.
func (srv *catalogService) UpdateReview(ctx context.Context, actor policy.Actor, reviewID uuid.UUID, input *usecase.ReviewInput) (*entity.Review, error) {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return nil, err
	}

	var review *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		found, err := reviewRepo.FindReviewByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find review")
		}

		if err := policy.RequireOwner(actor, found.UserID); err != nil {
			return err
		}

		found.Rating = input.Rating
		found.Title = input.Title
		found.Comment = input.Comment
		found.IsApproved = false
		found.UpdatedAt = srv.clock.Now()
		if !found.ValidRating() {
			return domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
		}

		if err := reviewRepo.UpdateReview(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update review")
		}
		review = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

// ApproveReview publishes a pending review.
func (srv *catalogService) ApproveReview(ctx context.Context, actor policy.Actor, reviewID uuid.UUID) error {
	if err := policy.RequireStaff(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Approving review", "reviewID", reviewID)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		review, err := reviewRepo.FindReviewByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find review")
		}

		review.IsApproved = true
		review.UpdatedAt = srv.clock.Now()

		return errors.Wrap(reviewRepo.UpdateReview(ctx, review), "failed to update review")
	})
}

// DeleteReview removes a review. Owners may delete their own; staff any.
func (srv *catalogService) DeleteReview(ctx context.Context, actor policy.Actor, reviewID uuid.UUID) error {
	if err := policy.RequireAuthenticated(actor); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		review, err := reviewRepo.FindReviewByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, repository.ErrReviewNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find review")
		}

		if err := policy.RequireOwnerOrStaff(actor, review.UserID); err != nil {
			return err
		}

		return errors.Wrap(reviewRepo.DeleteReview(ctx, reviewID), "failed to delete review")
	})
}

// --- Shared helpers ---

func slugOrDerive(slug, name string) string {
	if slug != "" {
		return util.Slugify(slug)
	}

	return util.Slugify(name)
}

func seoFromInput(input *usecase.SEOInput) entity.SEOFields {
	if input == nil {
		return entity.SEOFields{}
	}

	return entity.SEOFields{
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		MetaKeywords:    input.MetaKeywords,
		FocusKeyword:    input.FocusKeyword,
	}
}

func boolOr(v *bool, def bool) bool {
	if v != nil {
		return *v
	}

	return def
}

func intOr(v *int, def int) int {
	if v != nil {
		return *v
	}

	return def
}
