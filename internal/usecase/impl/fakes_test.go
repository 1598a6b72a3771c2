package impl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"forge/internal/domain/entity"
	"forge/internal/domain/policy"
	"forge/internal/domain/repository"
	"forge/internal/domain/service"

	"github.com/google/uuid"
)

func adminActor() policy.Actor {
	return policy.Actor{ID: uuid.New(), IsSuperuser: true, IsStaff: true, IsAuthenticated: true}
}

func staffActor() policy.Actor {
	return policy.Actor{ID: uuid.New(), IsStaff: true, IsAuthenticated: true}
}

func userActor() policy.Actor {
	return policy.Actor{ID: uuid.New(), IsAuthenticated: true}
}

// In-memory fakes for the repository and domain service interfaces, shared
// by the service tests in this package. They honor the documented sentinel
// errors so the services' error mapping is exercised for real.

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- transactions ---

type fakeTxManager struct {
	factory  *fakeRepoFactory
	executed int
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.executed++

	return fn(m.factory)
}

type fakeRepoFactory struct {
	users      *fakeUserRepo
	addresses  *fakeAddressRepo
	categories *fakeCategoryRepo
	materials  *fakeMaterialRepo
	products   *fakeProductRepo
	reviews    *fakeReviewRepo
	services   *fakeStoreServiceRepo
	quotations *fakeQuotationRepo
	bookings   *fakeBookingRepo
	portfolio  *fakePortfolioRepo
	staff      *fakeStaffRepo
	projects   *fakeProjectRepo
}

func newFakeFactory() *fakeRepoFactory {
	return &fakeRepoFactory{
		users:      &fakeUserRepo{users: map[uuid.UUID]*entity.User{}},
		addresses:  &fakeAddressRepo{addresses: map[uuid.UUID]*entity.Address{}},
		categories: &fakeCategoryRepo{categories: map[uuid.UUID]*entity.Category{}},
		materials:  &fakeMaterialRepo{materials: map[uuid.UUID]*entity.Material{}},
		products:   &fakeProductRepo{products: map[uuid.UUID]*entity.Product{}, images: map[uuid.UUID]*entity.ProductImage{}},
		reviews:    &fakeReviewRepo{reviews: map[uuid.UUID]*entity.Review{}},
		services:   &fakeStoreServiceRepo{services: map[uuid.UUID]*entity.StoreService{}, images: map[uuid.UUID]*entity.StoreServiceImage{}},
		quotations: &fakeQuotationRepo{quotations: map[uuid.UUID]*entity.QuotationRequest{}, attachments: map[uuid.UUID]*entity.QuotationAttachment{}},
		bookings:   &fakeBookingRepo{bookings: map[uuid.UUID]*entity.ServiceBooking{}},
		portfolio: &fakePortfolioRepo{
			categories: map[uuid.UUID]*entity.PortfolioCategory{},
			projects:   map[uuid.UUID]*entity.PortfolioProject{},
			images:     map[uuid.UUID]*entity.PortfolioProjectImage{},
		},
		staff: &fakeStaffRepo{
			profiles:   map[uuid.UUID]*entity.StaffProfile{},
			attendance: map[uuid.UUID]*entity.Attendance{},
			payrolls:   map[uuid.UUID]*entity.Payroll{},
		},
		projects: &fakeProjectRepo{
			projects:    map[uuid.UUID]*entity.Project{},
			assignments: map[uuid.UUID]*entity.ProjectAssignment{},
			payments:    map[uuid.UUID]*entity.ProjectPayment{},
		},
	}
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository                 { return f.users }
func (f *fakeRepoFactory) AddressRepo() repository.AddressRepository          { return f.addresses }
func (f *fakeRepoFactory) CategoryRepo() repository.CategoryRepository        { return f.categories }
func (f *fakeRepoFactory) MaterialRepo() repository.MaterialRepository        { return f.materials }
func (f *fakeRepoFactory) ProductRepo() repository.ProductRepository          { return f.products }
func (f *fakeRepoFactory) ReviewRepo() repository.ReviewRepository            { return f.reviews }
func (f *fakeRepoFactory) StoreServiceRepo() repository.StoreServiceRepository { return f.services }
func (f *fakeRepoFactory) QuotationRepo() repository.QuotationRepository      { return f.quotations }
func (f *fakeRepoFactory) BookingRepo() repository.BookingRepository          { return f.bookings }
func (f *fakeRepoFactory) PortfolioRepo() repository.PortfolioRepository      { return f.portfolio }
func (f *fakeRepoFactory) StaffRepo() repository.StaffRepository              { return f.staff }
func (f *fakeRepoFactory) ProjectRepo() repository.ProjectRepository          { return f.projects }

// --- users ---

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range r.users {
		if filter.Role != "" && user.Role() != filter.Role {
			continue
		}
		if filter.IsActive != nil && user.IsActive != *filter.IsActive {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			haystack := strings.ToLower(user.Username + " " + user.Email + " " + user.FirstName + " " + user.LastName)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		out = append(out, user)
	}

	return out, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repository.ErrDuplicateUser
		}
	}
	r.users[user.ID] = user

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	r.users[user.ID] = user

	return nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, ids []uuid.UUID, active bool) (int64, error) {
	var affected int64
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			user.IsActive = active
			affected++
		}
	}

	return affected, nil
}

func (r *fakeUserRepo) SetRoleFlags(_ context.Context, id uuid.UUID, isSuperuser, isStaff bool) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.IsSuperuser = isSuperuser
	user.IsStaff = isStaff

	return nil
}

func (r *fakeUserRepo) RecordLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.LastLogin = &at

	return nil
}

func (r *fakeUserRepo) Stats(_ context.Context, joinedSince time.Time) (*repository.UserStats, error) {
	var stats repository.UserStats
	for _, user := range r.users {
		stats.Total++
		if user.IsActive {
			stats.Active++
		}
		if user.IsSuperuser {
			stats.Admins++
		} else if user.IsStaff {
			stats.Staff++
		}
		if !user.DateJoined.Before(joinedSince) {
			stats.JoinedSince++
		}
	}

	return &stats, nil
}

// --- addresses ---

type fakeAddressRepo struct {
	addresses map[uuid.UUID]*entity.Address
}

func (r *fakeAddressRepo) CreateAddress(_ context.Context, address *entity.Address) error {
	r.addresses[address.ID] = address

	return nil
}

func (r *fakeAddressRepo) FindAddressByID(_ context.Context, id uuid.UUID) (*entity.Address, error) {
	address, ok := r.addresses[id]
	if !ok {
		return nil, repository.ErrAddressNotFound
	}

	return address, nil
}

func (r *fakeAddressRepo) FindAddressesByUser(_ context.Context, userID uuid.UUID) ([]*entity.Address, error) {
	var out []*entity.Address
	for _, address := range r.addresses {
		if address.UserID == userID {
			out = append(out, address)
		}
	}

	return out, nil
}

func (r *fakeAddressRepo) UpdateAddress(_ context.Context, address *entity.Address) error {
	if _, ok := r.addresses[address.ID]; !ok {
		return repository.ErrAddressNotFound
	}
	r.addresses[address.ID] = address

	return nil
}

func (r *fakeAddressRepo) DeleteAddress(_ context.Context, id uuid.UUID) error {
	delete(r.addresses, id)

	return nil
}

func (r *fakeAddressRepo) ClearDefaultFlag(_ context.Context, userID uuid.UUID, flag entity.AddressFlag) error {
	for _, address := range r.addresses {
		if address.UserID == userID {
			address.SetFlag(flag, false)
		}
	}

	return nil
}

func (r *fakeAddressRepo) SetDefaultFlag(_ context.Context, userID, addressID uuid.UUID, flag entity.AddressFlag) error {
	address, ok := r.addresses[addressID]
	if !ok || address.UserID != userID {
		return repository.ErrAddressNotFound
	}
	address.SetFlag(flag, true)

	return nil
}

// --- categories ---

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func (r *fakeCategoryRepo) CreateCategory(_ context.Context, category *entity.Category) error {
	for _, existing := range r.categories {
		if existing.Slug == category.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	r.categories[category.ID] = category

	return nil
}

func (r *fakeCategoryRepo) FindCategoryByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}

	return category, nil
}

func (r *fakeCategoryRepo) FindCategoryBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, category := range r.categories {
		if category.Slug == slug {
			return category, nil
		}
	}

	return nil, repository.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) ListCategories(_ context.Context, activeOnly bool) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, category := range r.categories {
		if activeOnly && !category.IsActive {
			continue
		}
		out = append(out, category)
	}

	return out, nil
}

func (r *fakeCategoryRepo) UpdateCategory(_ context.Context, category *entity.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	r.categories[category.ID] = category

	return nil
}

func (r *fakeCategoryRepo) DeleteCategory(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)

	return nil
}

// --- materials ---

type fakeMaterialRepo struct {
	materials map[uuid.UUID]*entity.Material
}

func (r *fakeMaterialRepo) CreateMaterial(_ context.Context, material *entity.Material) error {
	r.materials[material.ID] = material

	return nil
}

func (r *fakeMaterialRepo) FindMaterialByID(_ context.Context, id uuid.UUID) (*entity.Material, error) {
	material, ok := r.materials[id]
	if !ok {
		return nil, repository.ErrMaterialNotFound
	}

	return material, nil
}

func (r *fakeMaterialRepo) ListMaterials(_ context.Context, activeOnly bool) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, material := range r.materials {
		if activeOnly && !material.IsActive {
			continue
		}
		out = append(out, material)
	}

	return out, nil
}

func (r *fakeMaterialRepo) UpdateMaterial(_ context.Context, material *entity.Material) error {
	if _, ok := r.materials[material.ID]; !ok {
		return repository.ErrMaterialNotFound
	}
	r.materials[material.ID] = material

	return nil
}

func (r *fakeMaterialRepo) DeleteMaterial(_ context.Context, id uuid.UUID) error {
	delete(r.materials, id)

	return nil
}

// --- products ---

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
	images   map[uuid.UUID]*entity.ProductImage
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, product *entity.Product) error {
	for _, existing := range r.products {
		if existing.Slug == product.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	r.products[product.ID] = product

	return nil
}

func (r *fakeProductRepo) FindProductByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	product.Images = r.imagesOf(id)

	return product, nil
}

func (r *fakeProductRepo) FindProductBySlug(_ context.Context, slug string) (*entity.Product, error) {
	for _, product := range r.products {
		if product.Slug == slug {
			return product, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) ListProducts(_ context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, product := range r.products {
		if filter.CategoryID != nil && product.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.ProductType != "" && product.ProductType != filter.ProductType {
			continue
		}
		if filter.ActiveOnly && !product.IsActive {
			continue
		}
		if filter.Featured != nil && product.IsFeatured != *filter.Featured {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			haystack := strings.ToLower(product.Name + " " + product.Description)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		out = append(out, product)
	}

	return out, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, product *entity.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	r.products[product.ID] = product

	return nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)

	return nil
}

func (r *fakeProductRepo) AddImage(_ context.Context, image *entity.ProductImage) error {
	r.images[image.ID] = image

	return nil
}

func (r *fakeProductRepo) FindImageByID(_ context.Context, id uuid.UUID) (*entity.ProductImage, error) {
	image, ok := r.images[id]
	if !ok {
		return nil, repository.ErrImageNotFound
	}

	return image, nil
}

func (r *fakeProductRepo) ClearPrimaryImage(_ context.Context, productID uuid.UUID) error {
	for _, image := range r.images {
		if image.ProductID == productID {
			image.IsPrimary = false
		}
	}

	return nil
}

func (r *fakeProductRepo) SetPrimaryImage(_ context.Context, productID, imageID uuid.UUID) error {
	image, ok := r.images[imageID]
	if !ok || image.ProductID != productID {
		return repository.ErrImageNotFound
	}
	image.IsPrimary = true

	return nil
}

func (r *fakeProductRepo) SetImageOrder(_ context.Context, productID, imageID uuid.UUID, order int) error {
	image, ok := r.images[imageID]
	if !ok || image.ProductID != productID {
		return repository.ErrImageNotFound
	}
	image.Order = order

	return nil
}

func (r *fakeProductRepo) RemoveImage(_ context.Context, id uuid.UUID) error {
	delete(r.images, id)

	return nil
}

func (r *fakeProductRepo) ReplaceSpecifications(_ context.Context, productID uuid.UUID, specs []*entity.Specification) error {
	product, ok := r.products[productID]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.Specifications = specs

	return nil
}

func (r *fakeProductRepo) imagesOf(productID uuid.UUID) []*entity.ProductImage {
	var out []*entity.ProductImage
	for _, image := range r.images {
		if image.ProductID == productID {
			out = append(out, image)
		}
	}

	return out
}

// --- reviews ---

type fakeReviewRepo struct {
	reviews map[uuid.UUID]*entity.Review
}

func (r *fakeReviewRepo) CreateReview(_ context.Context, review *entity.Review) error {
	for _, existing := range r.reviews {
		if existing.ProductID == review.ProductID && existing.UserID == review.UserID {
			return repository.ErrDuplicateReview
		}
	}
	r.reviews[review.ID] = review

	return nil
}

func (r *fakeReviewRepo) FindReviewByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}

	return review, nil
}

func (r *fakeReviewRepo) FindReviewByProductAndUser(_ context.Context, productID, userID uuid.UUID) (*entity.Review, error) {
	for _, review := range r.reviews {
		if review.ProductID == productID && review.UserID == userID {
			return review, nil
		}
	}

	return nil, repository.ErrReviewNotFound
}

func (r *fakeReviewRepo) ListReviewsByProduct(_ context.Context, productID uuid.UUID, approvedOnly bool) ([]*entity.Review, error) {
	var out []*entity.Review
	for _, review := range r.reviews {
		if review.ProductID != productID {
			continue
		}
		if approvedOnly && !review.IsApproved {
			continue
		}
		out = append(out, review)
	}

	return out, nil
}

func (r *fakeReviewRepo) UpdateReview(_ context.Context, review *entity.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	r.reviews[review.ID] = review

	return nil
}

func (r *fakeReviewRepo) DeleteReview(_ context.Context, id uuid.UUID) error {
	delete(r.reviews, id)

	return nil
}

// --- store services ---

type fakeStoreServiceRepo struct {
	services map[uuid.UUID]*entity.StoreService
	images   map[uuid.UUID]*entity.StoreServiceImage
}

func (r *fakeStoreServiceRepo) CreateService(_ context.Context, svc *entity.StoreService) error {
	for _, existing := range r.services {
		if existing.Slug == svc.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	r.services[svc.ID] = svc

	return nil
}

func (r *fakeStoreServiceRepo) FindServiceByID(_ context.Context, id uuid.UUID) (*entity.StoreService, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, repository.ErrServiceNotFound
	}

	return svc, nil
}

func (r *fakeStoreServiceRepo) FindServiceBySlug(_ context.Context, slug string) (*entity.StoreService, error) {
	for _, svc := range r.services {
		if svc.Slug == slug {
			return svc, nil
		}
	}

	return nil, repository.ErrServiceNotFound
}

func (r *fakeStoreServiceRepo) ListServices(_ context.Context, activeOnly bool) ([]*entity.StoreService, error) {
	var out []*entity.StoreService
	for _, svc := range r.services {
		if activeOnly && !svc.IsActive {
			continue
		}
		out = append(out, svc)
	}

	return out, nil
}

func (r *fakeStoreServiceRepo) UpdateService(_ context.Context, svc *entity.StoreService) error {
	if _, ok := r.services[svc.ID]; !ok {
		return repository.ErrServiceNotFound
	}
	r.services[svc.ID] = svc

	return nil
}

func (r *fakeStoreServiceRepo) DeleteService(_ context.Context, id uuid.UUID) error {
	delete(r.services, id)

	return nil
}

func (r *fakeStoreServiceRepo) AddServiceImage(_ context.Context, image *entity.StoreServiceImage) error {
	r.images[image.ID] = image

	return nil
}

func (r *fakeStoreServiceRepo) ClearPrimaryServiceImage(_ context.Context, serviceID uuid.UUID) error {
	for _, image := range r.images {
		if image.ServiceID == serviceID {
			image.IsPrimary = false
		}
	}

	return nil
}

func (r *fakeStoreServiceRepo) SetPrimaryServiceImage(_ context.Context, serviceID, imageID uuid.UUID) error {
	image, ok := r.images[imageID]
	if !ok || image.ServiceID != serviceID {
		return repository.ErrImageNotFound
	}
	image.IsPrimary = true

	return nil
}

func (r *fakeStoreServiceRepo) RemoveServiceImage(_ context.Context, id uuid.UUID) error {
	delete(r.images, id)

	return nil
}

// --- quotations ---

type fakeQuotationRepo struct {
	quotations  map[uuid.UUID]*entity.QuotationRequest
	attachments map[uuid.UUID]*entity.QuotationAttachment
}

func (r *fakeQuotationRepo) CreateQuotation(_ context.Context, quotation *entity.QuotationRequest) error {
	r.quotations[quotation.ID] = quotation

	return nil
}

func (r *fakeQuotationRepo) FindQuotationByID(_ context.Context, id uuid.UUID) (*entity.QuotationRequest, error) {
	quotation, ok := r.quotations[id]
	if !ok {
		return nil, repository.ErrQuotationNotFound
	}

	return quotation, nil
}

func (r *fakeQuotationRepo) ListQuotations(_ context.Context, filter repository.QuotationFilter) ([]*entity.QuotationRequest, error) {
	var out []*entity.QuotationRequest
	for _, quotation := range r.quotations {
		if filter.Status != "" && quotation.Status != filter.Status {
			continue
		}
		if filter.QuoteType != "" && quotation.QuoteType != filter.QuoteType {
			continue
		}
		if filter.UserID != nil && !quotation.Requester.OwnedBy(*filter.UserID) {
			continue
		}
		out = append(out, quotation)
	}

	return out, nil
}

func (r *fakeQuotationRepo) UpdateQuotation(_ context.Context, quotation *entity.QuotationRequest) error {
	if _, ok := r.quotations[quotation.ID]; !ok {
		return repository.ErrQuotationNotFound
	}
	r.quotations[quotation.ID] = quotation

	return nil
}

func (r *fakeQuotationRepo) DeleteQuotation(_ context.Context, id uuid.UUID) error {
	delete(r.quotations, id)

	return nil
}

func (r *fakeQuotationRepo) AddAttachment(_ context.Context, attachment *entity.QuotationAttachment) error {
	r.attachments[attachment.ID] = attachment
	if quotation, ok := r.quotations[attachment.QuotationID]; ok {
		quotation.Attachments = append(quotation.Attachments, attachment)
	}

	return nil
}

func (r *fakeQuotationRepo) RemoveAttachment(_ context.Context, id uuid.UUID) error {
	delete(r.attachments, id)

	return nil
}

// --- bookings ---

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*entity.ServiceBooking
}

func (r *fakeBookingRepo) CreateBooking(_ context.Context, booking *entity.ServiceBooking) error {
	r.bookings[booking.ID] = booking

	return nil
}

func (r *fakeBookingRepo) FindBookingByID(_ context.Context, id uuid.UUID) (*entity.ServiceBooking, error) {
	booking, ok := r.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}

	return booking, nil
}

func (r *fakeBookingRepo) ListBookings(_ context.Context, filter repository.BookingFilter) ([]*entity.ServiceBooking, error) {
	var out []*entity.ServiceBooking
	for _, booking := range r.bookings {
		if filter.Status != "" && booking.Status != filter.Status {
			continue
		}
		if filter.UserID != nil && booking.UserID != *filter.UserID {
			continue
		}
		out = append(out, booking)
	}

	return out, nil
}

func (r *fakeBookingRepo) UpdateBooking(_ context.Context, booking *entity.ServiceBooking) error {
	if _, ok := r.bookings[booking.ID]; !ok {
		return repository.ErrBookingNotFound
	}
	r.bookings[booking.ID] = booking

	return nil
}

// --- portfolio ---

type fakePortfolioRepo struct {
	categories map[uuid.UUID]*entity.PortfolioCategory
	projects   map[uuid.UUID]*entity.PortfolioProject
	images     map[uuid.UUID]*entity.PortfolioProjectImage
}

func (r *fakePortfolioRepo) CreatePortfolioCategory(_ context.Context, category *entity.PortfolioCategory) error {
	for _, existing := range r.categories {
		if existing.Slug == category.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	r.categories[category.ID] = category

	return nil
}

func (r *fakePortfolioRepo) ListPortfolioCategories(_ context.Context) ([]*entity.PortfolioCategory, error) {
	var out []*entity.PortfolioCategory
	for _, category := range r.categories {
		out = append(out, category)
	}

	return out, nil
}

func (r *fakePortfolioRepo) UpdatePortfolioCategory(_ context.Context, category *entity.PortfolioCategory) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repository.ErrPortfolioCategoryNotFound
	}
	r.categories[category.ID] = category

	return nil
}

func (r *fakePortfolioRepo) DeletePortfolioCategory(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrPortfolioCategoryNotFound
	}
	delete(r.categories, id)
	for _, project := range r.projects {
		if project.CategoryID != nil && *project.CategoryID == id {
			project.CategoryID = nil
		}
	}

	return nil
}

func (r *fakePortfolioRepo) CreatePortfolioProject(_ context.Context, project *entity.PortfolioProject) error {
	for _, existing := range r.projects {
		if existing.Slug == project.Slug {
			return repository.ErrDuplicateSlug
		}
	}
	r.projects[project.ID] = project

	return nil
}

func (r *fakePortfolioRepo) FindPortfolioProjectByID(_ context.Context, id uuid.UUID) (*entity.PortfolioProject, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrPortfolioProjectNotFound
	}
	project.Images = r.imagesOf(id)

	return project, nil
}

func (r *fakePortfolioRepo) FindPortfolioProjectBySlug(_ context.Context, slug string) (*entity.PortfolioProject, error) {
	for _, project := range r.projects {
		if project.Slug == slug {
			return project, nil
		}
	}

	return nil, repository.ErrPortfolioProjectNotFound
}

func (r *fakePortfolioRepo) ListPortfolioProjects(_ context.Context, categoryID *uuid.UUID, featuredOnly bool) ([]*entity.PortfolioProject, error) {
	var out []*entity.PortfolioProject
	for _, project := range r.projects {
		if categoryID != nil && (project.CategoryID == nil || *project.CategoryID != *categoryID) {
			continue
		}
		if featuredOnly && !project.IsFeatured {
			continue
		}
		out = append(out, project)
	}

	return out, nil
}

func (r *fakePortfolioRepo) UpdatePortfolioProject(_ context.Context, project *entity.PortfolioProject) error {
	if _, ok := r.projects[project.ID]; !ok {
		return repository.ErrPortfolioProjectNotFound
	}
	r.projects[project.ID] = project

	return nil
}

func (r *fakePortfolioRepo) DeletePortfolioProject(_ context.Context, id uuid.UUID) error {
	delete(r.projects, id)

	return nil
}

func (r *fakePortfolioRepo) AddProjectImage(_ context.Context, image *entity.PortfolioProjectImage) error {
	r.images[image.ID] = image

	return nil
}

func (r *fakePortfolioRepo) ClearPrimaryProjectImage(_ context.Context, projectID uuid.UUID) error {
	for _, image := range r.images {
		if image.ProjectID == projectID {
			image.IsPrimary = false
		}
	}

	return nil
}

func (r *fakePortfolioRepo) SetPrimaryProjectImage(_ context.Context, projectID, imageID uuid.UUID) error {
	image, ok := r.images[imageID]
	if !ok || image.ProjectID != projectID {
		return repository.ErrImageNotFound
	}
	image.IsPrimary = true

	return nil
}

func (r *fakePortfolioRepo) RemoveProjectImage(_ context.Context, id uuid.UUID) error {
	delete(r.images, id)

	return nil
}

func (r *fakePortfolioRepo) imagesOf(projectID uuid.UUID) []*entity.PortfolioProjectImage {
	var out []*entity.PortfolioProjectImage
	for _, image := range r.images {
		if image.ProjectID == projectID {
			out = append(out, image)
		}
	}

	return out
}

// --- staff ---

type fakeStaffRepo struct {
	profiles   map[uuid.UUID]*entity.StaffProfile
	attendance map[uuid.UUID]*entity.Attendance
	payrolls   map[uuid.UUID]*entity.Payroll
}

func (r *fakeStaffRepo) CreateProfile(_ context.Context, profile *entity.StaffProfile) error {
	for _, existing := range r.profiles {
		if existing.UserID == profile.UserID {
			return repository.ErrDuplicateStaffProfile
		}
	}
	r.profiles[profile.ID] = profile

	return nil
}

func (r *fakeStaffRepo) FindProfileByID(_ context.Context, id uuid.UUID) (*entity.StaffProfile, error) {
	profile, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrStaffProfileNotFound
	}

	return profile, nil
}

func (r *fakeStaffRepo) FindProfileByUserID(_ context.Context, userID uuid.UUID) (*entity.StaffProfile, error) {
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}

	return nil, repository.ErrStaffProfileNotFound
}

func (r *fakeStaffRepo) ListProfiles(_ context.Context, activeOnly bool) ([]*entity.StaffProfile, error) {
	var out []*entity.StaffProfile
	for _, profile := range r.profiles {
		if activeOnly && !profile.IsActive {
			continue
		}
		out = append(out, profile)
	}

	return out, nil
}

func (r *fakeStaffRepo) UpdateProfile(_ context.Context, profile *entity.StaffProfile) error {
	if _, ok := r.profiles[profile.ID]; !ok {
		return repository.ErrStaffProfileNotFound
	}
	r.profiles[profile.ID] = profile

	return nil
}

func (r *fakeStaffRepo) RecordAttendance(_ context.Context, attendance *entity.Attendance) error {
	for _, existing := range r.attendance {
		if existing.StaffID == attendance.StaffID && existing.Date.Equal(attendance.Date) {
			return repository.ErrDuplicateAttendance
		}
	}
	r.attendance[attendance.ID] = attendance

	return nil
}

func (r *fakeStaffRepo) UpdateAttendance(_ context.Context, attendance *entity.Attendance) error {
	if _, ok := r.attendance[attendance.ID]; !ok {
		return repository.ErrAttendanceNotFound
	}
	r.attendance[attendance.ID] = attendance

	return nil
}

func (r *fakeStaffRepo) FindAttendance(_ context.Context, staffID uuid.UUID, date time.Time) (*entity.Attendance, error) {
	for _, attendance := range r.attendance {
		if attendance.StaffID == staffID && attendance.Date.Equal(date) {
			return attendance, nil
		}
	}

	return nil, repository.ErrAttendanceNotFound
}

func (r *fakeStaffRepo) ListAttendanceByStaff(_ context.Context, staffID uuid.UUID, from, to time.Time) ([]*entity.Attendance, error) {
	var out []*entity.Attendance
	for _, attendance := range r.attendance {
		if attendance.StaffID != staffID {
			continue
		}
		if attendance.Date.Before(from) || attendance.Date.After(to) {
			continue
		}
		out = append(out, attendance)
	}

	return out, nil
}

func (r *fakeStaffRepo) CreatePayroll(_ context.Context, payroll *entity.Payroll) error {
	r.payrolls[payroll.ID] = payroll

	return nil
}

func (r *fakeStaffRepo) FindPayrollByID(_ context.Context, id uuid.UUID) (*entity.Payroll, error) {
	payroll, ok := r.payrolls[id]
	if !ok {
		return nil, repository.ErrPayrollNotFound
	}

	return payroll, nil
}

func (r *fakeStaffRepo) ListPayrollsByStaff(_ context.Context, staffID uuid.UUID) ([]*entity.Payroll, error) {
	var out []*entity.Payroll
	for _, payroll := range r.payrolls {
		if payroll.StaffID == staffID {
			out = append(out, payroll)
		}
	}

	return out, nil
}

func (r *fakeStaffRepo) UpdatePayroll(_ context.Context, payroll *entity.Payroll) error {
	if _, ok := r.payrolls[payroll.ID]; !ok {
		return repository.ErrPayrollNotFound
	}
	r.payrolls[payroll.ID] = payroll

	return nil
}

// --- projects ---

type fakeProjectRepo struct {
	projects    map[uuid.UUID]*entity.Project
	assignments map[uuid.UUID]*entity.ProjectAssignment
	payments    map[uuid.UUID]*entity.ProjectPayment
}

func (r *fakeProjectRepo) CreateProject(_ context.Context, project *entity.Project) error {
	r.projects[project.ID] = project

	return nil
}

func (r *fakeProjectRepo) FindProjectByID(_ context.Context, id uuid.UUID) (*entity.Project, error) {
	project, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	project.Assignments = r.assignmentsOf(id)

	return project, nil
}

func (r *fakeProjectRepo) ListProjects(_ context.Context, status entity.ProjectStatus) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, project := range r.projects {
		if status != "" && project.Status != status {
			continue
		}
		project.Assignments = r.assignmentsOf(project.ID)
		out = append(out, project)
	}

	return out, nil
}

func (r *fakeProjectRepo) UpdateProject(_ context.Context, project *entity.Project) error {
	if _, ok := r.projects[project.ID]; !ok {
		return repository.ErrProjectNotFound
	}
	r.projects[project.ID] = project

	return nil
}

func (r *fakeProjectRepo) DeleteProject(_ context.Context, id uuid.UUID) error {
	delete(r.projects, id)

	return nil
}

func (r *fakeProjectRepo) CreateAssignment(_ context.Context, assignment *entity.ProjectAssignment) error {
	for _, existing := range r.assignments {
		if existing.ProjectID == assignment.ProjectID && existing.StaffID == assignment.StaffID {
			return repository.ErrDuplicateAssignment
		}
	}
	r.assignments[assignment.ID] = assignment

	return nil
}

func (r *fakeProjectRepo) FindAssignmentByID(_ context.Context, id uuid.UUID) (*entity.ProjectAssignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, repository.ErrAssignmentNotFound
	}

	return assignment, nil
}

func (r *fakeProjectRepo) ListAssignmentsByStaff(_ context.Context, staffID uuid.UUID) ([]*entity.ProjectAssignment, error) {
	var out []*entity.ProjectAssignment
	for _, assignment := range r.assignments {
		if assignment.StaffID == staffID {
			out = append(out, assignment)
		}
	}

	return out, nil
}

func (r *fakeProjectRepo) UpdateAssignment(_ context.Context, assignment *entity.ProjectAssignment) error {
	if _, ok := r.assignments[assignment.ID]; !ok {
		return repository.ErrAssignmentNotFound
	}
	r.assignments[assignment.ID] = assignment

	return nil
}

func (r *fakeProjectRepo) RemoveAssignment(_ context.Context, id uuid.UUID) error {
	delete(r.assignments, id)

	return nil
}

func (r *fakeProjectRepo) CreatePayment(_ context.Context, payment *entity.ProjectPayment) error {
	r.payments[payment.ID] = payment

	return nil
}

func (r *fakeProjectRepo) FindPaymentByID(_ context.Context, id uuid.UUID) (*entity.ProjectPayment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrPaymentNotFound
	}

	return payment, nil
}

func (r *fakeProjectRepo) UpdatePayment(_ context.Context, payment *entity.ProjectPayment) error {
	if _, ok := r.payments[payment.ID]; !ok {
		return repository.ErrPaymentNotFound
	}
	r.payments[payment.ID] = payment

	return nil
}

func (r *fakeProjectRepo) assignmentsOf(projectID uuid.UUID) []*entity.ProjectAssignment {
	var out []*entity.ProjectAssignment
	for _, assignment := range r.assignments {
		if assignment.ProjectID == projectID {
			assignment.Payments = r.paymentsOf(assignment.ID)
			out = append(out, assignment)
		}
	}

	return out
}

func (r *fakeProjectRepo) paymentsOf(assignmentID uuid.UUID) []*entity.ProjectPayment {
	var out []*entity.ProjectPayment
	for _, payment := range r.payments {
		if payment.AssignmentID == assignmentID {
			out = append(out, payment)
		}
	}

	return out
}

// --- domain services ---

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type fakeTokenService struct {
	tokens map[string]*service.Claims
	issued int
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{tokens: map[string]*service.Claims{}}
}

func (s *fakeTokenService) GenerateTokens(userID uuid.UUID, role string) (string, string, error) {
	s.issued++
	access := fmt.Sprintf("access-%d", s.issued)
	refresh := fmt.Sprintf("refresh-%d", s.issued)
	s.tokens[access] = &service.Claims{UserID: userID, Role: role, Type: "access"}
	s.tokens[refresh] = &service.Claims{UserID: userID, Role: role, Type: "refresh"}

	return access, refresh, nil
}

func (s *fakeTokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims, ok := s.tokens[tokenString]
	if !ok {
		return nil, errors.New("token is malformed or expired")
	}

	return claims, nil
}

func (s *fakeTokenService) GetRefreshTokenDuration() time.Duration {
	return 7 * 24 * time.Hour
}

type fakeFileStorage struct {
	files map[string][]byte
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{files: map[string][]byte{}}
}

func (s *fakeFileStorage) Save(_ context.Context, keyPrefix, filename, contentType string, content io.Reader) (*service.StoredFile, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	key := keyPrefix + "/" + filename
	s.files[key] = data

	return &service.StoredFile{Key: key, Size: int64(len(data)), ContentType: contentType}, nil
}

func (s *fakeFileStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.files[key]
	if !ok {
		return nil, errors.New("file not found: " + key)
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeFileStorage) Delete(_ context.Context, key string) error {
	delete(s.files, key)

	return nil
}

type fakeQRService struct{}

func (fakeQRService) GenerateBookingQR(bookingID uuid.UUID) ([]byte, error) {
	return []byte("qr:" + bookingID.String()), nil
}

func (fakeQRService) ParseBookingQR(qrData string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimPrefix(qrData, "qr:"))
}
