// Package router contains routing setup for the HTTP delivery.
package router

import (
	"forge/internal/delivery/http/middleware"
	"forge/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler   *handler.AccountHandler
	AdminUserHandler *handler.AdminUserHandler
	CatalogHandler   *handler.CatalogHandler
	QuotationHandler *handler.QuotationHandler
	BookingHandler   *handler.BookingHandler
	PortfolioHandler *handler.PortfolioHandler
	HRHandler        *handler.HRHandler
	ProjectHandler   *handler.ProjectHandler
	UploadHandler    *handler.UploadHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.params.AccountHandler.Register)
		authGroup.POST("/login", r.params.AccountHandler.Login)
		authGroup.POST("/refresh", r.params.AccountHandler.RefreshToken)
	}

	// Self-service account routes
	accountGroup := e.Group("/account", auth.Authenticate)
	{
		accountGroup.GET("/profile", r.params.AccountHandler.GetProfile)
		accountGroup.PUT("/profile", r.params.AccountHandler.UpdateProfile)
		accountGroup.PUT("/password", r.params.AccountHandler.ChangePassword)
		accountGroup.GET("/addresses", r.params.AccountHandler.ListAddresses)
		accountGroup.POST("/addresses", r.params.AccountHandler.CreateAddress)
		accountGroup.PUT("/addresses/:id", r.params.AccountHandler.UpdateAddress)
		accountGroup.DELETE("/addresses/:id", r.params.AccountHandler.DeleteAddress)
		accountGroup.PUT("/addresses/:id/default", r.params.AccountHandler.SetDefaultAddress)
	}

	// Public catalog browsing. Review listing takes an optional token so
	// staff also see reviews awaiting approval.
	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("/categories", r.params.CatalogHandler.ListCategories)
		catalogGroup.GET("/categories/:slug", r.params.CatalogHandler.GetCategory)
		catalogGroup.GET("/materials", r.params.CatalogHandler.ListMaterials)
		catalogGroup.GET("/products", r.params.CatalogHandler.ListProducts)
		catalogGroup.GET("/products/:slug", r.params.CatalogHandler.GetProduct)
		catalogGroup.GET("/products/:id/reviews", r.params.CatalogHandler.ListProductReviews, auth.OptionalAuthenticate)
		catalogGroup.POST("/products/:id/reviews", r.params.CatalogHandler.CreateReview, auth.Authenticate)
		catalogGroup.GET("/services", r.params.CatalogHandler.ListServices)
		catalogGroup.GET("/services/:slug", r.params.CatalogHandler.GetService)
	}

	e.PUT("/reviews/:id", r.params.CatalogHandler.UpdateReview, auth.Authenticate)
	e.DELETE("/reviews/:id", r.params.CatalogHandler.DeleteReview, auth.Authenticate)

	// Public portfolio showcase
	portfolioGroup := e.Group("/portfolio")
	{
		portfolioGroup.GET("/categories", r.params.PortfolioHandler.ListCategories)
		portfolioGroup.GET("/projects", r.params.PortfolioHandler.ListProjects)
		portfolioGroup.GET("/projects/:slug", r.params.PortfolioHandler.GetProject)
	}

	// Quotation requests. Creation takes an optional token so guests can
	// file requests with contact details in the payload.
	quotationGroup := e.Group("/quotations")
	{
		quotationGroup.POST("", r.params.QuotationHandler.CreateQuotation, auth.OptionalAuthenticate)
		quotationGroup.GET("", r.params.QuotationHandler.ListQuotations, auth.Authenticate)
		quotationGroup.GET("/:id", r.params.QuotationHandler.GetQuotation, auth.Authenticate)
		quotationGroup.PUT("/:id", r.params.QuotationHandler.UpdateQuotation, auth.Authenticate)
		quotationGroup.DELETE("/:id", r.params.QuotationHandler.DeleteQuotation, auth.Authenticate)
		quotationGroup.POST("/:id/response", r.params.QuotationHandler.RespondToQuote, auth.Authenticate)
		quotationGroup.POST("/:id/attachments", r.params.QuotationHandler.AddAttachment, auth.Authenticate)
	}

	// Service bookings
	bookingGroup := e.Group("/bookings", auth.Authenticate)
	{
		bookingGroup.POST("", r.params.BookingHandler.CreateBooking)
		bookingGroup.GET("", r.params.BookingHandler.ListBookings)
		bookingGroup.GET("/:id", r.params.BookingHandler.GetBooking)
		bookingGroup.PUT("/:id", r.params.BookingHandler.UpdateBooking)
		bookingGroup.DELETE("/:id", r.params.BookingHandler.CancelBooking)
		bookingGroup.GET("/:id/qr", r.params.BookingHandler.BookingQR)
	}

	// Staff self-service attendance
	staffGroup := e.Group("/staff", auth.Authenticate, auth.RequireStaff)
	{
		staffGroup.POST("/attendance/clock-in", r.params.HRHandler.ClockIn)
		staffGroup.POST("/attendance/clock-out", r.params.HRHandler.ClockOut)
	}

	// Staff management surface
	adminGroup := e.Group("/admin", auth.Authenticate, auth.RequireStaff)
	{
		adminGroup.POST("/uploads", r.params.UploadHandler.Upload)

		adminGroup.POST("/catalog/categories", r.params.CatalogHandler.CreateCategory)
		adminGroup.PUT("/catalog/categories/:id", r.params.CatalogHandler.UpdateCategory)
		adminGroup.DELETE("/catalog/categories/:id", r.params.CatalogHandler.DeleteCategory)
		adminGroup.POST("/catalog/materials", r.params.CatalogHandler.CreateMaterial)
		adminGroup.PUT("/catalog/materials/:id", r.params.CatalogHandler.UpdateMaterial)
		adminGroup.DELETE("/catalog/materials/:id", r.params.CatalogHandler.DeleteMaterial)
		adminGroup.POST("/catalog/products", r.params.CatalogHandler.CreateProduct)
		adminGroup.PUT("/catalog/products/:id", r.params.CatalogHandler.UpdateProduct)
		adminGroup.DELETE("/catalog/products/:id", r.params.CatalogHandler.DeleteProduct)
		adminGroup.POST("/catalog/products/:id/images", r.params.CatalogHandler.AddProductImage)
		adminGroup.PUT("/catalog/products/:id/images/:imageID/primary", r.params.CatalogHandler.SetPrimaryProductImage)
		adminGroup.DELETE("/catalog/products/:id/images/:imageID", r.params.CatalogHandler.RemoveProductImage)
		adminGroup.PUT("/catalog/products/:id/images/order", r.params.CatalogHandler.ReorderProductImages)
		adminGroup.PUT("/catalog/products/:id/specifications", r.params.CatalogHandler.ReplaceSpecifications)
		adminGroup.POST("/catalog/services", r.params.CatalogHandler.CreateService)
		adminGroup.PUT("/catalog/services/:id", r.params.CatalogHandler.UpdateService)
		adminGroup.DELETE("/catalog/services/:id", r.params.CatalogHandler.DeleteService)
		adminGroup.POST("/catalog/services/:id/images", r.params.CatalogHandler.AddServiceImage)
		adminGroup.PUT("/catalog/services/:id/images/:imageID/primary", r.params.CatalogHandler.SetPrimaryServiceImage)
		adminGroup.PUT("/reviews/:id/approve", r.params.CatalogHandler.ApproveReview)

		adminGroup.POST("/quotations/:id/quote", r.params.QuotationHandler.SubmitQuote)
		adminGroup.PUT("/quotations/:id/status", r.params.QuotationHandler.ChangeStatus)
		adminGroup.PUT("/bookings/:id/status", r.params.BookingHandler.ChangeStatus)

		adminGroup.POST("/portfolio/categories", r.params.PortfolioHandler.CreateCategory)
		adminGroup.PUT("/portfolio/categories/:id", r.params.PortfolioHandler.UpdateCategory)
		adminGroup.DELETE("/portfolio/categories/:id", r.params.PortfolioHandler.DeleteCategory)
		adminGroup.POST("/portfolio/projects", r.params.PortfolioHandler.CreateProject)
		adminGroup.PUT("/portfolio/projects/:id", r.params.PortfolioHandler.UpdateProject)
		adminGroup.DELETE("/portfolio/projects/:id", r.params.PortfolioHandler.DeleteProject)
		adminGroup.POST("/portfolio/projects/:id/images", r.params.PortfolioHandler.AddProjectImage)
		adminGroup.PUT("/portfolio/projects/:id/images/:imageID/primary", r.params.PortfolioHandler.SetPrimaryProjectImage)
		adminGroup.DELETE("/portfolio/projects/:id/images/:imageID", r.params.PortfolioHandler.RemoveProjectImage)

		// Reads stay on the staff tier; the use cases limit non-admin staff
		// to projects they are assigned to and to their own HR records.
		adminGroup.GET("/projects", r.params.ProjectHandler.ListProjects)
		adminGroup.GET("/projects/:id", r.params.ProjectHandler.GetProject)
		adminGroup.GET("/projects/:id/budget", r.params.ProjectHandler.BudgetSummary)
		adminGroup.GET("/hr/staff/:id/attendance", r.params.HRHandler.ListAttendance)
		adminGroup.GET("/hr/staff/:id/payrolls", r.params.HRHandler.ListPayrolls)
	}

	// Admin-only surface
	superGroup := e.Group("/admin", auth.Authenticate, auth.RequireAdmin)
	{
		superGroup.GET("/users", r.params.AdminUserHandler.ListUsers)
		superGroup.GET("/users/stats", r.params.AdminUserHandler.UserStats)
		superGroup.GET("/users/:id", r.params.AdminUserHandler.GetUser)
		superGroup.PUT("/users/:id", r.params.AdminUserHandler.UpdateUser)
		superGroup.PUT("/users/:id/role", r.params.AdminUserHandler.ChangeRole)
		superGroup.PUT("/users/:id/active", r.params.AdminUserHandler.SetActive)
		superGroup.POST("/users/bulk", r.params.AdminUserHandler.BulkAction)

		superGroup.DELETE("/quotations/:id", r.params.QuotationHandler.DeleteQuotation)

		superGroup.POST("/hr/staff", r.params.HRHandler.CreateStaffProfile)
		superGroup.GET("/hr/staff", r.params.HRHandler.ListStaffProfiles)
		superGroup.GET("/hr/staff/:id", r.params.HRHandler.GetStaffProfile)
		superGroup.PUT("/hr/staff/:id", r.params.HRHandler.UpdateStaffProfile)
		superGroup.DELETE("/hr/staff/:id", r.params.HRHandler.DeactivateStaffProfile)
		superGroup.POST("/hr/attendance", r.params.HRHandler.RecordAttendance)
		superGroup.POST("/hr/payrolls", r.params.HRHandler.GeneratePayroll)
		superGroup.PUT("/hr/payrolls/:id/paid", r.params.HRHandler.MarkPayrollPaid)

		superGroup.POST("/projects", r.params.ProjectHandler.CreateProject)
		superGroup.PUT("/projects/:id", r.params.ProjectHandler.UpdateProject)
		superGroup.DELETE("/projects/:id", r.params.ProjectHandler.DeleteProject)
		superGroup.POST("/projects/:id/assignments", r.params.ProjectHandler.AssignStaff)
		superGroup.DELETE("/assignments/:id", r.params.ProjectHandler.RemoveAssignment)
		superGroup.PUT("/assignments/:id/rating", r.params.ProjectHandler.RateAssignment)
		superGroup.POST("/assignments/:id/payments", r.params.ProjectHandler.RecordPayment)
		superGroup.PUT("/payments/:id/confirm", r.params.ProjectHandler.ConfirmPayment)
	}
}
