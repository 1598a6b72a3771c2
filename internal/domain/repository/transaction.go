package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	// UserRepo returns a UserRepository bound to the current transaction.
	UserRepo() UserRepository

	// AddressRepo returns an AddressRepository bound to the current transaction.
	AddressRepo() AddressRepository

	// CategoryRepo returns a CategoryRepository bound to the current transaction.
	CategoryRepo() CategoryRepository

	// MaterialRepo returns a MaterialRepository bound to the current transaction.
	MaterialRepo() MaterialRepository

	// ProductRepo returns a ProductRepository bound to the current transaction.
	ProductRepo() ProductRepository

	// ReviewRepo returns a ReviewRepository bound to the current transaction.
	ReviewRepo() ReviewRepository

	// StoreServiceRepo returns a StoreServiceRepository bound to the current transaction.
	StoreServiceRepo() StoreServiceRepository

	// QuotationRepo returns a QuotationRepository bound to the current transaction.
	QuotationRepo() QuotationRepository

	// BookingRepo returns a BookingRepository bound to the current transaction.
	BookingRepo() BookingRepository

	// PortfolioRepo returns a PortfolioRepository bound to the current transaction.
	PortfolioRepo() PortfolioRepository

	// StaffRepo returns a StaffRepository bound to the current transaction.
	StaffRepo() StaffRepository

	// ProjectRepo returns a ProjectRepository bound to the current transaction.
	ProjectRepo() ProjectRepository
}
