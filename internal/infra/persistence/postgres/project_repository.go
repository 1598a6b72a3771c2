package postgres

import (
	"context"

	"forge/internal/domain/entity"
	"forge/internal/domain/repository"
	"forge/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// projectRepository implements the repository.ProjectRepository interface using GORM.
type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository is the constructor for projectRepository.
func NewProjectRepository(db *gorm.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

// CreateProject persists a new project.
func (repo *projectRepository) CreateProject(ctx context.Context, project *entity.Project) error {
	projectM := fromProjectDomain(project)

	if err := repo.db.WithContext(ctx).Omit("Assignments").Create(projectM).Error; err != nil {
		return errors.Wrap(err, "failed to create project")
	}

	project.CreatedAt = projectM.CreatedAt
	project.UpdatedAt = projectM.UpdatedAt

	return nil
}

// FindProjectByID retrieves a project with its assignments and payments.
func (repo *projectRepository) FindProjectByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var projectM model.ProjectModel
	err := repo.db.WithContext(ctx).
		Preload("Assignments.Payments").
		First(&projectM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProjectNotFound
		}

		return nil, errors.Wrap(err, "failed to find project by id")
	}

	return toProjectDomain(&projectM), nil
}

// ListProjects retrieves projects, optionally filtered by status, newest first.
func (repo *projectRepository) ListProjects(ctx context.Context, status entity.ProjectStatus) ([]*entity.Project, error) {
	query := repo.db.WithContext(ctx).Model(&model.ProjectModel{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var projectMs []*model.ProjectModel
	if err := query.Order("created_at DESC").Find(&projectMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}

	projects := make([]*entity.Project, 0, len(projectMs))
	for _, projectM := range projectMs {
		projects = append(projects, toProjectDomain(projectM))
	}

	return projects, nil
}

// UpdateProject updates an existing project record.
func (repo *projectRepository) UpdateProject(ctx context.Context, project *entity.Project) error {
	projectM := fromProjectDomain(project)

	result := repo.db.WithContext(ctx).
		Model(&model.ProjectModel{}).
		Where("id = ?", project.ID).
		Select("*").
		Omit("id", "created_at", "Assignments").
		Updates(projectM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update project")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProjectNotFound
	}

	return nil
}

// DeleteProject removes a project by its ID.
// Assignments and their payments go with it through the cascade.
func (repo *projectRepository) DeleteProject(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProjectModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete project")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProjectNotFound
	}

	return nil
}

// CreateAssignment places a staff member on a project.
func (repo *projectRepository) CreateAssignment(ctx context.Context, assignment *entity.ProjectAssignment) error {
	assignmentM := fromProjectAssignmentDomain(assignment)

	if err := repo.db.WithContext(ctx).Omit("Payments").Create(assignmentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateAssignment
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProjectNotFound
		}

		return errors.Wrap(err, "failed to create project assignment")
	}

	return nil
}

// FindAssignmentByID retrieves an assignment with its payments.
func (repo *projectRepository) FindAssignmentByID(ctx context.Context, id uuid.UUID) (*entity.ProjectAssignment, error) {
	var assignmentM model.ProjectAssignmentModel
	err := repo.db.WithContext(ctx).
		Preload("Payments").
		First(&assignmentM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAssignmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find assignment by id")
	}

	return toProjectAssignmentDomain(&assignmentM), nil
}

// ListAssignmentsByStaff retrieves every assignment of a staff member.
func (repo *projectRepository) ListAssignmentsByStaff(ctx context.Context, staffID uuid.UUID) ([]*entity.ProjectAssignment, error) {
	var assignmentMs []*model.ProjectAssignmentModel
	err := repo.db.WithContext(ctx).
		Preload("Payments").
		Where("staff_id = ?", staffID).
		Order("assigned_at DESC").
		Find(&assignmentMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assignments by staff")
	}

	assignments := make([]*entity.ProjectAssignment, 0, len(assignmentMs))
	for _, assignmentM := range assignmentMs {
		assignments = append(assignments, toProjectAssignmentDomain(assignmentM))
	}

	return assignments, nil
}

// UpdateAssignment updates an existing assignment record.
func (repo *projectRepository) UpdateAssignment(ctx context.Context, assignment *entity.ProjectAssignment) error {
	assignmentM := fromProjectAssignmentDomain(assignment)

	result := repo.db.WithContext(ctx).
		Model(&model.ProjectAssignmentModel{}).
		Where("id = ?", assignment.ID).
		Select("*").
		Omit("id", "project_id", "staff_id", "Payments").
		Updates(assignmentM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update assignment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAssignmentNotFound
	}

	return nil
}

// RemoveAssignment takes a staff member off a project.
// Payment records on the assignment go with it through the cascade.
func (repo *projectRepository) RemoveAssignment(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProjectAssignmentModel{}, "id = ?", id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove assignment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAssignmentNotFound
	}

	return nil
}

// CreatePayment records a disbursement against an assignment.
func (repo *projectRepository) CreatePayment(ctx context.Context, payment *entity.ProjectPayment) error {
	paymentM := fromProjectPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAssignmentNotFound
		}

		return errors.Wrap(err, "failed to create project payment")
	}

	return nil
}

// FindPaymentByID retrieves a payment record by its unique ID.
func (repo *projectRepository) FindPaymentByID(ctx context.Context, id uuid.UUID) (*entity.ProjectPayment, error) {
	var paymentM model.ProjectPaymentModel
	err := repo.db.WithContext(ctx).First(&paymentM, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment by id")
	}

	return toProjectPaymentDomain(&paymentM), nil
}

// UpdatePayment updates an existing payment record.
func (repo *projectRepository) UpdatePayment(ctx context.Context, payment *entity.ProjectPayment) error {
	paymentM := fromProjectPaymentDomain(payment)

	result := repo.db.WithContext(ctx).
		Model(&model.ProjectPaymentModel{}).
		Where("id = ?", payment.ID).
		Select("*").
		Omit("id", "assignment_id").
		Updates(paymentM)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update payment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPaymentNotFound
	}

	return nil
}

func toProjectDomain(projectM *model.ProjectModel) *entity.Project {
	project := &entity.Project{
		ID:          projectM.ID,
		Title:       projectM.Title,
		Description: projectM.Description,
		ClientName:  projectM.ClientName,
		StartDate:   projectM.StartDate,
		Deadline:    projectM.Deadline,
		Status:      entity.ProjectStatus(projectM.Status),
		TotalBudget: projectM.TotalBudget,
		IsPrivate:   projectM.IsPrivate,
		CreatedAt:   projectM.CreatedAt,
		UpdatedAt:   projectM.UpdatedAt,
	}

	for _, assignmentM := range projectM.Assignments {
		project.Assignments = append(project.Assignments, toProjectAssignmentDomain(assignmentM))
	}

	return project
}

func fromProjectDomain(project *entity.Project) *model.ProjectModel {
	return &model.ProjectModel{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		ClientName:  project.ClientName,
		StartDate:   project.StartDate,
		Deadline:    project.Deadline,
		Status:      string(project.Status),
		TotalBudget: project.TotalBudget,
		IsPrivate:   project.IsPrivate,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

func toProjectAssignmentDomain(assignmentM *model.ProjectAssignmentModel) *entity.ProjectAssignment {
	assignment := &entity.ProjectAssignment{
		ID:                assignmentM.ID,
		ProjectID:         assignmentM.ProjectID,
		StaffID:           assignmentM.StaffID,
		RoleInProject:     assignmentM.RoleInProject,
		AssignedAt:        assignmentM.AssignedAt,
		AgreedPayment:     assignmentM.AgreedPayment,
		PerformanceRating: assignmentM.PerformanceRating,
		PerformanceNotes:  assignmentM.PerformanceNotes,
	}

	for _, paymentM := range assignmentM.Payments {
		assignment.Payments = append(assignment.Payments, toProjectPaymentDomain(paymentM))
	}

	return assignment
}

func fromProjectAssignmentDomain(assignment *entity.ProjectAssignment) *model.ProjectAssignmentModel {
	return &model.ProjectAssignmentModel{
		ID:                assignment.ID,
		ProjectID:         assignment.ProjectID,
		StaffID:           assignment.StaffID,
		RoleInProject:     assignment.RoleInProject,
		AssignedAt:        assignment.AssignedAt,
		AgreedPayment:     assignment.AgreedPayment,
		PerformanceRating: assignment.PerformanceRating,
		PerformanceNotes:  assignment.PerformanceNotes,
	}
}

func toProjectPaymentDomain(paymentM *model.ProjectPaymentModel) *entity.ProjectPayment {
	return &entity.ProjectPayment{
		ID:           paymentM.ID,
		AssignmentID: paymentM.AssignmentID,
		Amount:       paymentM.Amount,
		PaymentDate:  paymentM.PaymentDate,
		Description:  paymentM.Description,
		IsConfirmed:  paymentM.IsConfirmed,
	}
}

func fromProjectPaymentDomain(payment *entity.ProjectPayment) *model.ProjectPaymentModel {
	return &model.ProjectPaymentModel{
		ID:           payment.ID,
		AssignmentID: payment.AssignmentID,
		Amount:       payment.Amount,
		PaymentDate:  payment.PaymentDate,
		Description:  payment.Description,
		IsConfirmed:  payment.IsConfirmed,
	}
}
