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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// projectService implements the ProjectUsecase interface.
type projectService struct {
	txManager   repository.TransactionManager
	projectRepo repository.ProjectRepository
	staffRepo   repository.StaffRepository
	clock       service.Clock
	logger      *slog.Logger
}

// ProjectServiceParams holds dependencies for projectService, injected by Fx.
type ProjectServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProjectRepo repository.ProjectRepository
	StaffRepo   repository.StaffRepository
	Clock       service.Clock
	Logger      *slog.Logger
}

// NewProjectService is the constructor for projectService.
func NewProjectService(params ProjectServiceParams) usecase.ProjectUsecase {
	return &projectService{
		txManager:   params.TxManager,
		projectRepo: params.ProjectRepo,
		staffRepo:   params.StaffRepo,
		clock:       params.Clock,
		logger:      params.Logger,
	}
}

func (srv *projectService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *projectService) CreateProject(ctx context.Context, actor policy.Actor, input *usecase.ProjectInput) (*entity.Project, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("title is required")
	}
	status := input.Status
	if status == "" {
		status = entity.ProjectPlanning
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown project status: " + string(status))
	}
	srv.log(ctx).Info("Creating project", "title", input.Title)

	now := srv.clock.Now()
	project := &entity.Project{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		ClientName:  input.ClientName,
		StartDate:   input.StartDate,
		Deadline:    input.Deadline,
		Status:      status,
		TotalBudget: input.TotalBudget,
		IsPrivate:   boolOr(input.IsPrivate, false),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return errors.Wrap(repoFactory.ProjectRepo().CreateProject(ctx, project), "failed to create project")
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (srv *projectService) GetProject(ctx context.Context, actor policy.Actor, id uuid.UUID) (*entity.Project, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}

	project, err := srv.findProject(ctx, srv.projectRepo, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !srv.assignedTo(ctx, actor, project) {
		// Unassigned staff cannot tell private projects exist.
		return nil, domainerrors.ErrNotFound
	}

	return project, nil
}

func (srv *projectService) ListProjects(ctx context.Context, actor policy.Actor, status entity.ProjectStatus) ([]*entity.Project, error) {
	if err := policy.RequireStaff(actor); err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown project status: " + string(status))
	}

	projects, err := srv.projectRepo.ListProjects(ctx, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}
	if actor.IsAdmin() {
		return projects, nil
	}

	// Staff see only the projects they are assigned to.
	scoped := make([]*entity.Project, 0, len(projects))
	for _, project := range projects {
		if srv.assignedTo(ctx, actor, project) {
			scoped = append(scoped, project)
		}
	}

	return scoped, nil
}

func (srv *projectService) UpdateProject(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.ProjectInput) (*entity.Project, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var project *entity.Project
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		projectRepo := repoFactory.ProjectRepo()

		found, err := srv.findProject(ctx, projectRepo, id)
		if err != nil {
			return err
		}

		if input.Title != "" {
			found.Title = input.Title
		}
		found.Description = input.Description
		found.ClientName = input.ClientName
		if !input.StartDate.IsZero() {
			found.StartDate = input.StartDate
		}
		if !input.Deadline.IsZero() {
			found.Deadline = input.Deadline
		}
		if input.Status != "" {
			if !input.Status.IsValid() {
				return domainerrors.ErrValidationFailed.WithDetails("unknown project status: " + string(input.Status))
			}
			found.Status = input.Status
		}
		if !input.TotalBudget.IsZero() {
			found.TotalBudget = input.TotalBudget
		}
		found.IsPrivate = boolOr(input.IsPrivate, found.IsPrivate)
		found.UpdatedAt = srv.clock.Now()

		if err := projectRepo.UpdateProject(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update project")
		}
		project = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (srv *projectService) DeleteProject(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}
	srv.log(ctx).Info("Deleting project", "projectID", id)

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		projectRepo := repoFactory.ProjectRepo()

		if _, err := srv.findProject(ctx, projectRepo, id); err != nil {
			return err
		}

		return errors.Wrap(projectRepo.DeleteProject(ctx, id), "failed to delete project")
	})
}

func (srv *projectService) AssignStaff(ctx context.Context, actor policy.Actor, projectID uuid.UUID, input *usecase.AssignmentInput) (*entity.ProjectAssignment, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	assignment := &entity.ProjectAssignment{
		ID:            uuid.New(),
		ProjectID:     projectID,
		StaffID:       input.StaffID,
		RoleInProject: input.RoleInProject,
		AssignedAt:    srv.clock.Now(),
		AgreedPayment: input.AgreedPayment,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := srv.findProject(ctx, repoFactory.ProjectRepo(), projectID); err != nil {
			return err
		}

		if _, err := repoFactory.StaffRepo().FindProfileByID(ctx, input.StaffID); err != nil {
			if errors.Is(err, repository.ErrStaffProfileNotFound) {
				return domainerrors.ErrStaffProfileNotFound
			}

			return errors.Wrap(err, "failed to find staff profile")
		}

		if err := repoFactory.ProjectRepo().CreateAssignment(ctx, assignment); err != nil {
			if errors.Is(err, repository.ErrDuplicateAssignment) {
				return domainerrors.ErrConflict.WithDetails("staff member is already assigned to this project")
			}

			return errors.Wrap(err, "failed to create assignment")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

func (srv *projectService) RemoveAssignment(ctx context.Context, actor policy.Actor, assignmentID uuid.UUID) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		projectRepo := repoFactory.ProjectRepo()

		if _, err := srv.findAssignment(ctx, projectRepo, assignmentID); err != nil {
			return err
		}

		return errors.Wrap(projectRepo.RemoveAssignment(ctx, assignmentID), "failed to remove assignment")
	})
}

func (srv *projectService) RateAssignment(ctx context.Context, actor policy.Actor, assignmentID uuid.UUID, input *usecase.RatingInput) (*entity.ProjectAssignment, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var assignment *entity.ProjectAssignment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		projectRepo := repoFactory.ProjectRepo()

		found, err := srv.findAssignment(ctx, projectRepo, assignmentID)
		if err != nil {
			return err
		}

		rating := input.Rating
		found.PerformanceRating = &rating
		found.PerformanceNotes = input.Notes
		if !found.ValidRating() {
			return domainerrors.ErrValidationFailed.WithDetails("performance rating must be between 1 and 10")
		}

		if err := projectRepo.UpdateAssignment(ctx, found); err != nil {
			return errors.Wrap(err, "failed to update assignment")
		}
		assignment = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

func (srv *projectService) RecordPayment(ctx context.Context, actor policy.Actor, assignmentID uuid.UUID, input *usecase.PaymentInput) (*entity.ProjectPayment, error) {
	if err := policy.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("payment amount must be positive")
	}

	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = srv.clock.Now()
	}
	payment := &entity.ProjectPayment{
		ID:           uuid.New(),
		AssignmentID: assignmentID,
		Amount:       input.Amount,
		PaymentDate:  paymentDate,
		Description:  input.Description,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		projectRepo := repoFactory.ProjectRepo()

		if _, err := srv.findAssignment(ctx, projectRepo, assignmentID); err != nil {
			return err
		}

		return errors.Wrap(projectRepo.CreatePayment(ctx, payment), "failed to create payment")
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

func (srv *projectService) ConfirmPayment(ctx context.Context, actor policy.Actor, paymentID uuid.UUID) error {
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}

	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		projectRepo := repoFactory.ProjectRepo()

		payment, err := projectRepo.FindPaymentByID(ctx, paymentID)
		if err != nil {
			if errors.Is(err, repository.ErrPaymentNotFound) {
				return domainerrors.ErrNotFound
			}

			return errors.Wrap(err, "failed to find payment")
		}

		payment.IsConfirmed = true

		return errors.Wrap(projectRepo.UpdatePayment(ctx, payment), "failed to update payment")
	})
}

// --- helpers ---

// BudgetSummary reports money committed and disbursed against the budget.
// Remaining is the budget minus agreed commitments, not minus disbursements.
func (srv *projectService) BudgetSummary(ctx context.Context, actor policy.Actor, projectID uuid.UUID) (*usecase.ProjectBudgetSummary, error) {
	project, err := srv.GetProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}

	agreed := decimal.Zero
	paid := decimal.Zero
	for _, assignment := range project.Assignments {
		if assignment.AgreedPayment != nil {
			agreed = agreed.Add(*assignment.AgreedPayment)
		}
		paid = paid.Add(assignment.PaidTotal())
	}

	return &usecase.ProjectBudgetSummary{
		ProjectID:   project.ID,
		TotalBudget: project.TotalBudget,
		AgreedTotal: agreed,
		PaidTotal:   paid,
		Remaining:   project.TotalBudget.Sub(agreed),
	}, nil
}

func (srv *projectService) findProject(ctx context.Context, projectRepo repository.ProjectRepository, id uuid.UUID) (*entity.Project, error) {
	project, err := projectRepo.FindProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, domainerrors.ErrProjectNotFound
		}

		return nil, errors.Wrap(err, "failed to find project")
	}

	return project, nil
}

func (srv *projectService) findAssignment(ctx context.Context, projectRepo repository.ProjectRepository, id uuid.UUID) (*entity.ProjectAssignment, error) {
	assignment, err := projectRepo.FindAssignmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return nil, domainerrors.ErrNotFound.WithDetails("project assignment not found")
		}

		return nil, errors.Wrap(err, "failed to find assignment")
	}

	return assignment, nil
}

// assignedTo reports whether the actor's staff profile appears on the
// project's assignment list.
func (srv *projectService) assignedTo(ctx context.Context, actor policy.Actor, project *entity.Project) bool {
	profile, err := srv.staffRepo.FindProfileByUserID(ctx, actor.ID)
	if err != nil {
		return false
	}
	for _, assignment := range project.Assignments {
		if assignment.StaffID == profile.ID {
			return true
		}
	}

	return false
}
