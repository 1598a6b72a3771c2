package impl

import (
	"context"
	"testing"
	"time"

	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/policy"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type projectHarness struct {
	svc     usecase.ProjectUsecase
	factory *fakeRepoFactory
	clock   fixedClock
}

func newProjectHarness() *projectHarness {
	factory := newFakeFactory()
	clock := fixedClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	svc := NewProjectService(ProjectServiceParams{
		TxManager:   &fakeTxManager{factory: factory},
		ProjectRepo: factory.projects,
		StaffRepo:   factory.staff,
		Clock:       clock,
		Logger:      newDiscardLogger(),
	})

	return &projectHarness{svc: svc, factory: factory, clock: clock}
}

func (h *projectHarness) seedProfile(actor policy.Actor) *entity.StaffProfile {
	profile := &entity.StaffProfile{
		ID:        uuid.New(),
		UserID:    actor.ID,
		StaffType: entity.StaffTypeFullTime,
		IsActive:  true,
	}
	h.factory.staff.profiles[profile.ID] = profile

	return profile
}

func (h *projectHarness) seedProject(t *testing.T, title string) *entity.Project {
	t.Helper()

	project, err := h.svc.CreateProject(context.Background(), adminActor(), &usecase.ProjectInput{
		Title:       title,
		ClientName:  "Himal Builders",
		StartDate:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Deadline:    time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		TotalBudget: decimal.NewFromInt(450000),
	})
	require.NoError(t, err)

	return project
}

func TestProjectService_CreateProject(t *testing.T) {
	t.Parallel()

	h := newProjectHarness()
	ctx := context.Background()

	project := h.seedProject(t, "Hotel lobby fit-out")
	assert.Equal(t, entity.ProjectPlanning, project.Status)
	assert.False(t, project.IsPrivate)

	_, err := h.svc.CreateProject(ctx, adminActor(), &usecase.ProjectInput{Title: ""})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())

	_, err = h.svc.CreateProject(ctx, adminActor(), &usecase.ProjectInput{Title: "x", Status: "archived"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())

	_, err = h.svc.CreateProject(ctx, staffActor(), &usecase.ProjectInput{Title: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestProjectService_StaffVisibility(t *testing.T) {
	t.Parallel()

	h := newProjectHarness()
	ctx := context.Background()
	admin := adminActor()
	member := staffActor()
	profile := h.seedProfile(member)

	assigned := h.seedProject(t, "Hotel lobby fit-out")
	hidden := h.seedProject(t, "Residence kitchen")

	_, err := h.svc.AssignStaff(ctx, admin, assigned.ID, &usecase.AssignmentInput{
		StaffID:       profile.ID,
		RoleInProject: "Lead carpenter",
	})
	require.NoError(t, err)

	got, err := h.svc.GetProject(ctx, member, assigned.ID)
	require.NoError(t, err)
	assert.Equal(t, assigned.ID, got.ID)

	// Unassigned staff cannot tell the project exists.
	_, err = h.svc.GetProject(ctx, member, hidden.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	mine, err := h.svc.ListProjects(ctx, member, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, assigned.ID, mine[0].ID)

	all, err := h.svc.ListProjects(ctx, admin, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProjectService_AssignStaff(t *testing.T) {
	t.Parallel()

	h := newProjectHarness()
	ctx := context.Background()
	admin := adminActor()
	profile := h.seedProfile(staffActor())
	project := h.seedProject(t, "Hotel lobby fit-out")

	payment := decimal.NewFromInt(80000)
	assignment, err := h.svc.AssignStaff(ctx, admin, project.ID, &usecase.AssignmentInput{
		StaffID:       profile.ID,
		RoleInProject: "Lead carpenter",
		AgreedPayment: &payment,
	})
	require.NoError(t, err)
	assert.True(t, assignment.AssignedAt.Equal(h.clock.now))

	// Assigning the same staff member twice conflicts.
	_, err = h.svc.AssignStaff(ctx, admin, project.ID, &usecase.AssignmentInput{StaffID: profile.ID})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.ErrorCode())

	_, err = h.svc.AssignStaff(ctx, admin, project.ID, &usecase.AssignmentInput{StaffID: uuid.New()})
	assert.ErrorIs(t, err, domainerrors.ErrStaffProfileNotFound)

	_, err = h.svc.AssignStaff(ctx, admin, uuid.New(), &usecase.AssignmentInput{StaffID: profile.ID})
	assert.ErrorIs(t, err, domainerrors.ErrProjectNotFound)

	require.NoError(t, h.svc.RemoveAssignment(ctx, admin, assignment.ID))
	_, err = h.svc.AssignStaff(ctx, admin, project.ID, &usecase.AssignmentInput{StaffID: profile.ID})
	assert.NoError(t, err)
}

func TestProjectService_RateAssignment(t *testing.T) {
	t.Parallel()

	h := newProjectHarness()
	ctx := context.Background()
	admin := adminActor()
	profile := h.seedProfile(staffActor())
	project := h.seedProject(t, "Hotel lobby fit-out")

	assignment, err := h.svc.AssignStaff(ctx, admin, project.ID, &usecase.AssignmentInput{StaffID: profile.ID})
	require.NoError(t, err)

	rated, err := h.svc.RateAssignment(ctx, admin, assignment.ID, &usecase.RatingInput{Rating: 8, Notes: "Solid finish work."})
	require.NoError(t, err)
	require.NotNil(t, rated.PerformanceRating)
	assert.Equal(t, 8, *rated.PerformanceRating)

	for _, rating := range []int{0, 11} {
		_, err = h.svc.RateAssignment(ctx, admin, assignment.ID, &usecase.RatingInput{Rating: rating})
		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr, "rating %d", rating)
		assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	}
}

func TestProjectService_Payments(t *testing.T) {
	t.Parallel()

	h := newProjectHarness()
	ctx := context.Background()
	admin := adminActor()
	profile := h.seedProfile(staffActor())
	project := h.seedProject(t, "Hotel lobby fit-out")

	assignment, err := h.svc.AssignStaff(ctx, admin, project.ID, &usecase.AssignmentInput{StaffID: profile.ID})
	require.NoError(t, err)

	payment, err := h.svc.RecordPayment(ctx, admin, assignment.ID, &usecase.PaymentInput{
		Amount:      decimal.NewFromInt(40000),
		Description: "First installment",
	})
	require.NoError(t, err)
	assert.False(t, payment.IsConfirmed)
	assert.True(t, payment.PaymentDate.Equal(h.clock.now))

	_, err = h.svc.RecordPayment(ctx, admin, assignment.ID, &usecase.PaymentInput{Amount: decimal.Zero})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())

	require.NoError(t, h.svc.ConfirmPayment(ctx, admin, payment.ID))
	assert.True(t, h.factory.projects.payments[payment.ID].IsConfirmed)

	err = h.svc.ConfirmPayment(ctx, admin, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProjectService_BudgetSummary(t *testing.T) {
	t.Parallel()

	h := newProjectHarness()
	ctx := context.Background()
	admin := adminActor()
	staff := staffActor()
	profile := h.seedProfile(staff)
	project := h.seedProject(t, "Warehouse racking")

	agreed := decimal.NewFromInt(120000)
	assignment, err := h.svc.AssignStaff(ctx, admin, project.ID, &usecase.AssignmentInput{
		StaffID:       profile.ID,
		AgreedPayment: &agreed,
	})
	require.NoError(t, err)

	payment, err := h.svc.RecordPayment(ctx, admin, assignment.ID, &usecase.PaymentInput{
		Amount:      decimal.NewFromInt(40000),
		Description: "Advance",
	})
	require.NoError(t, err)

	// Unconfirmed payments do not count as disbursed.
	summary, err := h.svc.BudgetSummary(ctx, admin, project.ID)
	require.NoError(t, err)
	assert.True(t, summary.PaidTotal.IsZero())
	assert.True(t, summary.AgreedTotal.Equal(agreed))

	require.NoError(t, h.svc.ConfirmPayment(ctx, admin, payment.ID))

	summary, err = h.svc.BudgetSummary(ctx, admin, project.ID)
	require.NoError(t, err)
	assert.True(t, summary.PaidTotal.Equal(decimal.NewFromInt(40000)))
	assert.True(t, summary.Remaining.Equal(decimal.NewFromInt(330000)))

	// Assigned staff may read the summary; unassigned staff cannot tell
	// the project exists.
	_, err = h.svc.BudgetSummary(ctx, staff, project.ID)
	require.NoError(t, err)
	_, err = h.svc.BudgetSummary(ctx, staffActor(), project.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
