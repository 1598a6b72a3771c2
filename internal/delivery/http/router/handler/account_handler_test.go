package handler

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"forge/internal/delivery/http/middleware"
	"forge/internal/domain/entity"
	domainerrors "forge/internal/domain/errors"
	"forge/internal/domain/policy"
	"forge/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccountUsecase stubs the account use case with per-method hooks.
type fakeAccountUsecase struct {
	registerFn   func(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error)
	getProfileFn func(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

func (f *fakeAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	return f.registerFn(ctx, input)
}

func (f *fakeAccountUsecase) Login(context.Context, *usecase.LoginInput) (*usecase.LoginOutput, error) {
	panic("not expected")
}

func (f *fakeAccountUsecase) RefreshToken(context.Context, string) (*usecase.TokenPair, error) {
	panic("not expected")
}

func (f *fakeAccountUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return f.getProfileFn(ctx, userID)
}

func (f *fakeAccountUsecase) UpdateProfile(context.Context, uuid.UUID, *usecase.UpdateProfileInput) (*entity.User, error) {
	panic("not expected")
}

func (f *fakeAccountUsecase) ChangePassword(context.Context, uuid.UUID, *usecase.ChangePasswordInput) error {
	panic("not expected")
}

func (f *fakeAccountUsecase) ListAddresses(context.Context, uuid.UUID) ([]*entity.Address, error) {
	panic("not expected")
}

func (f *fakeAccountUsecase) CreateAddress(context.Context, uuid.UUID, *usecase.AddressInput) (*entity.Address, error) {
	panic("not expected")
}

func (f *fakeAccountUsecase) UpdateAddress(context.Context, uuid.UUID, uuid.UUID, *usecase.AddressInput) (*entity.Address, error) {
	panic("not expected")
}

func (f *fakeAccountUsecase) DeleteAddress(context.Context, uuid.UUID, uuid.UUID) error {
	panic("not expected")
}

func (f *fakeAccountUsecase) SetDefaultAddress(context.Context, uuid.UUID, uuid.UUID, entity.AddressFlag) error {
	panic("not expected")
}

func TestAccountHandler_Register(t *testing.T) {
	fake := &fakeAccountUsecase{
		registerFn: func(_ context.Context, input *usecase.RegisterInput) (*entity.User, error) {
			require.Equal(t, "carpenter", input.Username)

			return &entity.User{ID: uuid.New(), Username: input.Username, Email: input.Email}, nil
		},
	}
	handler := NewAccountHandler(fake, slog.Default())

	e := echo.New()
	body := `{"username":"carpenter","email":"c@example.com","password":"hunter22"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "carpenter")
	assert.Contains(t, rec.Body.String(), "request_id")
}

func TestAccountHandler_Register_BadPayload(t *testing.T) {
	handler := NewAccountHandler(&fakeAccountUsecase{}, slog.Default())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Register(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestAccountHandler_GetProfile_UsesActorID(t *testing.T) {
	userID := uuid.New()
	fake := &fakeAccountUsecase{
		getProfileFn: func(_ context.Context, id uuid.UUID) (*entity.User, error) {
			require.Equal(t, userID, id)

			return &entity.User{ID: id, Username: "carpenter"}, nil
		},
	}
	handler := NewAccountHandler(fake, slog.Default())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/account/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.KeyActor, policy.Actor{ID: userID, IsAuthenticated: true})

	err := handler.GetProfile(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_GetProfile_PropagatesAppError(t *testing.T) {
	fake := &fakeAccountUsecase{
		getProfileFn: func(context.Context, uuid.UUID) (*entity.User, error) {
			return nil, domainerrors.ErrUserNotFound
		},
	}
	handler := NewAccountHandler(fake, slog.Default())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/account/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.KeyActor, policy.Actor{ID: uuid.New(), IsAuthenticated: true})

	err := handler.GetProfile(c)

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
}
