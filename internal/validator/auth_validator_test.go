package validator_test

import (
	"context"
	"net/http"
	"testing"

	"foodorder/internal/domain/model"
	"foodorder/internal/repository"
	"foodorder/internal/usecase"
	auth "foodorder/internal/usecase/auth_usecase"
	"foodorder/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userRepoMock struct{ mock.Mock }

func (m *userRepoMock) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *userRepoMock) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *userRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func requireBadRequest(t *testing.T, err error, msg string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "not an HTTPError: %v", err)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, msg, he.Message)
}

func TestAuthValidator_ValidateRegister(t *testing.T) {
	ctx := context.Background()
	users := &userRepoMock{}
	v := validator.NewAuthValidator(users)

	err := v.ValidateRegister(ctx, auth.RegisterUserInput{Email: "a@example.com", Password: "password123"})
	requireBadRequest(t, err, "name, email and password are required")

	err = v.ValidateRegister(ctx, auth.RegisterUserInput{Name: "A", Email: "not-an-email", Password: "password123"})
	requireBadRequest(t, err, "Invalid email format")

	err = v.ValidateRegister(ctx, auth.RegisterUserInput{Name: "A", Email: "a@example.com", Password: "short"})
	requireBadRequest(t, err, "Password must be at least 8 characters")

	users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestAuthValidator_ValidateRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := &userRepoMock{}
	v := validator.NewAuthValidator(users)

	users.On("FindByEmail", ctx, "a@example.com").Return(&model.User{ID: 1}, nil).Once()

	err := v.ValidateRegister(ctx, auth.RegisterUserInput{Name: "A", Email: "a@example.com", Password: "password123"})
	requireBadRequest(t, err, "Email already exists")
}

func TestAuthValidator_ValidateRegister_OK(t *testing.T) {
	ctx := context.Background()
	users := &userRepoMock{}
	v := validator.NewAuthValidator(users)

	users.On("FindByEmail", ctx, "a@example.com").Return(nil, repository.ErrNotFound).Once()

	err := v.ValidateRegister(ctx, auth.RegisterUserInput{Name: "A", Email: "a@example.com", Password: "password123"})
	assert.NoError(t, err)
}

func TestAuthValidator_ValidateLogin(t *testing.T) {
	v := validator.NewAuthValidator(&userRepoMock{})

	err := v.ValidateLogin(context.Background(), "", "x")
	requireBadRequest(t, err, "email and password are required")

	assert.NoError(t, v.ValidateLogin(context.Background(), "a@example.com", "x"))
}
