package auth

import (
	"testing"

	"payflow/internal/models"
	"payflow/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) Update(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(id uint) error {
	return m.Called(id).Error(0)
}

func TestRegister(t *testing.T) {
	t.Run("creates account with hashed password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", "buyer@example.com").Return(nil, repositories.ErrUserNotFound)
		repo.On("Create", mock.Anything).Return(nil)

		svc := NewService(repo)
		user, err := svc.Register("buyer@example.com", "Test Buyer", "longenough")
		require.NoError(t, err)

		assert.Equal(t, "buyer@example.com", user.Email)
		assert.NotEqual(t, "longenough", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("longenough")))
		assert.Equal(t, 1, user.TokenVersion)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", "buyer@example.com").Return(&models.User{Email: "buyer@example.com"}, nil)

		svc := NewService(repo)
		_, err := svc.Register("buyer@example.com", "Test Buyer", "longenough")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("short password rejected", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", "buyer@example.com").Return(nil, repositories.ErrUserNotFound)

		svc := NewService(repo)
		_, err := svc.Register("buyer@example.com", "Test Buyer", "short")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hashed, err := bcrypt.GenerateFromPassword([]byte("longenough"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &models.User{
		Email:        "buyer@example.com",
		Password:     string(hashed),
		TokenVersion: 1,
	}
	stored.ID = 7

	t.Run("valid credentials issue tokens", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", "buyer@example.com").Return(stored, nil)

		svc := NewService(repo)
		user, access, refresh, err := svc.Login("buyer@example.com", "longenough")
		require.NoError(t, err)

		assert.Equal(t, uint(7), user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", "buyer@example.com").Return(stored, nil)

		svc := NewService(repo)
		_, _, _, err := svc.Login("buyer@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown account", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", "nobody@example.com").Return(nil, repositories.ErrUserNotFound)

		svc := NewService(repo)
		_, _, _, err := svc.Login("nobody@example.com", "longenough")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogout(t *testing.T) {
	repo := new(MockUserRepo)
	repo.On("IncrementTokenVersion", uint(7)).Return(nil)

	svc := NewService(repo)
	assert.NoError(t, svc.Logout(7))
	repo.AssertCalled(t, "IncrementTokenVersion", uint(7))
}
