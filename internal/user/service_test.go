package user

import (
	"context"
	"errors"
	"testing"

	"campusmart-be/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, input RegisterInput, hashedPassword string) (User, error) {
	args := m.Called(ctx, input, hashedPassword)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (User, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "iiit.ac.in")

		input := RegisterInput{
			FirstName: "Alice",
			LastName:  "Kumar",
			Email:     "alice@iiit.ac.in",
			Password:  "s3cret",
		}

		repo.On("Create", ctx, input, mock.AnythingOfType("string")).
			Return(User{ID: "u1", Email: input.Email}, nil)

		u, err := svc.Register(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "u1", u.ID)
		repo.AssertExpectations(t)
	})

	t.Run("RejectsForeignDomain", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "iiit.ac.in")

		_, err := svc.Register(ctx, RegisterInput{
			FirstName: "Mallory",
			LastName:  "Intruder",
			Email:     "mallory@gmail.com",
			Password:  "pw",
		})
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("DomainMatchIsCaseInsensitive", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "iiit.ac.in")

		input := RegisterInput{
			FirstName: "Bob",
			LastName:  "Rao",
			Email:     "bob@IIIT.AC.IN",
			Password:  "pw",
		}
		repo.On("Create", ctx, input, mock.AnythingOfType("string")).
			Return(User{ID: "u2"}, nil)

		_, err := svc.Register(ctx, input)
		assert.NoError(t, err)
	})

	t.Run("MissingFields", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "iiit.ac.in")

		_, err := svc.Register(ctx, RegisterInput{Email: "x@iiit.ac.in"})
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "iiit.ac.in")

		repo.On("Create", ctx, mock.Anything, mock.Anything).
			Return(User{}, ErrEmailExists)

		_, err := svc.Register(ctx, RegisterInput{
			FirstName: "Alice",
			LastName:  "Kumar",
			Email:     "alice@iiit.ac.in",
			Password:  "pw",
		})
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "iiit.ac.in")

		repo.On("FindByEmail", ctx, "alice@iiit.ac.in").
			Return(User{ID: "u1", Email: "alice@iiit.ac.in", Password: hash}, nil)

		token, u, err := svc.Login(ctx, "alice@iiit.ac.in", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "u1", u.ID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "iiit.ac.in")

		repo.On("FindByEmail", ctx, "alice@iiit.ac.in").
			Return(User{ID: "u1", Password: hash}, nil)

		_, _, err := svc.Login(ctx, "alice@iiit.ac.in", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "iiit.ac.in")

		repo.On("FindByEmail", ctx, "ghost@iiit.ac.in").
			Return(User{}, errors.New("sql: no rows"))

		_, _, err := svc.Login(ctx, "ghost@iiit.ac.in", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("RejectsForeignEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "iiit.ac.in")

		bad := "alice@gmail.com"
		_, err := svc.UpdateProfile(ctx, "u1", UpdateProfileParams{Email: &bad})
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
		repo.AssertNotCalled(t, "UpdateProfile")
	})

	t.Run("PassesThrough", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, "iiit.ac.in")

		first := "Alicia"
		params := UpdateProfileParams{FirstName: &first}
		repo.On("UpdateProfile", ctx, "u1", params).
			Return(User{ID: "u1", FirstName: "Alicia"}, nil)

		u, err := svc.UpdateProfile(ctx, "u1", params)
		require.NoError(t, err)
		assert.Equal(t, "Alicia", u.FirstName)
	})
}

func TestUser_FullName(t *testing.T) {
	u := User{FirstName: "Alice", LastName: "Kumar"}
	assert.Equal(t, "Alice Kumar", u.FullName())
}
