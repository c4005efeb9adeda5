package user

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"campusmart-be/internal/apperr"
	"campusmart-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
}

type service struct {
	repo        Repository
	emailDomain string
	emailRe     *regexp.Regexp
}

func NewService(repo Repository, emailDomain string) Service {
	pattern := `@` + regexp.QuoteMeta(emailDomain) + `$`
	return &service{
		repo:        repo,
		emailDomain: emailDomain,
		emailRe:     regexp.MustCompile(`(?i)` + pattern),
	}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (User, error) {
	log := logger.FromCtx(ctx)

	input.Email = strings.TrimSpace(input.Email)
	if !s.emailRe.MatchString(input.Email) {
		return User{}, fmt.Errorf("email must belong to %s: %w", s.emailDomain, apperr.ErrInvalidState)
	}
	if input.FirstName == "" || input.LastName == "" || input.Password == "" {
		return User{}, fmt.Errorf("missing required fields: %w", apperr.ErrInvalidState)
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return User{}, err
	}

	u, err := s.repo.Create(ctx, input, hashed)
	if err != nil {
		log.Error("failed to create user", zap.String("email", input.Email), zap.Error(err))
		return User{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", u.ID),
		zap.String("email", u.Email),
	)

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Email)
	return token, u, err
}

func (s *service) UpdateProfile(ctx context.Context, userID string, params UpdateProfileParams) (User, error) {
	if params.Email != nil && !s.emailRe.MatchString(*params.Email) {
		return User{}, fmt.Errorf("email must belong to %s: %w", s.emailDomain, apperr.ErrInvalidState)
	}
	return s.repo.UpdateProfile(ctx, userID, params)
}

func (s *service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.FindByID(ctx, id)
}
