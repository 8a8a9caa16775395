package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bootcamp-backend/internal/domains/user/model"
	"bootcamp-backend/internal/domains/user/repository"
	"bootcamp-backend/internal/infrastructure/email"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/auth"
	"bootcamp-backend/pkg/token"
)

const defaultBcryptCost = 12

// Config holds the service settings that come from the environment
type Config struct {
	ResetURLBase string
	BcryptCost   int
}

type userService struct {
	repo   repository.Repository
	tokens TokenIssuer
	resets ResetTokens
	mailer email.Sender
	cfg    Config
	now    func() time.Time
}

func NewService(repo repository.Repository, tokens TokenIssuer, resets ResetTokens, mailer email.Sender, cfg Config) Service {
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = defaultBcryptCost
	}
	return &userService{
		repo:   repo,
		tokens: tokens,
		resets: resets,
		mailer: mailer,
		cfg:    cfg,
		now:    time.Now,
	}
}

// =====================================================
// AUTH
// =====================================================

func (s *userService) Register(ctx context.Context, req model.RegisterRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperror.Validation("%s", err.Error())
	}

	u, err := s.newUser(req.Name, req.Email, req.Password, req.RoleOrDefault())
	if err != nil {
		return "", err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return "", mapRepoError(err, "")
	}

	log.Info().Str("user_id", u.ID.String()).Str("role", u.Role.String()).Msg("User registered")
	return s.issue(u)
}

func (s *userService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	if !req.Complete() {
		return "", apperror.Validation("Please provide an email and password")
	}

	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", apperror.Unauthorized("Invalid credentials")
		}
		return "", apperror.Internal(err)
	}

	// CompareHashAndPassword is constant-time
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return "", apperror.Unauthorized("Invalid credentials")
	}

	return s.issue(u)
}

func (s *userService) Me(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id.String())
	}
	return u, nil
}

func (s *userService) UpdateDetails(ctx context.Context, id uuid.UUID, req model.UpdateDetailsRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id.String())
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, mapRepoError(err, id.String())
	}
	return u, nil
}

func (s *userService) UpdatePassword(ctx context.Context, id uuid.UUID, req model.UpdatePasswordRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperror.Validation("%s", err.Error())
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", mapRepoError(err, id.String())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return "", apperror.Unauthorized("Password is incorrect")
	}

	hash, err := s.hashPassword(req.NewPassword)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return "", mapRepoError(err, id.String())
	}

	return s.issue(u)
}

func (s *userService) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return apperror.Validation("%s", err.Error())
	}

	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return apperror.NotFound("There is no user with that email")
		}
		return apperror.Internal(err)
	}

	rt, err := s.resets.Issue()
	if err != nil {
		return apperror.Internal(err)
	}
	if err := s.repo.SetResetToken(ctx, u.ID, &rt.Hash, &rt.ExpiresAt); err != nil {
		return apperror.Internal(err)
	}

	resetURL := strings.TrimRight(s.cfg.ResetURLBase, "/") + "/" + rt.Plain
	msg := email.Message{
		To:      u.Email,
		Subject: "Password reset token",
		Body: fmt.Sprintf(
			"You are receiving this email because you (or someone else) has requested the reset of a password. "+
				"Please make a PUT request to: \n\n%s", resetURL),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		// Roll back the reset fields
		if clearErr := s.repo.SetResetToken(ctx, u.ID, nil, nil); clearErr != nil {
			log.Error().Err(clearErr).Str("user_id", u.ID.String()).Msg("Failed to clear reset token")
		}
		return apperror.Upstream("Email could not be sent", err)
	}

	log.Info().Str("user_id", u.ID.String()).Msg("Password reset email sent")
	return nil
}

func (s *userService) ResetPassword(ctx context.Context, plainToken string, req model.ResetPasswordRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", apperror.Validation("%s", err.Error())
	}

	u, err := s.repo.GetByResetToken(ctx, token.HashResetToken(plainToken))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", apperror.Validation("Invalid token")
		}
		return "", apperror.Internal(err)
	}
	if u.ResetPasswordToken == nil || u.ResetPasswordExpire == nil ||
		!s.resets.Verify(plainToken, *u.ResetPasswordToken, *u.ResetPasswordExpire) {
		return "", apperror.Validation("Invalid token")
	}

	hash, err := s.hashPassword(req.Password)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return "", mapRepoError(err, u.ID.String())
	}
	u.ClearResetToken()

	return s.issue(u)
}

func (s *userService) LoadPrincipal(ctx context.Context, id uuid.UUID) (*auth.Principal, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, auth.ErrPrincipalNotFound
		}
		return nil, err
	}
	return u.Principal(), nil
}

// =====================================================
// ADMIN
// =====================================================

func (s *userService) ListUsers(ctx context.Context, params url.Values) (*query.Result, error) {
	return query.Run(ctx, s.repo.Collection(), model.Schema, params, query.Options{})
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id.String())
	}
	return u, nil
}

func (s *userService) CreateUser(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	role := auth.RoleUser
	if req.Role != "" {
		role = auth.Role(req.Role)
	}
	u, err := s.newUser(req.Name, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, mapRepoError(err, "")
	}
	return u, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id.String())
	}
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = auth.Role(*req.Role)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, mapRepoError(err, id.String())
	}
	return u, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, id.String())
	}
	return nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *userService) newUser(name, emailAddr, password string, role auth.Role) (*model.User, error) {
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}
	return &model.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(emailAddr),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}, nil
}

func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("hash password: %w", err))
	}
	return string(hash), nil
}

func (s *userService) issue(u *model.User) (string, error) {
	signed, err := s.tokens.Issue(u.ID.String())
	if err != nil {
		return "", apperror.Internal(err)
	}
	return signed, nil
}

func mapRepoError(err error, id string) error {
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return apperror.NotFound("User not found with id of %s", id)
	case errors.Is(err, model.ErrEmailAlreadyExists):
		return apperror.Wrap(apperror.KindValidation, "Duplicate field value entered", err)
	default:
		return apperror.Internal(err)
	}
}
