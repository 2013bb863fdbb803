package user

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/faizxmak/latilong/internal/utils/apperrors"
	"github.com/faizxmak/latilong/internal/utils/idgen"
)

const userIDPrefix = "usr"

// Service handles account registration, credential checks, and OAuth
// identity upserts.
type Service struct {
	users  Repository
	logger zerolog.Logger
}

// NewService wires the user service.
func NewService(users Repository, logger zerolog.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger.With().Str("component", "user-service").Logger(),
	}
}

// Register creates a password-backed account. A duplicate email is a
// conflict.
func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"email is required", nil, "")
	}
	if len(password) < 8 {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"password must be at least 8 characters", nil, "")
	}

	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeConflict,
			"an account with this email already exists", nil, "")
	} else if err != nil && !apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to check existing account", err, "")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeInternal,
			"failed to hash password", err, "")
	}

	publicID, err := idgen.GenerateSecureID(userIDPrefix, 16)
	if err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeInternal,
			"failed to generate user id", err, "")
	}

	u := &User{
		PublicID:     publicID,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Provider:     "local",
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to create account", err, "")
	}
	return u, nil
}

// Authenticate verifies email and password. A missing account and a wrong
// password produce the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	unauthorized := func() *apperrors.AppError {
		return apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeUnauthorized,
			"invalid email or password", nil, "")
	}

	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return nil, unauthorized()
		}
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to load account", err, "")
	}
	if u.PasswordHash == "" {
		return nil, unauthorized()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, unauthorized()
	}
	return u, nil
}

// GetByID loads an account by internal id.
func (s *Service) GetByID(ctx context.Context, id uint) (*User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeNotFound,
				"user not found", err, "")
		}
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to load user", err, "")
	}
	return u, nil
}

// EnsureOAuthUser creates or refreshes an account from an OAuth identity,
// keyed by email.
func (s *Service) EnsureOAuthUser(ctx context.Context, email, firstName, lastName, pictureURL, provider string) (*User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation,
			"oauth identity has no email", nil, "")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		existing.FirstName = firstOf(firstName, existing.FirstName)
		existing.LastName = firstOf(lastName, existing.LastName)
		existing.ProfileImageURL = firstOf(pictureURL, existing.ProfileImageURL)
		if uerr := s.users.Update(ctx, existing); uerr != nil {
			return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
				"failed to refresh oauth account", uerr, "")
		}
		return existing, nil
	}
	if err != nil && !apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to look up oauth account", err, "")
	}

	publicID, err := idgen.GenerateSecureID(userIDPrefix, 16)
	if err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeInternal,
			"failed to generate user id", err, "")
	}

	u := &User{
		PublicID:        publicID,
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		ProfileImageURL: pictureURL,
		Provider:        provider,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeDatabaseError,
			"failed to create oauth account", err, "")
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
