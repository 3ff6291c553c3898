package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/banco-obrero/comuna-api/internal/core/domain"
	"github.com/banco-obrero/comuna-api/internal/core/ports"
)

const defaultTokenTTL = 360000 * time.Second

// IdentityService implements cedula verification, registration and login.
type IdentityService struct {
	repo      ports.UserRepository
	registry  ports.RegistryClient
	matrix    *domain.PermissionMatrix
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewIdentityService(repo ports.UserRepository, registry ports.RegistryClient, matrix *domain.PermissionMatrix, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *IdentityService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &IdentityService{
		repo:      repo,
		registry:  registry,
		matrix:    matrix,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// CheckCedula resolves a cedula to an existing account or, failing that, to
// registry prefill data. A broken or empty registry answer degrades to
// "no data": the lookup itself never fails because the registry did.
//
// Note: this deliberately discloses account existence before any
// authentication, so the client can route to login vs registration.
func (s *IdentityService) CheckCedula(ctx context.Context, raw string) (*ports.CedulaCheckResult, error) {
	cedula, err := domain.ParseCedula(raw)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByCedula(ctx, cedula.String())
	if err == nil {
		return &ports.CedulaCheckResult{Exists: true, User: user}, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	person, err := s.registry.Lookup(ctx, cedula)
	if err != nil {
		if errors.Is(err, domain.ErrRegistryUnavailable) {
			s.logger.Warn().Err(err).Str("cedula", cedula.String()).Msg("registry unavailable, degrading to no data")
		}
		return &ports.CedulaCheckResult{Exists: false}, nil
	}

	return &ports.CedulaCheckResult{Exists: false, Person: person}, nil
}

// Register creates an account with role natural and issues a session.
// The store's unique constraint is the final authority on duplicates:
// a concurrent registration with the same cedula surfaces here as
// domain.ErrUserExists, never as a second success.
func (s *IdentityService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	surname := strings.TrimSpace(input.Surname)
	if name == "" || surname == "" || input.Password == "" {
		return nil, domain.ErrMissingFields
	}

	cedula, err := domain.ParseCedula(input.Cedula)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Cedula:       cedula.String(),
		Name:         name,
		Surname:      surname,
		PasswordHash: string(hash),
		Role:         domain.RoleNatural,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("cedula", created.Cedula).Str("user_id", created.ID).Msg("account registered")
	return s.issueSession(created)
}

// Login verifies credentials and issues a session. A missing account and a
// wrong password produce the same error so callers cannot tell them apart.
func (s *IdentityService) Login(ctx context.Context, rawCedula, password string) (*ports.AuthResult, error) {
	if password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	cedula, err := domain.ParseCedula(rawCedula)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByCedula(ctx, cedula.String())
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return s.issueSession(user)
}

// Profile returns the account and permission snapshot for an authenticated
// session's user id.
func (s *IdentityService) Profile(ctx context.Context, userID string) (*domain.User, domain.ModulePermissions, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return user, s.matrix.PermissionsFor(user.Role), nil
}

func (s *IdentityService) issueSession(user *domain.User) (*ports.AuthResult, error) {
	claims := jwt.MapClaims{
		"user": map[string]any{
			"id":   user.ID,
			"role": user.Role,
		},
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{
		Token:       token,
		User:        user,
		Permissions: s.matrix.PermissionsFor(user.Role),
	}, nil
}
