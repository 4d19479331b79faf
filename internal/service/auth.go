package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/auth"
	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/dto"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/store"
	"github.com/shelfmark/shelfmark-server/internal/validate"
	"github.com/shelfmark/shelfmark-server/internal/validation"
)

// AuthService handles registration and login.
type AuthService struct {
	store     *store.Store
	reg       *cache.Registry
	tokens    *auth.TokenService
	logger    *slog.Logger
	validator *validation.Validator
	users     *validate.Users
}

// NewAuthService creates a new auth service.
func NewAuthService(st *store.Store, reg *cache.Registry, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:     st,
		reg:       reg,
		tokens:    tokens,
		logger:    logger,
		validator: validation.New(),
		users:     validate.NewUsers(reg),
	}
}

// RegisterRequest contains fields for creating an account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// Register creates a new user with the member role and returns its DTO.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (dto.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.User{}, err
	}

	role, ok := s.reg.RoleByName(domain.RoleMember)
	if !ok {
		return dto.User{}, apperrors.Internalf("role %q missing from cache", domain.RoleMember)
	}
	if err := s.users.Creating(req.Username, role.ID); err != nil {
		return dto.User{}, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return dto.User{}, apperrors.Wrap(err, apperrors.CodeInternal, "hash password")
	}

	userID, err := s.store.CreateUser(ctx, domain.User{
		Username:     req.Username,
		PasswordHash: hash,
		RoleID:       role.ID,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return dto.User{}, err
	}

	if err := refreshAfterWrite(ctx, s.logger, s.reg.Users); err != nil {
		return dto.User{}, err
	}

	s.logger.Info("user registered", "user_id", userID, "username", req.Username)

	user, ok := s.reg.UserByID(userID)
	if !ok {
		return dto.User{}, apperrors.Internalf("user %d missing from cache after refresh", userID)
	}
	return parseUserToDto(user), nil
}

// LoginRequest contains credentials for logging in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token and the authenticated user.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        dto.User  `json:"user"`
}

// Login verifies credentials against the users cache and issues an access
// token. Unknown usernames and wrong passwords return the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return LoginResponse{}, err
	}

	user, found := s.reg.UserByUsername(req.Username)
	if !found {
		// Burn roughly the same time as a real verification so unknown
		// usernames aren't distinguishable by response latency.
		_, _ = auth.VerifyPassword("$argon2id$v=19$m=65536,t=3,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", req.Password)
		return LoginResponse{}, apperrors.InvalidCredentials("invalid username or password")
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(err, apperrors.CodeInternal, "verify password")
	}
	if !ok {
		return LoginResponse{}, apperrors.InvalidCredentials("invalid username or password")
	}

	role, found := s.reg.RoleByID(user.RoleID)
	if !found {
		return LoginResponse{}, apperrors.Internalf("login join: role %d missing from cache", user.RoleID)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, role.Name)
	if err != nil {
		return LoginResponse{}, err
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)

	return LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokens.AccessTokenDuration()),
		User:        parseUserToDto(user),
	}, nil
}
