package service

import (
	"context"
	"log/slog"
	"regexp"
	"slices"

	"github.com/shelfmark/shelfmark-server/internal/auth"
	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/dto"
	"github.com/shelfmark/shelfmark-server/internal/store"
	"github.com/shelfmark/shelfmark-server/internal/validate"
	"github.com/shelfmark/shelfmark-server/internal/validation"
)

// UserService serves user reads from cache and runs user mutations.
// User creation lives in AuthService; everything else is here.
type UserService struct {
	store     *store.Store
	reg       *cache.Registry
	logger    *slog.Logger
	validator *validation.Validator
	users     *validate.Users
}

// NewUserService creates a new user service.
func NewUserService(st *store.Store, reg *cache.Registry, logger *slog.Logger) *UserService {
	return &UserService{
		store:     st,
		reg:       reg,
		logger:    logger,
		validator: validation.New(),
		users:     validate.NewUsers(reg),
	}
}

// Find returns user DTOs matching the filters, preserving cache order among
// matches. The role-id set filter applies before the username text search.
func (s *UserService) Find(f dto.UserFilters) ([]dto.User, error) {
	if err := s.users.Filters(f); err != nil {
		return nil, err
	}

	users := s.reg.Users.Snapshot()

	if len(f.RoleIDs) > 0 {
		users = filterUsers(users, func(u domain.User) bool {
			return slices.Contains(f.RoleIDs, u.RoleID)
		})
	}
	if f.SearchUsername != "" {
		// The pattern was validated by users.Filters.
		re := regexp.MustCompile(f.SearchUsername)
		users = filterUsers(users, func(u domain.User) bool {
			return re.MatchString(u.Username)
		})
	}

	out := make([]dto.User, 0, len(users))
	for _, u := range users {
		out = append(out, parseUserToDto(u))
	}
	return out, nil
}

// FindOne returns the user details DTO, including the embedded booklist.
func (s *UserService) FindOne(id int64) (dto.UserDetails, error) {
	user, err := s.users.Getting(id)
	if err != nil {
		return dto.UserDetails{}, err
	}

	items := cache.Select(s.reg.Booklist, func(item domain.BooklistItem) bool {
		return item.UserID == id
	})

	booklist := make([]dto.BooklistEntry, 0, len(items))
	for _, item := range items {
		entry, err := booklistEntry(s.reg, item)
		if err != nil {
			return dto.UserDetails{}, err
		}
		booklist = append(booklist, entry)
	}

	return dto.UserDetails{
		User:     parseUserToDto(user),
		Booklist: booklist,
	}, nil
}

// UpdateUserRequest contains fields for updating a user's own account.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=64"`
	Password *string `json:"password" validate:"omitempty,min=8,max=128"`
}

// Update changes a user's username and/or password.
func (s *UserService) Update(ctx context.Context, id int64, req UpdateUserRequest) (dto.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.User{}, err
	}

	var newUsername string
	if req.Username != nil {
		newUsername = *req.Username
	}
	user, err := s.users.Updating(id, newUsername)
	if err != nil {
		return dto.User{}, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return dto.User{}, err
		}
		user.PasswordHash = hash
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return dto.User{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Users); err != nil {
		return dto.User{}, err
	}

	return parseUserToDto(user), nil
}

// UpdateUserRoleRequest contains the role change payload.
type UpdateUserRoleRequest struct {
	RoleID int64 `json:"roleId" validate:"required"`
}

// UpdateRole changes a user's role.
func (s *UserService) UpdateRole(ctx context.Context, id int64, req UpdateUserRoleRequest) (dto.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.User{}, err
	}
	user, err := s.users.UpdatingRole(id, req.RoleID)
	if err != nil {
		return dto.User{}, err
	}

	user.RoleID = req.RoleID
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return dto.User{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Users); err != nil {
		return dto.User{}, err
	}

	s.logger.Info("user role updated", "user_id", id, "role_id", req.RoleID)
	return parseUserToDto(user), nil
}

// Delete removes a user. Users with live booklist items or reviews are
// refused.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	user, err := s.users.Deleting(id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, user.ID); err != nil {
		return err
	}
	return refreshAfterWrite(ctx, s.logger, s.reg.Users)
}

// ListRoles returns every role in cache order.
func (s *UserService) ListRoles() []dto.Role {
	roles := s.reg.Roles.Snapshot()
	out := make([]dto.Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, dto.Role{ID: r.ID, Name: r.Name})
	}
	return out
}

func parseUserToDto(u domain.User) dto.User {
	return dto.User{
		ID:        u.ID,
		RoleID:    u.RoleID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func filterUsers(users []domain.User, keep func(domain.User) bool) []domain.User {
	var out []domain.User
	for _, u := range users {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}
