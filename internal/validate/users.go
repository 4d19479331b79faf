package validate

import (
	"regexp"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/dto"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
)

// Users validates user mutations against cache state.
type Users struct {
	reg *cache.Registry
}

// NewUsers creates a user validator over the given registry.
func NewUsers(reg *cache.Registry) *Users {
	return &Users{reg: reg}
}

// Getting returns the user with the given id or NOT_FOUND.
func (v *Users) Getting(id int64) (domain.User, error) {
	user, ok := v.reg.UserByID(id)
	if !ok {
		return domain.User{}, apperrors.NotFoundf("user with id %d does not exist", id)
	}
	return user, nil
}

// Creating gates user creation: the username must be unique and the role
// must exist.
func (v *Users) Creating(username string, roleID int64) error {
	if _, ok := v.reg.UserByUsername(username); ok {
		return apperrors.Duplicatef("user with username %q already exists", username)
	}
	if _, ok := v.reg.RoleByID(roleID); !ok {
		return apperrors.ReferenceNotFoundf("role with id %d does not exist", roleID)
	}
	return nil
}

// Updating gates a username/password update and returns the current user.
// A new username must not collide with another user's.
func (v *Users) Updating(id int64, newUsername string) (domain.User, error) {
	user, err := v.Getting(id)
	if err != nil {
		return domain.User{}, err
	}
	if newUsername != "" && newUsername != user.Username {
		if _, ok := v.reg.UserByUsername(newUsername); ok {
			return domain.User{}, apperrors.Duplicatef("user with username %q already exists", newUsername)
		}
	}
	return user, nil
}

// UpdatingRole gates a role change and returns the current user.
func (v *Users) UpdatingRole(id, roleID int64) (domain.User, error) {
	user, err := v.Getting(id)
	if err != nil {
		return domain.User{}, err
	}
	if _, ok := v.reg.RoleByID(roleID); !ok {
		return domain.User{}, apperrors.ReferenceNotFoundf("role with id %d does not exist", roleID)
	}
	return user, nil
}

// Deleting gates user deletion: a user with live booklist items or reviews
// cannot be removed.
func (v *Users) Deleting(id int64) (domain.User, error) {
	user, err := v.Getting(id)
	if err != nil {
		return domain.User{}, err
	}
	if cache.Exists(v.reg.Booklist, func(item domain.BooklistItem) bool { return item.UserID == id }) {
		return domain.User{}, apperrors.Forbiddenf("user %d still has booklist items", id)
	}
	if cache.Exists(v.reg.Reviews, func(r domain.Review) bool { return r.UserID == id }) {
		return domain.User{}, apperrors.Forbiddenf("user %d still has reviews", id)
	}
	return user, nil
}

// Filters validates the read-side filter options for users.
func (v *Users) Filters(f dto.UserFilters) error {
	if f.SearchUsername != "" {
		if _, err := regexp.Compile(f.SearchUsername); err != nil {
			return apperrors.InvalidInputf("invalid username pattern %q", f.SearchUsername)
		}
	}
	for _, roleID := range f.RoleIDs {
		if _, ok := v.reg.RoleByID(roleID); !ok {
			return apperrors.ReferenceNotFoundf("role with id %d does not exist for filtering users", roleID)
		}
	}
	return nil
}
