package api

import (
	"net/http"

	"github.com/shelfmark/shelfmark-server/internal/dto"
	"github.com/shelfmark/shelfmark-server/internal/http/response"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

// handleListUsers returns users matching the optional filters.
// Query parameters: searchUsername (regular expression), roleIds (CSV).
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	roleIDs, err := queryIDList(r, "roleIds")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	users, err := s.userService.Find(dto.UserFilters{
		SearchUsername: r.URL.Query().Get("searchUsername"),
		RoleIDs:        roleIDs,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, users, s.logger)
}

// handleGetUser returns a user with their booklist embedded.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.userService.FindOne(id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

// handleUpdateUser changes a user's username or password.
// Users may update themselves; admins may update anyone.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := requireSelfOrAdmin(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req service.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.userService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

// handleUpdateUserRole changes a user's role. Admin only.
func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req service.UpdateUserRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	user, err := s.userService.UpdateRole(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}

// handleDeleteUser removes a user. Admin only. Users with booklist items or
// reviews are refused.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.userService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleListRoles returns all roles.
func (s *Server) handleListRoles(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.userService.ListRoles(), s.logger)
}
