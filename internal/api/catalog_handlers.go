package api

import (
	"net/http"

	"github.com/shelfmark/shelfmark-server/internal/http/response"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

// handleListAuthors returns all authors.
func (s *Server) handleListAuthors(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.authorService.Find(), s.logger)
}

// handleGetAuthor returns an author by ID.
func (s *Server) handleGetAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	author, err := s.authorService.FindOne(id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, author, s.logger)
}

// handleCreateAuthor creates a new author.
func (s *Server) handleCreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAuthorRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	author, err := s.authorService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, author, s.logger)
}

// handleUpdateAuthor updates an author.
func (s *Server) handleUpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req service.UpdateAuthorRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	author, err := s.authorService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, author, s.logger)
}

// handleDeleteAuthor removes an author. Authors with books are refused.
func (s *Server) handleDeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.authorService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleListGenres returns all genres.
func (s *Server) handleListGenres(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.genreService.Find(), s.logger)
}

// handleGetGenre returns a genre by ID.
func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	genre, err := s.genreService.FindOne(id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, genre, s.logger)
}

// handleCreateGenre creates a new genre.
func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	var req service.NameRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	genre, err := s.genreService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, genre, s.logger)
}

// handleUpdateGenre renames a genre.
func (s *Server) handleUpdateGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req service.NameRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	genre, err := s.genreService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, genre, s.logger)
}

// handleDeleteGenre removes a genre. Genres attached to books are refused.
func (s *Server) handleDeleteGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.genreService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleListStatuses returns all booklist statuses.
func (s *Server) handleListStatuses(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, s.statusService.Find(), s.logger)
}

// handleGetStatus returns a status by ID.
func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	status, err := s.statusService.FindOne(id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, status, s.logger)
}

// handleCreateStatus creates a new status.
func (s *Server) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	var req service.NameRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	status, err := s.statusService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, status, s.logger)
}

// handleUpdateStatus renames a status.
func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req service.NameRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	status, err := s.statusService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, status, s.logger)
}

// handleDeleteStatus removes a status. Statuses in use by booklist items are
// refused.
func (s *Server) handleDeleteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.statusService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
