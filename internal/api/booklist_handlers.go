package api

import (
	"net/http"

	"github.com/shelfmark/shelfmark-server/internal/http/response"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

// booklistKey parses the user and book ids from the request path.
func booklistKey(r *http.Request) (userID, bookID int64, err error) {
	userID, err = pathID(r, "id")
	if err != nil {
		return 0, 0, err
	}
	bookID, err = pathID(r, "bookID")
	if err != nil {
		return 0, 0, err
	}
	return userID, bookID, nil
}

// handleListBooklist returns a user's booklist.
func (s *Server) handleListBooklist(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	items, err := s.booklistService.FindByUser(userID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, items, s.logger)
}

// handleGetBooklistItem returns a single booklist item.
func (s *Server) handleGetBooklistItem(w http.ResponseWriter, r *http.Request) {
	userID, bookID, err := booklistKey(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	item, err := s.booklistService.FindOne(userID, bookID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, item, s.logger)
}

// handleCreateBooklistItem adds a book to a user's booklist.
// Users may modify their own booklist; admins may modify anyone's.
func (s *Server) handleCreateBooklistItem(w http.ResponseWriter, r *http.Request) {
	userID, bookID, err := booklistKey(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := requireSelfOrAdmin(r.Context(), userID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req service.CreateBooklistItemRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	item, err := s.booklistService.Create(r.Context(), userID, bookID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, item, s.logger)
}

// handleUpdateBooklistItem changes the status of a booklist item.
func (s *Server) handleUpdateBooklistItem(w http.ResponseWriter, r *http.Request) {
	userID, bookID, err := booklistKey(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := requireSelfOrAdmin(r.Context(), userID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req service.UpdateBooklistItemRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	item, err := s.booklistService.Update(r.Context(), userID, bookID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, item, s.logger)
}

// handleDeleteBooklistItem removes a book from a user's booklist.
// Items whose book the user has reviewed are refused.
func (s *Server) handleDeleteBooklistItem(w http.ResponseWriter, r *http.Request) {
	userID, bookID, err := booklistKey(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := requireSelfOrAdmin(r.Context(), userID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.booklistService.Delete(r.Context(), userID, bookID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
