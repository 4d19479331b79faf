package api

import (
	"net/http"

	"github.com/shelfmark/shelfmark-server/internal/dto"
	"github.com/shelfmark/shelfmark-server/internal/http/response"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

// reviewKey parses the user and book ids from the request path.
func reviewKey(r *http.Request) (userID, bookID int64, err error) {
	userID, err = pathID(r, "userID")
	if err != nil {
		return 0, 0, err
	}
	bookID, err = pathID(r, "bookID")
	if err != nil {
		return 0, 0, err
	}
	return userID, bookID, nil
}

// handleListReviews returns reviews matching the optional filters.
// Query parameters: bookId, userId, scoreMin, scoreMax.
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	bookID, err := queryInt64(r, "bookId")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	userID, err := queryInt64(r, "userId")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	scoreMin, err := queryInt(r, "scoreMin")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	scoreMax, err := queryInt(r, "scoreMax")
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	reviews, err := s.reviewService.Find(dto.ReviewFilters{
		BookID:   bookID,
		UserID:   userID,
		ScoreMin: scoreMin,
		ScoreMax: scoreMax,
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, reviews, s.logger)
}

// handleGetReview returns the review a user wrote for a book.
func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	userID, bookID, err := reviewKey(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	review, err := s.reviewService.FindOne(userID, bookID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, review, s.logger)
}

// handleCreateReview creates a review for a book on the user's booklist.
// Users may review as themselves; admins may write on behalf of anyone.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	userID, bookID, err := reviewKey(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := requireSelfOrAdmin(r.Context(), userID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req service.CreateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	review, err := s.reviewService.Create(r.Context(), userID, bookID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, review, s.logger)
}

// handleUpdateReview changes a review's score or comment.
func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, bookID, err := reviewKey(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := requireSelfOrAdmin(r.Context(), userID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	var req service.UpdateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	review, err := s.reviewService.Update(r.Context(), userID, bookID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, review, s.logger)
}

// handleDeleteReview removes a review.
func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, bookID, err := reviewKey(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if err := requireSelfOrAdmin(r.Context(), userID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.reviewService.Delete(r.Context(), userID, bookID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
