package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/dto"
	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"
	"github.com/shelfmark/shelfmark-server/internal/store"
	"github.com/shelfmark/shelfmark-server/internal/validate"
	"github.com/shelfmark/shelfmark-server/internal/validation"
)

// BookService serves book reads from cache and runs book mutations.
type BookService struct {
	store     *store.Store
	reg       *cache.Registry
	logger    *slog.Logger
	validator *validation.Validator
	books     *validate.Books
}

// NewBookService creates a new book service.
func NewBookService(st *store.Store, reg *cache.Registry, logger *slog.Logger) *BookService {
	return &BookService{
		store:     st,
		reg:       reg,
		logger:    logger,
		validator: validation.New(),
		books:     validate.NewBooks(reg),
	}
}

// Find returns book DTOs matching the filters, preserving cache order.
// The genre-id set filter applies before the title text search.
func (s *BookService) Find(f dto.BookFilters) ([]dto.Book, error) {
	if !f.Empty() {
		if err := s.books.Filters(f); err != nil {
			return nil, err
		}
	}

	books := s.reg.Books.Snapshot()

	if len(f.SearchGenreIDs) > 0 {
		books = filterBooks(books, func(b domain.Book) bool {
			for _, genreID := range s.reg.GenreIDsForBook(b.ID) {
				if slices.Contains(f.SearchGenreIDs, genreID) {
					return true
				}
			}
			return false
		})
	}
	if f.SearchTitle != "" {
		needle := strings.ToLower(f.SearchTitle)
		books = filterBooks(books, func(b domain.Book) bool {
			return strings.Contains(strings.ToLower(b.Title), needle)
		})
	}

	out := make([]dto.Book, 0, len(books))
	for _, b := range books {
		bookDto, err := s.parseToDto(b)
		if err != nil {
			return nil, err
		}
		out = append(out, bookDto)
	}
	return out, nil
}

// FindOne returns the book DTO with the given id.
func (s *BookService) FindOne(id int64) (dto.Book, error) {
	book, err := s.books.Getting(id)
	if err != nil {
		return dto.Book{}, err
	}
	return s.parseToDto(book)
}

// CreateBookRequest contains fields for creating a book.
type CreateBookRequest struct {
	AuthorID    int64   `json:"authorId" validate:"required"`
	Title       string  `json:"title" validate:"required,min=1,max=500"`
	Description string  `json:"description" validate:"max=5000"`
	GenreIDs    []int64 `json:"genreIds" validate:"required,min=1"`
	ImageFile   string  `json:"imageFile"`
	BookFile    string  `json:"bookFile"`
}

// Create validates, writes the book and its genre links, refreshes both
// caches, and returns the DTO.
func (s *BookService) Create(ctx context.Context, req CreateBookRequest) (dto.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.Book{}, err
	}
	if err := s.books.Creating(req.AuthorID, req.GenreIDs); err != nil {
		return dto.Book{}, err
	}

	book := domain.Book{
		AuthorID:    req.AuthorID,
		Title:       req.Title,
		Description: req.Description,
		ImageFile:   req.ImageFile,
		BookFile:    req.BookFile,
		CreatedAt:   time.Now().UTC(),
	}
	bookID, err := s.store.CreateBook(ctx, book, req.GenreIDs)
	if err != nil {
		return dto.Book{}, err
	}

	if err := refreshAfterWrite(ctx, s.logger, s.reg.Books, s.reg.BookGenres); err != nil {
		return dto.Book{}, err
	}

	s.logger.Info("book created", "book_id", bookID, "title", req.Title, "author_id", req.AuthorID)

	created, ok := s.reg.BookByID(bookID)
	if !ok {
		return dto.Book{}, apperrors.Internalf("book %d missing from cache after refresh", bookID)
	}
	return s.parseToDto(created)
}

// UpdateBookRequest contains fields for updating a book. Nil fields are left
// unchanged; a non-nil GenreIDs replaces the genre links.
type UpdateBookRequest struct {
	AuthorID    *int64  `json:"authorId"`
	Title       *string `json:"title" validate:"omitempty,min=1,max=500"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	GenreIDs    []int64 `json:"genreIds" validate:"omitempty,min=1"`
	ImageFile   *string `json:"imageFile"`
	BookFile    *string `json:"bookFile"`
}

// Update changes a book's fields and, when GenreIDs is set, its genre links.
func (s *BookService) Update(ctx context.Context, id int64, req UpdateBookRequest) (dto.Book, error) {
	if err := s.validator.Validate(req); err != nil {
		return dto.Book{}, err
	}
	book, err := s.books.Updating(id, req.AuthorID, req.GenreIDs)
	if err != nil {
		return dto.Book{}, err
	}

	if req.AuthorID != nil {
		book.AuthorID = *req.AuthorID
	}
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.ImageFile != nil {
		book.ImageFile = *req.ImageFile
	}
	if req.BookFile != nil {
		book.BookFile = *req.BookFile
	}

	if err := s.store.UpdateBook(ctx, book, req.GenreIDs); err != nil {
		return dto.Book{}, err
	}
	if err := refreshAfterWrite(ctx, s.logger, s.reg.Books, s.reg.BookGenres); err != nil {
		return dto.Book{}, err
	}

	return s.parseToDto(book)
}

// Delete removes a book and its genre links. Books with live booklist items
// or reviews are refused.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if _, err := s.books.Deleting(id); err != nil {
		return err
	}
	if err := s.store.DeleteBook(ctx, id); err != nil {
		return err
	}
	return refreshAfterWrite(ctx, s.logger, s.reg.Books, s.reg.BookGenres)
}

// parseToDto resolves the book's author and genres by cache lookup.
func (s *BookService) parseToDto(book domain.Book) (dto.Book, error) {
	author, ok := s.reg.AuthorByID(book.AuthorID)
	if !ok {
		return dto.Book{}, apperrors.ReferenceNotFoundf("book join: author %d missing from cache", book.AuthorID)
	}

	genreIDs := s.reg.GenreIDsForBook(book.ID)
	genres := make([]dto.Genre, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		genre, ok := s.reg.GenreByID(genreID)
		if !ok {
			return dto.Book{}, apperrors.ReferenceNotFoundf("book join: genre %d missing from cache", genreID)
		}
		genres = append(genres, dto.Genre{ID: genre.ID, Name: genre.Name})
	}

	return dto.Book{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		Author:      dto.AuthorRef{ID: author.ID, FullName: author.FullName},
		Genres:      genres,
		ImageFile:   book.ImageFile,
		BookFile:    book.BookFile,
		CreatedAt:   book.CreatedAt,
	}, nil
}

func filterBooks(books []domain.Book, keep func(domain.Book) bool) []domain.Book {
	var out []domain.Book
	for _, b := range books {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}
