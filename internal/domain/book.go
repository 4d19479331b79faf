package domain

import "time"

// Author represents a book author.
type Author struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Bio       string `json:"bio,omitempty"`
	ImageFile string `json:"image_file,omitempty"` // Stored filename, upload plumbing lives at the edge
}

// Genre represents a category for classifying books.
// Genre names are unique; books carry one or more genres.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book represents a catalog entry. A book always references an existing
// author and at least one genre.
type Book struct {
	ID          int64     `json:"id"`
	AuthorID    int64     `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageFile   string    `json:"image_file,omitempty"`
	BookFile    string    `json:"book_file,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookGenre is one row of the book/genre many-to-many relation.
type BookGenre struct {
	BookID  int64 `json:"book_id"`
	GenreID int64 `json:"genre_id"`
}
