// Package dto defines the response projections composed by the aggregation
// services, and the recognized read-side filter inputs. Field names are part
// of the external contract; do not rename.
package dto

import "time"

// UserRef is the user projection embedded in review and booklist DTOs.
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AuthorRef is the author projection embedded in book DTOs.
type AuthorRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// BookRef is the book projection embedded in review and booklist DTOs.
type BookRef struct {
	ID     int64     `json:"id"`
	Title  string    `json:"title"`
	Author AuthorRef `json:"author"`
}

// Genre is the genre projection.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Status is the status projection.
type Status struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Author is the full author projection.
type Author struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName"`
	Bio       string `json:"bio,omitempty"`
	ImageFile string `json:"imageFile,omitempty"`
}

// Book is the full book projection with resolved author and genres.
type Book struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Author      AuthorRef `json:"author"`
	Genres      []Genre   `json:"genres"`
	ImageFile   string    `json:"imageFile,omitempty"`
	BookFile    string    `json:"bookFile,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Review is the review projection with resolved user and book.
type Review struct {
	User      UserRef   `json:"user"`
	Book      BookRef   `json:"book"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewBrief is the review projection embedded in booklist entries.
type ReviewBrief struct {
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BooklistItem is one list entry with resolved book, status, and the user's
// review of the book when present.
type BooklistItem struct {
	User   UserRef      `json:"user"`
	Book   BookRef      `json:"book"`
	Status Status       `json:"status"`
	Review *ReviewBrief `json:"review,omitempty"`
}

// BooklistEntry is the booklist projection embedded in user details, without
// the redundant user reference.
type BooklistEntry struct {
	Book   BookRef      `json:"book"`
	Status Status       `json:"status"`
	Review *ReviewBrief `json:"review,omitempty"`
}

// User is the user projection.
type User struct {
	ID        int64     `json:"id"`
	RoleID    int64     `json:"roleId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserDetails is the user projection with the embedded booklist.
type UserDetails struct {
	User
	Booklist []BooklistEntry `json:"booklist"`
}

// Role is the role projection.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ReviewFilters are the recognized read-side filters for reviews.
type ReviewFilters struct {
	BookID   *int64
	UserID   *int64
	ScoreMin *int
	ScoreMax *int
}

// Empty reports whether no filter option is set.
func (f ReviewFilters) Empty() bool {
	return f.BookID == nil && f.UserID == nil && f.ScoreMin == nil && f.ScoreMax == nil
}

// UserFilters are the recognized read-side filters for users.
type UserFilters struct {
	// SearchUsername is a regular expression matched against usernames.
	SearchUsername string
	// RoleIDs keeps users whose role id is a member of the set.
	RoleIDs []int64
}

// Empty reports whether no filter option is set.
func (f UserFilters) Empty() bool {
	return f.SearchUsername == "" && len(f.RoleIDs) == 0
}

// BookFilters are the recognized read-side filters for books.
type BookFilters struct {
	// SearchGenreIDs keeps books linked to any of the given genres.
	SearchGenreIDs []int64
	// SearchTitle is a case-insensitive substring matched against titles.
	SearchTitle string
}

// Empty reports whether no filter option is set.
func (f BookFilters) Empty() bool {
	return len(f.SearchGenreIDs) == 0 && f.SearchTitle == ""
}
