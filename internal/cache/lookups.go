package cache

import "github.com/shelfmark/shelfmark-server/internal/domain"

// Primary and natural key lookups over the current snapshots. Each call reads
// the snapshot at call time; two calls may observe different snapshots.

// RoleByID returns the role with the given id.
func (r *Registry) RoleByID(id int64) (domain.Role, bool) {
	return Find(r.Roles, func(role domain.Role) bool { return role.ID == id })
}

// RoleByName returns the role with the given name.
func (r *Registry) RoleByName(name string) (domain.Role, bool) {
	return Find(r.Roles, func(role domain.Role) bool { return role.Name == name })
}

// UserByID returns the user with the given id.
func (r *Registry) UserByID(id int64) (domain.User, bool) {
	return Find(r.Users, func(u domain.User) bool { return u.ID == id })
}

// UserByUsername returns the user with the given username.
func (r *Registry) UserByUsername(username string) (domain.User, bool) {
	return Find(r.Users, func(u domain.User) bool { return u.Username == username })
}

// AuthorByID returns the author with the given id.
func (r *Registry) AuthorByID(id int64) (domain.Author, bool) {
	return Find(r.Authors, func(a domain.Author) bool { return a.ID == id })
}

// GenreByID returns the genre with the given id.
func (r *Registry) GenreByID(id int64) (domain.Genre, bool) {
	return Find(r.Genres, func(g domain.Genre) bool { return g.ID == id })
}

// GenreByName returns the genre with the given name.
func (r *Registry) GenreByName(name string) (domain.Genre, bool) {
	return Find(r.Genres, func(g domain.Genre) bool { return g.Name == name })
}

// StatusByID returns the status with the given id.
func (r *Registry) StatusByID(id int64) (domain.Status, bool) {
	return Find(r.Statuses, func(st domain.Status) bool { return st.ID == id })
}

// StatusByName returns the status with the given name.
func (r *Registry) StatusByName(name string) (domain.Status, bool) {
	return Find(r.Statuses, func(st domain.Status) bool { return st.Name == name })
}

// BookByID returns the book with the given id.
func (r *Registry) BookByID(id int64) (domain.Book, bool) {
	return Find(r.Books, func(b domain.Book) bool { return b.ID == id })
}

// GenreIDsForBook returns the genre ids linked to a book, in snapshot order.
func (r *Registry) GenreIDsForBook(bookID int64) []int64 {
	var ids []int64
	for _, link := range r.BookGenres.Snapshot() {
		if link.BookID == bookID {
			ids = append(ids, link.GenreID)
		}
	}
	return ids
}

// BooklistItemByKey returns the booklist item for the (user, book) pair.
func (r *Registry) BooklistItemByKey(userID, bookID int64) (domain.BooklistItem, bool) {
	return Find(r.Booklist, func(item domain.BooklistItem) bool {
		return item.UserID == userID && item.BookID == bookID
	})
}

// ReviewByKey returns the review for the (user, book) pair.
func (r *Registry) ReviewByKey(userID, bookID int64) (domain.Review, bool) {
	return Find(r.Reviews, func(rev domain.Review) bool {
		return rev.UserID == userID && rev.BookID == bookID
	})
}
