// Package main provides a tool to seed the database with reference data and
// optional demo content.
//
// Roles and booklist statuses are always created when missing; they are
// required before the server can register users or build booklists.
//
// Usage:
//
//	DATA_PATH=~/Shelfmark/data go run ./cmd/seed
//	DATA_PATH=~/Shelfmark/data go run ./cmd/seed --demo  # Also create demo users and books
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/shelfmark/shelfmark-server/internal/auth"
	"github.com/shelfmark/shelfmark-server/internal/domain"
	"github.com/shelfmark/shelfmark-server/internal/store"
)

var demo = flag.Bool("demo", false, "Create demo users, authors, genres and books")

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/Shelfmark/data")
	}
	dbPath := filepath.Join(dataPath, "shelfmark.db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := store.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	seedRoles(ctx, s)
	seedStatuses(ctx, s)

	if *demo {
		seedDemo(ctx, s)
	}

	fmt.Println("Done")
}

func seedRoles(ctx context.Context, s *store.Store) {
	roles, err := s.ListRoles(ctx)
	if err != nil {
		log.Fatalf("Failed to list roles: %v", err)
	}

	existing := make(map[string]bool, len(roles))
	for _, r := range roles {
		existing[r.Name] = true
	}

	for _, name := range []string{domain.RoleAdmin, domain.RoleMember} {
		if existing[name] {
			continue
		}
		id, err := s.CreateRole(ctx, name)
		if err != nil {
			log.Fatalf("Failed to create role %q: %v", name, err)
		}
		fmt.Printf("Created role %q (id %d)\n", name, id)
	}
}

func seedStatuses(ctx context.Context, s *store.Store) {
	statuses, err := s.ListStatuses(ctx)
	if err != nil {
		log.Fatalf("Failed to list statuses: %v", err)
	}

	existing := make(map[string]bool, len(statuses))
	for _, st := range statuses {
		existing[st.Name] = true
	}

	for _, name := range []string{"want to read", "reading", "finished"} {
		if existing[name] {
			continue
		}
		id, err := s.CreateStatus(ctx, name)
		if err != nil {
			log.Fatalf("Failed to create status %q: %v", name, err)
		}
		fmt.Printf("Created status %q (id %d)\n", name, id)
	}
}

func seedDemo(ctx context.Context, s *store.Store) {
	roles, err := s.ListRoles(ctx)
	if err != nil {
		log.Fatalf("Failed to list roles: %v", err)
	}
	roleIDs := make(map[string]int64, len(roles))
	for _, r := range roles {
		roleIDs[r.Name] = r.ID
	}

	users := []struct {
		username string
		password string
		role     string
	}{
		{"admin", "admin-password", domain.RoleAdmin},
		{"alice", "alice-password", domain.RoleMember},
		{"bob", "bob-password", domain.RoleMember},
	}

	for _, u := range users {
		hash, err := auth.HashPassword(u.password)
		if err != nil {
			log.Fatalf("Failed to hash password for %q: %v", u.username, err)
		}
		id, err := s.CreateUser(ctx, domain.User{
			Username:     u.username,
			PasswordHash: hash,
			RoleID:       roleIDs[u.role],
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			fmt.Printf("Skipping user %q: %v\n", u.username, err)
			continue
		}
		fmt.Printf("Created user %q (id %d)\n", u.username, id)
	}

	authors := []domain.Author{
		{FullName: "Ursula K. Le Guin", Bio: "American author of speculative fiction."},
		{FullName: "Stanislaw Lem", Bio: "Polish writer of science fiction and essays."},
	}
	authorIDs := make([]int64, 0, len(authors))
	for _, a := range authors {
		id, err := s.CreateAuthor(ctx, a)
		if err != nil {
			log.Fatalf("Failed to create author %q: %v", a.FullName, err)
		}
		authorIDs = append(authorIDs, id)
		fmt.Printf("Created author %q (id %d)\n", a.FullName, id)
	}

	genreIDs := make([]int64, 0, 2)
	for _, name := range []string{"science fiction", "fantasy"} {
		id, err := s.CreateGenre(ctx, name)
		if err != nil {
			fmt.Printf("Skipping genre %q: %v\n", name, err)
			continue
		}
		genreIDs = append(genreIDs, id)
		fmt.Printf("Created genre %q (id %d)\n", name, id)
	}
	if len(genreIDs) == 0 {
		fmt.Println("No new genres created, skipping demo books")
		return
	}

	books := []struct {
		book   domain.Book
		genres []int64
	}{
		{domain.Book{AuthorID: authorIDs[0], Title: "The Dispossessed", Description: "An ambiguous utopia.", CreatedAt: time.Now().UTC()}, genreIDs[:1]},
		{domain.Book{AuthorID: authorIDs[1], Title: "Solaris", Description: "A planet that thinks back.", CreatedAt: time.Now().UTC()}, genreIDs[:1]},
	}
	for _, b := range books {
		id, err := s.CreateBook(ctx, b.book, b.genres)
		if err != nil {
			log.Fatalf("Failed to create book %q: %v", b.book.Title, err)
		}
		fmt.Printf("Created book %q (id %d)\n", b.book.Title, id)
	}
}
