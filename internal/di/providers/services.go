package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfmark/shelfmark-server/internal/auth"
	"github.com/shelfmark/shelfmark-server/internal/cache"
	"github.com/shelfmark/shelfmark-server/internal/logger"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

// ProvideAuthService provides the registration and login service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*cache.Registry](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, reg, tokens, log.Logger), nil
}

// ProvideUserService provides the user service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*cache.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, reg, log.Logger), nil
}

// ProvideAuthorService provides the author service.
func ProvideAuthorService(i do.Injector) (*service.AuthorService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*cache.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthorService(storeHandle.Store, reg, log.Logger), nil
}

// ProvideGenreService provides the genre service.
func ProvideGenreService(i do.Injector) (*service.GenreService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*cache.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGenreService(storeHandle.Store, reg, log.Logger), nil
}

// ProvideStatusService provides the booklist status service.
func ProvideStatusService(i do.Injector) (*service.StatusService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*cache.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatusService(storeHandle.Store, reg, log.Logger), nil
}

// ProvideBookService provides the book service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*cache.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, reg, log.Logger), nil
}

// ProvideBooklistService provides the booklist service.
func ProvideBooklistService(i do.Injector) (*service.BooklistService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*cache.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBooklistService(storeHandle.Store, reg, log.Logger), nil
}

// ProvideReviewService provides the review service.
func ProvideReviewService(i do.Injector) (*service.ReviewService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	reg := do.MustInvoke[*cache.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReviewService(storeHandle.Store, reg, log.Logger), nil
}
