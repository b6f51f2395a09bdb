//GET    /api/v1/health              # Состояние сервиса и хранилища
//GET    /api/v1/{kind}              # Список записей
//POST   /api/v1/{kind}              # Создать запись
//GET    /api/v1/{kind}/latest       # Последняя созданная запись
//GET    /api/v1/{kind}/{id}         # Получить запись
//PUT    /api/v1/{kind}/{id}         # Обновить запись
//DELETE /api/v1/{kind}/{id}         # Удалить запись
// {kind}: users, books, products

package api

import (
	"path"
	"reflect"
	"strings"

	healthAPI "recordkeeper/internal/app/server/api/http/health"
	"recordkeeper/internal/app/server/api/http/middleware"
	"recordkeeper/internal/app/server/api/http/middleware/logger"
	recordAPI "recordkeeper/internal/app/server/api/http/record"
	"recordkeeper/internal/domain/book"
	"recordkeeper/internal/domain/product"
	"recordkeeper/internal/domain/record"
	"recordkeeper/internal/domain/user"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

const domainPkg = "recordkeeper/internal/domain/"

// Repositories holds one store per record kind.
type Repositories struct {
	Users    record.Repository[user.User]
	Books    record.Repository[book.Book]
	Products record.Repository[product.Product]
}

type Handlers struct {
	Health   *healthAPI.Handler
	Users    *recordAPI.Handler[user.User, user.CreateRequest, user.UpdateRequest, user.Response]
	Books    *recordAPI.Handler[book.Book, book.CreateRequest, book.UpdateRequest, book.Response]
	Products *recordAPI.Handler[product.Product, product.CreateRequest, product.UpdateRequest, product.Response]
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(repos Repositories, storage healthAPI.Pinger, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chiMiddleware.RealIP, chiMiddleware.Recoverer)

	API := humachi.New(mux, Config())

	h := handlers(repos, storage, log)
	h.Health.SetupRoutes(API)
	h.Users.SetupRoutes(API)
	h.Books.SetupRoutes(API)
	h.Products.SetupRoutes(API)

	return mux
}

// Config is the huma configuration shared by the server and its tests.
func Config() huma.Config {
	config := huma.DefaultConfig("Recordkeeper API", "1.0.0")
	// response bodies carry exactly the documented fields
	config.CreateHooks = nil
	config.Components.Schemas = huma.NewMapRegistry("#/components/schemas/", schemaNamer)
	return config
}

// schemaNamer prefixes domain types with their package, so that
// user.CreateRequest and book.CreateRequest get distinct schema names.
func schemaNamer(t reflect.Type, hint string) string {
	name := huma.DefaultSchemaNamer(t, hint)

	base := t
	for base.Kind() == reflect.Pointer || base.Kind() == reflect.Slice || base.Kind() == reflect.Array {
		base = base.Elem()
	}
	pkg := base.PkgPath()
	if !strings.HasPrefix(pkg, domainPkg) {
		return name
	}

	prefix := path.Base(pkg)
	prefix = strings.ToUpper(prefix[:1]) + prefix[1:]
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return prefix + name
}

func handlers(repos Repositories, storage healthAPI.Pinger, log *slog.Logger) *Handlers {
	middlewares := middleware.NewContainer(logger.New(log).Middleware())

	healthHandler := healthAPI.NewHandler(storage, log, middlewares.All())

	usersHandler := recordAPI.NewHandler(recordAPI.Resource[user.User, user.CreateRequest, user.UpdateRequest, user.Response]{
		Kind:     "users",
		Singular: "user",
		Service:  record.NewService[user.User, user.CreateRequest, user.UpdateRequest](repos.Users, "user", log),
		Present:  user.NewResponse,
	}, log, middlewares.All())

	booksHandler := recordAPI.NewHandler(recordAPI.Resource[book.Book, book.CreateRequest, book.UpdateRequest, book.Response]{
		Kind:     "books",
		Singular: "book",
		Service:  record.NewService[book.Book, book.CreateRequest, book.UpdateRequest](repos.Books, "book", log),
		Present:  book.NewResponse,
	}, log, middlewares.All())

	productsHandler := recordAPI.NewHandler(recordAPI.Resource[product.Product, product.CreateRequest, product.UpdateRequest, product.Response]{
		Kind:     "products",
		Singular: "product",
		Service:  record.NewService[product.Product, product.CreateRequest, product.UpdateRequest](repos.Products, "product", log),
		Present:  product.NewResponse,
	}, log, middlewares.All())

	return &Handlers{
		Health:   healthHandler,
		Users:    usersHandler,
		Books:    booksHandler,
		Products: productsHandler,
	}
}
