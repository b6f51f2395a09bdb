// Package storagetest holds behaviour contracts every record.Repository
// implementation must satisfy. Backends run them from their own tests.
package storagetest

import (
	"context"
	"testing"

	randomdata "github.com/Pallinder/go-randomdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recordkeeper/internal/domain/book"
	"recordkeeper/internal/domain/product"
	"recordkeeper/internal/domain/record"
	"recordkeeper/internal/domain/user"
)

// Subject returns an empty repository backed by fresh storage.
type Subject[T any] func(t *testing.T) record.Repository[T]

// CRUD exercises the create/read/update/delete contract for one kind.
type CRUD[T any] struct {
	Subject Subject[T]
	Fixture func() T
	Mutate  func(T) T
	ID      func(T) int64
}

func (c CRUD[T]) Test(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns id and get returns identical record", func(t *testing.T) {
		repo := c.Subject(t)
		fixture := c.Fixture()

		created, err := repo.Create(ctx, fixture)
		require.NoError(t, err)
		require.NotZero(t, c.ID(created))

		found, err := repo.Get(ctx, c.ID(created))
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("ids are unique and list returns every record", func(t *testing.T) {
		repo := c.Subject(t)

		first, err := repo.Create(ctx, c.Fixture())
		require.NoError(t, err)
		second, err := repo.Create(ctx, c.Fixture())
		require.NoError(t, err)
		assert.NotEqual(t, c.ID(first), c.ID(second))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []T{first, second}, all)

		latest, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, second, latest)
	})

	t.Run("empty store", func(t *testing.T) {
		repo := c.Subject(t)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		_, err = repo.Latest(ctx)
		assert.ErrorIs(t, err, record.ErrNotFound)

		_, err = repo.Get(ctx, 1)
		assert.ErrorIs(t, err, record.ErrNotFound)
	})

	t.Run("update overwrites in place", func(t *testing.T) {
		repo := c.Subject(t)

		created, err := repo.Create(ctx, c.Fixture())
		require.NoError(t, err)

		changed := c.Mutate(created)
		updated, err := repo.Update(ctx, c.ID(created), changed)
		require.NoError(t, err)
		assert.Equal(t, changed, updated)

		found, err := repo.Get(ctx, c.ID(created))
		require.NoError(t, err)
		assert.Equal(t, changed, found)
	})

	t.Run("update of unknown id is not found and leaves store unchanged", func(t *testing.T) {
		repo := c.Subject(t)

		created, err := repo.Create(ctx, c.Fixture())
		require.NoError(t, err)

		_, err = repo.Update(ctx, c.ID(created)+100, c.Fixture())
		assert.ErrorIs(t, err, record.ErrNotFound)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []T{created}, all)
	})

	t.Run("delete then get is not found", func(t *testing.T) {
		repo := c.Subject(t)

		created, err := repo.Create(ctx, c.Fixture())
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, c.ID(created)))

		_, err = repo.Get(ctx, c.ID(created))
		assert.ErrorIs(t, err, record.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, c.ID(created)), record.ErrNotFound)
	})
}

// UserUniqueness checks the email and phone_number unique indexes.
type UserUniqueness struct {
	Subject Subject[user.User]
}

func (c UserUniqueness) Test(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate phone on create conflicts and keeps first", func(t *testing.T) {
		repo := c.Subject(t)

		ann, err := repo.Create(ctx, user.User{FirstName: "Ann", Email: "ann@example.com", PhoneNumber: "+123"})
		require.NoError(t, err)

		_, err = repo.Create(ctx, user.User{FirstName: "Bo", Email: "bo@example.com", PhoneNumber: "+123"})
		var cerr *record.ConflictError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "phone_number", cerr.Field)

		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []user.User{ann}, all)
	})

	t.Run("duplicate email on create conflicts", func(t *testing.T) {
		repo := c.Subject(t)

		_, err := repo.Create(ctx, user.User{Email: "ann@example.com", PhoneNumber: "+1"})
		require.NoError(t, err)

		_, err = repo.Create(ctx, user.User{Email: "ann@example.com", PhoneNumber: "+2"})
		var cerr *record.ConflictError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "email", cerr.Field)
	})

	t.Run("update onto another record's value conflicts without mutating", func(t *testing.T) {
		repo := c.Subject(t)

		ann, err := repo.Create(ctx, user.User{FirstName: "Ann", Email: "ann@example.com", PhoneNumber: "+1"})
		require.NoError(t, err)
		bo, err := repo.Create(ctx, user.User{FirstName: "Bo", Email: "bo@example.com", PhoneNumber: "+2"})
		require.NoError(t, err)

		changed := bo
		changed.FirstName = "Bobby"
		changed.Email = ann.Email
		_, err = repo.Update(ctx, bo.ID, changed)
		assert.ErrorIs(t, err, record.ErrConflict)

		found, err := repo.Get(ctx, bo.ID)
		require.NoError(t, err)
		assert.Equal(t, bo, found)
	})

	t.Run("update keeping own unique values succeeds", func(t *testing.T) {
		repo := c.Subject(t)

		ann, err := repo.Create(ctx, user.User{FirstName: "Ann", Email: "ann@example.com", PhoneNumber: "+1"})
		require.NoError(t, err)

		ann.Salary = 42
		updated, err := repo.Update(ctx, ann.ID, ann)
		require.NoError(t, err)
		assert.Equal(t, ann, updated)
	})

	t.Run("freed value can be reused after delete", func(t *testing.T) {
		repo := c.Subject(t)

		ann, err := repo.Create(ctx, user.User{Email: "ann@example.com", PhoneNumber: "+1"})
		require.NoError(t, err)
		require.NoError(t, repo.Delete(ctx, ann.ID))

		_, err = repo.Create(ctx, user.User{Email: "ann@example.com", PhoneNumber: "+1"})
		assert.NoError(t, err)
	})
}

// RunAll runs every contract against one backend.
func RunAll(t *testing.T, users Subject[user.User], books Subject[book.Book], products Subject[product.Product]) {
	t.Run("users", func(t *testing.T) {
		UserCRUD(users).Test(t)
		UserUniqueness{Subject: users}.Test(t)
	})
	t.Run("books", func(t *testing.T) {
		CRUD[book.Book]{
			Subject: books,
			Fixture: RandomBook,
			Mutate: func(b book.Book) book.Book {
				b.Title = randomdata.SillyName()
				b.PageCount++
				return b
			},
			ID: func(b book.Book) int64 { return b.ID },
		}.Test(t)
	})
	t.Run("products", func(t *testing.T) {
		CRUD[product.Product]{
			Subject: products,
			Fixture: RandomProduct,
			Mutate: func(p product.Product) product.Product {
				p.Price += 100
				p.Description = randomdata.Paragraph()
				return p
			},
			ID: func(p product.Product) int64 { return p.ID },
		}.Test(t)
	})
}

func UserCRUD(subject Subject[user.User]) CRUD[user.User] {
	return CRUD[user.User]{
		Subject: subject,
		Fixture: RandomUser,
		Mutate: func(u user.User) user.User {
			u.LastName = randomdata.LastName()
			u.Salary += 1.25
			return u
		},
		ID: func(u user.User) int64 { return u.ID },
	}
}
