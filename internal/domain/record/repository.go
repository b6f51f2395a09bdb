package record

import (
	"context"
)

// Repository persists records of one kind.
//
// Get, Update and Delete return ErrNotFound for an unknown id. Create and
// Update return a *ConflictError when a unique column would be duplicated,
// leaving the store untouched.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Latest(ctx context.Context) (T, error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id int64, rec T) (T, error)
	Delete(ctx context.Context, id int64) error
}
