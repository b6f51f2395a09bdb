package record

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer[T any, C Builder[T], U Patcher[T]] interface {
	List(ctx context.Context) ([]T, error)
	Latest(ctx context.Context) (T, error)
	Find(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, req C) (T, error)
	Update(ctx context.Context, id int64, req U) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Service runs the create/read/update/delete lifecycle of one record kind
// on top of a Repository.
type Service[T any, C Builder[T], U Patcher[T]] struct {
	repo Repository[T]
	log  *slog.Logger
}

// NewService creates a new record service; kind is used only for logging.
func NewService[T any, C Builder[T], U Patcher[T]](repo Repository[T], kind string, log *slog.Logger) *Service[T, C, U] {
	return &Service[T, C, U]{
		repo: repo,
		log:  log.With("component", "record_service", "kind", kind),
	}
}

// List returns every stored record.
func (s *Service[T, C, U]) List(ctx context.Context) ([]T, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list records", "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Latest returns the most recently created record.
func (s *Service[T, C, U]) Latest(ctx context.Context) (T, error) {
	rec, err := s.repo.Latest(ctx)
	if err != nil {
		return rec, s.wrap("latest record", err)
	}
	return rec, nil
}

func (s *Service[T, C, U]) Find(ctx context.Context, id int64) (T, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return rec, s.wrap("find record", err, "record_id", id)
	}
	return rec, nil
}

// Create validates req and persists a new record built from it.
func (s *Service[T, C, U]) Create(ctx context.Context, req C) (T, error) {
	var zero T
	if err := req.Validate(); err != nil {
		s.log.Debug("validation failed", "error", err)
		return zero, err
	}

	rec, err := s.repo.Create(ctx, req.Build())
	if err != nil {
		return zero, s.wrap("create record", err)
	}

	s.log.Info("record created")
	return rec, nil
}

// Update looks the record up first, so an unknown id is reported as
// ErrNotFound whatever the payload, then validates and overwrites.
func (s *Service[T, C, U]) Update(ctx context.Context, id int64, req U) (T, error) {
	var zero T
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return zero, s.wrap("get record for update", err, "record_id", id)
	}

	if err := req.Validate(); err != nil {
		s.log.Debug("validation failed", "record_id", id, "error", err)
		return zero, err
	}

	req.Apply(&current)
	rec, err := s.repo.Update(ctx, id, current)
	if err != nil {
		return zero, s.wrap("update record", err, "record_id", id)
	}

	s.log.Info("record updated", "record_id", id)
	return rec, nil
}

// Delete permanently removes a record.
func (s *Service[T, C, U]) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap("delete record", err, "record_id", id)
	}

	s.log.Info("record deleted", "record_id", id)
	return nil
}

// wrap passes domain errors through untouched and logs everything else.
func (s *Service[T, C, U]) wrap(op string, err error, attrs ...any) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidInput) {
		return err
	}
	s.log.Error("failed to "+op, append(attrs, "error", err)...)
	return fmt.Errorf("%s: %w", op, err)
}
