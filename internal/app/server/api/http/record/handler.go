package record

import (
	"context"
	"errors"
	"fmt"

	"recordkeeper/internal/domain/record"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Resource describes one record kind exposed over HTTP.
type Resource[T any, C record.Builder[T], U record.Patcher[T], R any] struct {
	Kind     string // path segment and tag, e.g. "users"
	Singular string // used in operation ids and messages, e.g. "user"
	Service  record.Servicer[T, C, U]
	Present  func(T) R
}

type Handler[T any, C record.Builder[T], U record.Patcher[T], R any] struct {
	res        Resource[T, C, U, R]
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler[T any, C record.Builder[T], U record.Patcher[T], R any](res Resource[T, C, U, R], log *slog.Logger, mws huma.Middlewares) *Handler[T, C, U, R] {
	return &Handler[T, C, U, R]{
		res:        res,
		log:        log.With(slog.String("component", "record_handler"), slog.String("kind", res.Kind)),
		middleware: mws,
	}
}

func (h *Handler[T, C, U, R]) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.latestOp(), h.latest)
	huma.Register(api, h.findOp(), h.find)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler[T, C, U, R]) list(ctx context.Context, _ *struct{}) (*listOutput[R], error) {
	records, err := h.res.Service.List(ctx)
	if err != nil {
		return nil, h.fail(err, "")
	}

	body := make([]R, 0, len(records))
	for _, rec := range records {
		body = append(body, h.res.Present(rec))
	}
	return &listOutput[R]{Body: body}, nil
}

func (h *Handler[T, C, U, R]) create(ctx context.Context, input *createInput[C]) (*output[R], error) {
	rec, err := h.res.Service.Create(ctx, input.Body)
	if err != nil {
		return nil, h.fail(err, "")
	}
	return &output[R]{Body: h.res.Present(rec)}, nil
}

func (h *Handler[T, C, U, R]) latest(ctx context.Context, _ *struct{}) (*output[R], error) {
	rec, err := h.res.Service.Latest(ctx)
	if err != nil {
		return nil, h.fail(err, fmt.Sprintf("no %s stored", h.res.Singular))
	}
	return &output[R]{Body: h.res.Present(rec)}, nil
}

func (h *Handler[T, C, U, R]) find(ctx context.Context, input *findInput) (*output[R], error) {
	rec, err := h.res.Service.Find(ctx, input.ID)
	if err != nil {
		return nil, h.fail(err, h.missing(input.ID))
	}
	return &output[R]{Body: h.res.Present(rec)}, nil
}

func (h *Handler[T, C, U, R]) update(ctx context.Context, input *updateInput[U]) (*output[R], error) {
	rec, err := h.res.Service.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, h.fail(err, h.missing(input.ID))
	}
	return &output[R]{Body: h.res.Present(rec)}, nil
}

func (h *Handler[T, C, U, R]) delete(ctx context.Context, input *findInput) (*struct{}, error) {
	if err := h.res.Service.Delete(ctx, input.ID); err != nil {
		return nil, h.fail(err, h.missing(input.ID))
	}
	return nil, nil
}

func (h *Handler[T, C, U, R]) missing(id int64) string {
	return fmt.Sprintf("%s %d not found", h.res.Singular, id)
}

// fail maps domain errors onto problem responses; notFound is the message
// used for record.ErrNotFound.
func (h *Handler[T, C, U, R]) fail(err error, notFound string) error {
	var verr *record.ValidationError
	if errors.As(err, &verr) {
		details := make([]error, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			details = append(details, &huma.ErrorDetail{
				Message:  f.Message,
				Location: "body." + f.Field,
				Value:    f.Value,
			})
		}
		return huma.Error422UnprocessableEntity("validation failed", details...)
	}

	var cerr *record.ConflictError
	switch {
	case errors.As(err, &cerr):
		return huma.Error409Conflict(cerr.Error())
	case errors.Is(err, record.ErrConflict):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, record.ErrNotFound):
		if notFound == "" {
			notFound = err.Error()
		}
		return huma.Error404NotFound(notFound)
	}

	h.log.Error("request failed", "error", err)
	return huma.Error500InternalServerError("internal server error")
}
