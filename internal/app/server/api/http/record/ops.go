package record

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler[T, C, U, R]) path(suffix string) string {
	return "/api/v1/" + h.res.Kind + suffix
}

func (h *Handler[T, C, U, R]) listOp() huma.Operation {
	return huma.Operation{
		OperationID: h.res.Kind + "-list",
		Method:      http.MethodGet,
		Path:        h.path(""),
		Summary:     "Список записей",
		Description: "Возвращает все записи в порядке возрастания id.",
		Tags:        []string{h.res.Kind},
		Middlewares: h.middleware,
	}
}

func (h *Handler[T, C, U, R]) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   h.res.Singular + "-create",
		Method:        http.MethodPost,
		Path:          h.path(""),
		Summary:       "Создать запись",
		Tags:          []string{h.res.Kind},
		DefaultStatus: http.StatusCreated,
		Middlewares:   h.middleware,
	}
}

func (h *Handler[T, C, U, R]) latestOp() huma.Operation {
	return huma.Operation{
		OperationID: h.res.Singular + "-latest",
		Method:      http.MethodGet,
		Path:        h.path("/latest"),
		Summary:     "Последняя созданная запись",
		Tags:        []string{h.res.Kind},
		Middlewares: h.middleware,
	}
}

func (h *Handler[T, C, U, R]) findOp() huma.Operation {
	return huma.Operation{
		OperationID: h.res.Singular + "-find",
		Method:      http.MethodGet,
		Path:        h.path("/{id}"),
		Summary:     "Получить запись",
		Tags:        []string{h.res.Kind},
		Middlewares: h.middleware,
	}
}

func (h *Handler[T, C, U, R]) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: h.res.Singular + "-update",
		Method:      http.MethodPut,
		Path:        h.path("/{id}"),
		Summary:     "Обновить запись",
		Description: "Перезаписывает все изменяемые поля записи.",
		Tags:        []string{h.res.Kind},
		Middlewares: h.middleware,
	}
}

func (h *Handler[T, C, U, R]) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID:   h.res.Singular + "-delete",
		Method:        http.MethodDelete,
		Path:          h.path("/{id}"),
		Summary:       "Удалить запись",
		Tags:          []string{h.res.Kind},
		DefaultStatus: http.StatusNoContent,
		Middlewares:   h.middleware,
	}
}
