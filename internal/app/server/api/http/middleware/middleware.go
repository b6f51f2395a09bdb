package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

type Func = func(ctx huma.Context, next func(huma.Context))

// Container holds the middlewares shared by every group of operations.
type Container struct {
	base huma.Middlewares
}

// NewContainer создает новый контейнер с общими мидлварями
func NewContainer(base ...Func) *Container {
	return &Container{
		base: append(huma.Middlewares{}, base...),
	}
}

// All возвращает копию общих мидлварей для очередной группы операций
func (mc *Container) All() huma.Middlewares {
	return append(huma.Middlewares{}, mc.base...)
}
