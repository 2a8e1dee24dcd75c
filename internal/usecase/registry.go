package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/GaneshDurai90/EshopFlix-Microservices-sub001/internal/domain/repository"
)

type handlerFunc func(ctx context.Context, actor string, cmd Command) (CartView, error)

// Registry maps command names to typed handlers. It is filled once at
// construction and only read afterwards.
type Registry struct {
	handlers map[string]handlerFunc
}

func newRegistry() *Registry {
	return &Registry{handlers: make(map[string]handlerFunc)}
}

func register[C Command](r *Registry, fn func(ctx context.Context, actor string, cmd C) (CartView, error)) {
	var zero C
	name := zero.CommandName()
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("usecase: command %s registered twice", name))
	}
	r.handlers[name] = func(ctx context.Context, actor string, cmd Command) (CartView, error) {
		typed, ok := cmd.(C)
		if !ok {
			return CartView{}, fmt.Errorf("%w: command %s has type %T", repository.ErrValidation, name, cmd)
		}
		return fn(ctx, actor, typed)
	}
}

// Dispatch validates cmd and runs its handler.
func (r *Registry) Dispatch(ctx context.Context, actor string, cmd Command) (CartView, error) {
	if cmd == nil {
		return CartView{}, fmt.Errorf("%w: command is required", repository.ErrValidation)
	}
	handler, ok := r.handlers[cmd.CommandName()]
	if !ok {
		return CartView{}, fmt.Errorf("%w: unknown command %q", repository.ErrValidation, cmd.CommandName())
	}
	if err := cmd.Validate(); err != nil {
		return CartView{}, err
	}
	return handler(ctx, actor, cmd)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
