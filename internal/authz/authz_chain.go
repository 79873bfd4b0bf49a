package authz

import (
	"context"
	"fmt"

	"go-vacation/internal/shared/outcome"
)

// Chain is an ordered, immutable list of handlers.
//
// Execute stops at the first handler that denies and returns that handler's
// Result unchanged; later handlers are not evaluated. When every handler
// passes, the Result of the last one is returned. An empty chain passes.
type Chain struct {
	name     string
	handlers []Handler
}

func NewChain(name string, handlers ...Handler) Chain {
	hs := make([]Handler, len(handlers))
	copy(hs, handlers)
	return Chain{name: name, handlers: hs}
}

func (c Chain) Name() string {
	return c.name
}

func (c Chain) Len() int {
	return len(c.handlers)
}

// Steps lists handler names in evaluation order.
func (c Chain) Steps() []string {
	names := make([]string, len(c.handlers))
	for i, h := range c.handlers {
		names[i] = h.Name()
	}
	return names
}

// Then returns a new chain with h appended; c is left untouched.
func (c Chain) Then(h Handler) Chain {
	hs := make([]Handler, len(c.handlers), len(c.handlers)+1)
	copy(hs, c.handlers)
	return Chain{name: c.name, handlers: append(hs, h)}
}

func (c Chain) Execute(ctx context.Context, ac *Context) (outcome.Result, error) {
	if ac == nil {
		ac = &Context{}
	}

	result := outcome.Success()
	for _, h := range c.handlers {
		r, err := h.Check(ctx, ac)
		if err != nil {
			return outcome.Result{}, fmt.Errorf("chain %s: %w", c.name, err)
		}
		if !r.OK() {
			return r, nil
		}
		result = r
	}
	return result, nil
}
