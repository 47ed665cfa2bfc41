package app

import (
	"context"
	"fmt"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
)

// Router dispatches a message to the handler registered for its path.
type Router struct {
	routes map[string]nftseries.Handler
}

var (
	_ nftseries.Registry = (*Router)(nil)
	_ nftseries.Handler  = (*Router)(nil)
)

// NewRouter returns a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]nftseries.Handler, 16),
	}
}

// Handle registers the handler for given path. It panics if the path is
// malformed or already taken.
func (r *Router) Handle(path string, h nftseries.Handler) {
	if err := nftseries.ValidatePath(path); err != nil {
		panic(err)
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for given path. It never returns
// nil, a missing path resolves to a handler that always fails.
func (r *Router) Handler(path string) nftseries.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPath(path)
}

// Deliver implements Handler by dispatching on the message path.
func (r *Router) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	if msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "message")
	}
	return r.Handler(msg.Path()).Deliver(ctx, db, msg)
}

func noSuchPath(path string) nftseries.Handler {
	return nftseries.HandlerFunc(func(context.Context, nftseries.KVStore, nftseries.Msg) (*nftseries.Result, error) {
		return nil, errors.Wrapf(errors.ErrMsg, "no handler for path %q", path)
	})
}
