package nftseries

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/nftseries/errors"
)

// QueryHandler answers a read only request. The request data is JSON
// encoded, and so is the returned value once it leaves the ledger.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, data []byte) (interface{}, error)
}

// QueryFunc is an adapter to use ordinary functions as query handlers.
type QueryFunc func(db ReadOnlyKVStore, data []byte) (interface{}, error)

// Query implements QueryHandler.
func (fn QueryFunc) Query(db ReadOnlyKVStore, data []byte) (interface{}, error) {
	return fn(db, data)
}

// QueryRegister is a function that adds some handlers
// to this router
type QueryRegister func(QueryRouter)

// QueryRouter allows us to register many query handlers
// to different paths and then direct each query
// to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 16),
	}
}

// RegisterAll registers a number of QueryRegister at once
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a new Handler for the given path.
// panics if another Handler was already registered
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering query route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path, or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// Paths returns all registered paths in no particular order.
func (r QueryRouter) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	return paths
}

// LoadQuery decodes the request data into dest. Empty data leaves dest
// unchanged.
func LoadQuery(data []byte, dest interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode query: %s", err)
	}
	return nil
}
