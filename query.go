package coledger

import (
	"fmt"
)

// QueryHandler is anything that can process ABCI queries. The returned
// value is serialized by the application before being sent to the client.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, data []byte) (interface{}, error)
}

// QueryHandlerFunc allows to use a function as a QueryHandler.
type QueryHandlerFunc func(db ReadOnlyKVStore, data []byte) (interface{}, error)

// Query calls the wrapped function.
func (fn QueryHandlerFunc) Query(db ReadOnlyKVStore, data []byte) (interface{}, error) {
	return fn(db, data)
}

// QueryRegister is a function that adds some handlers to this router.
type QueryRegister func(QueryRouter)

// QueryRouter allows us to register many query handlers to different paths
// and then direct each query to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter initializes a QueryRouter with no routes.
func NewQueryRouter() QueryRouter {
	return QueryRouter{
		routes: make(map[string]QueryHandler, 10),
	}
}

// RegisterAll registers a number of QueryRegister at once.
func (r QueryRouter) RegisterAll(qr ...QueryRegister) {
	for _, q := range qr {
		q(r)
	}
}

// Register adds a new Handler for the given path. It panics if another
// Handler was already registered.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("Re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path, or nil if no
// handler was registered.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
