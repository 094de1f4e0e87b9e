package middleware

import "github.com/p2lu/turingtoy/pkg/ports"

// Middleware allows wrapping a ResultStore to add behavior.
type Middleware func(ports.ResultStore) ports.ResultStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.ResultStore, mws ...Middleware) ports.ResultStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
