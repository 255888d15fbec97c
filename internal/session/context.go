package session

import (
	"context"
	"net/http"
)

type contextKey struct{}

var sessionKey = contextKey{}

// Middleware loads the session into the request context. Requests without a
// valid session pass through unchanged, as anonymous visitors.
func Middleware(store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, err := store.Get(r)
			if err == nil && data != nil {
				r = r.WithContext(context.WithValue(r.Context(), sessionKey, data))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// FromContext retrieves the session from the context. nil means the visitor
// is anonymous.
func FromContext(ctx context.Context) *Data {
	data, ok := ctx.Value(sessionKey).(*Data)
	if !ok {
		return nil
	}
	return data
}
