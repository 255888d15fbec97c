// Package urls handles the two URL concerns the web frontend has: reversing
// named routes into paths, and classifying incoming hostnames so project
// subdomains can be told apart from the platform's own pages.
package urls

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownRoute is returned by Reverse for a name no route was registered
// under.
var ErrUnknownRoute = errors.New("unknown route name")

// Reverser maps route names to paths, so templates and handlers reference
// destinations by name instead of hardcoding paths.
type Reverser struct {
	mu     sync.RWMutex
	routes map[string]string
}

// NewReverser returns an empty Reverser.
func NewReverser() *Reverser {
	return &Reverser{routes: map[string]string{}}
}

// Add registers a path under a route name, replacing any previous
// registration.
func (r *Reverser) Add(name, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[name] = path
}

// Reverse returns the path registered under name.
func (r *Reverser) Reverse(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	path, ok := r.routes[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRoute, name)
	}
	return path, nil
}
