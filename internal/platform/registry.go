package platform

import (
	"sync"

	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/paths"
)

// Sentinel errors for registry operations.
var (
	// ErrPlatformAlreadyRegistered is returned when attempting to register
	// a platform with a name that is already in use.
	ErrPlatformAlreadyRegistered = errors.New("platform already registered")

	// ErrInvalidPlatformName is returned when attempting to register
	// a platform with an invalid name.
	ErrInvalidPlatformName = errors.New("invalid platform name")
)

// Registry holds the platforms enabled for a run.
// A platform is either usable or disabled with a reason, such as a
// missing credential. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	platforms map[string]Platform
	disabled  map[string]error
}

// NewRegistry creates a new empty platform registry.
func NewRegistry() *Registry {
	return &Registry{
		platforms: make(map[string]Platform),
		disabled:  make(map[string]error),
	}
}

// Register adds a usable platform to the registry.
// Returns an error if:
//   - The platform name is empty or invalid (per paths.ValidPlatform)
//   - A platform with the same name is already registered or disabled
func (r *Registry) Register(p Platform) error {
	name := p.Name()
	if !paths.ValidPlatform(name) {
		return errors.Wrapf(ErrInvalidPlatformName, "%q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.exists(name) {
		return errors.Wrapf(ErrPlatformAlreadyRegistered, "%q", name)
	}

	r.platforms[name] = p
	return nil
}

// Disable records an enabled platform that cannot be used this run.
// Every eligible post is reported failed for it with reason.
func (r *Registry) Disable(name string, reason error) error {
	if !paths.ValidPlatform(name) {
		return errors.Wrapf(ErrInvalidPlatformName, "%q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.exists(name) {
		return errors.Wrapf(ErrPlatformAlreadyRegistered, "%q", name)
	}

	r.disabled[name] = reason
	return nil
}

func (r *Registry) exists(name string) bool {
	_, usable := r.platforms[name]
	_, disabled := r.disabled[name]
	return usable || disabled
}

// Get returns the usable platform registered under name.
func (r *Registry) Get(name string) (Platform, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.platforms[name]
	return p, ok
}

// Reason returns why name is disabled, or nil if it is usable or unknown.
func (r *Registry) Reason(name string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.disabled[name]
}

// Names returns every enabled platform name, usable or disabled, in the
// deterministic order defined in paths.Platforms().
// Returns nil when the registry is empty.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []string
	for _, name := range paths.Platforms() {
		if r.exists(name) {
			results = append(results, name)
		}
	}
	return results
}
