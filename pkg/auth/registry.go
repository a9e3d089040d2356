package auth

import (
	"fmt"
	"sync"

	"github.com/garyhtou/increase-go/pkg/config"
	"github.com/garyhtou/increase-go/pkg/errors"
)

// Creator builds an auth handler from its config block.
type Creator func(*config.Auth) (Handler, error)

// Registry maps auth types to creators.
type Registry struct {
	creators map[config.AuthType]Creator
	mutex    sync.RWMutex
}

// NewRegistry creates a registry with the default handlers registered.
func NewRegistry() *Registry {
	r := &Registry{creators: make(map[config.AuthType]Creator)}
	r.Register(config.AuthTypeBearer, createBearerAuth)
	r.Register(config.AuthTypeBasic, createBasicAuth)
	r.Register(config.AuthTypeAPIKey, createAPIKeyAuth)
	return r
}

// Register adds a creator for an auth type, replacing any existing one.
func (r *Registry) Register(authType config.AuthType, creator Creator) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.creators[authType] = creator
}

// Create builds a handler for the configured auth type.
func (r *Registry) Create(authConfig *config.Auth) (Handler, error) {
	r.mutex.RLock()
	creator, exists := r.creators[authConfig.Type]
	r.mutex.RUnlock()

	if !exists {
		return nil, errors.WrapError(
			fmt.Errorf("unsupported auth type: %s", authConfig.Type),
			errors.ErrConfiguration,
			"invalid auth type",
		)
	}
	return creator(authConfig)
}

// DefaultRegistry is the process-wide registry.
var DefaultRegistry = NewRegistry()

// CreateHandler builds a handler using the default registry. A nil config
// means no authentication.
func CreateHandler(authConfig *config.Auth) (Handler, error) {
	if authConfig == nil {
		return nil, nil
	}
	return DefaultRegistry.Create(authConfig)
}
