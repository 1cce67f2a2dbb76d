package registry

import (
	"fmt"

	"github.com/yavemu/bookadmin/internal/schema"
)

// ConfigNotFoundError signals a request for an entity with no registered
// configuration.
type ConfigNotFoundError struct {
	Entity string
}

// Error implements the error interface
func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("no configuration registered for entity '%s'", e.Entity)
}

var (
	configs = make(map[string]*schema.EntityConfig)
	order   []string
)

// register validates and stores an entity configuration. Configs are
// registered at package init and the registry is immutable afterward, so a
// malformed config aborts startup rather than surfacing as a UI bug later.
func register(cfg *schema.EntityConfig) {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("invalid entity configuration: %v", err))
	}
	if _, exists := configs[cfg.Entity]; exists {
		panic(fmt.Sprintf("entity '%s' registered twice", cfg.Entity))
	}
	configs[cfg.Entity] = cfg
	order = append(order, cfg.Entity)
}

// Get returns the configuration for an entity name.
func Get(entity string) (*schema.EntityConfig, error) {
	cfg, ok := configs[entity]
	if !ok {
		return nil, &ConfigNotFoundError{Entity: entity}
	}
	return cfg, nil
}

// IsValidEntityType reports whether an entity name is registered. Total,
// never fails.
func IsValidEntityType(entity string) bool {
	_, ok := configs[entity]
	return ok
}

// Names returns the registered entity names in registration order.
func Names() []string {
	names := make([]string, len(order))
	copy(names, order)
	return names
}

func init() {
	register(authorsConfig())
	register(booksConfig())
	register(genresConfig())
	register(publishersConfig())
	register(usersConfig())
	register(inventoryMovementsConfig())
	register(auditConfig())
}
