package schema

import (
	"fmt"
	"net/url"
	"strings"
)

// Capability is one CRUD verb an entity may grant.
type Capability string

// CRUD capabilities
const (
	CapCreate Capability = "create"
	CapRead   Capability = "read"
	CapUpdate Capability = "update"
	CapDelete Capability = "delete"
)

// SearchMode is one of the search affordances an entity may grant.
type SearchMode string

// Search modes
const (
	SearchAuto     SearchMode = "auto"
	SearchSimple   SearchMode = "simple"
	SearchAdvanced SearchMode = "advanced"
)

// Capabilities gates which operations and search affordances exist for an
// entity. The flags are authoritative: an absent capability means the
// corresponding command must not be offered nor invoked, independent of
// whatever data or endpoints happen to exist.
type Capabilities struct {
	CRUD   []Capability
	Search []SearchMode
	Export bool
}

// Can reports whether the capability set grants the given CRUD verb.
func (c Capabilities) Can(cap Capability) bool {
	for _, granted := range c.CRUD {
		if granted == cap {
			return true
		}
	}
	return false
}

// CanCreate reports whether create is granted.
func (c Capabilities) CanCreate() bool { return c.Can(CapCreate) }

// CanRead reports whether read is granted.
func (c Capabilities) CanRead() bool { return c.Can(CapRead) }

// CanUpdate reports whether update is granted.
func (c Capabilities) CanUpdate() bool { return c.Can(CapUpdate) }

// CanDelete reports whether delete is granted.
func (c Capabilities) CanDelete() bool { return c.Can(CapDelete) }

// SearchEnabled reports whether the given search mode is granted.
func (c Capabilities) SearchEnabled(mode SearchMode) bool {
	for _, granted := range c.Search {
		if granted == mode {
			return true
		}
	}
	return false
}

// Endpoints holds the entity's API paths. Base is prefixed to every named
// endpoint; paths containing ":id" are templates expanded via PathWithID.
type Endpoints struct {
	Base           string
	List           string
	Create         string
	Read           string
	Update         string
	Delete         string
	Search         string
	Filter         string
	AdvancedFilter string
	Export         string
}

// PathWithID expands the ":id" placeholder of an endpoint template.
func PathWithID(template, id string) string {
	return strings.ReplaceAll(template, ":id", url.PathEscape(id))
}

// Sort pairs a field key with a direction ("ASC" or "DESC").
type Sort struct {
	Field     string
	Direction string
}

// UIDefaults holds the presentation defaults of an entity's dashboard page.
type UIDefaults struct {
	DefaultSort           Sort
	PageSize              int
	AutoSearchField       string
	AutoSearchPlaceholder string
	AutoSearchMinLength   int
	Breadcrumbs           []string
	ExportFilename        string
}

// RowAction is one per-row action offered in the table. Handler names the
// operation it triggers ("view", "edit", "delete") and must correspond to a
// capability the entity grants. Condition, when set, decides per row whether
// the action is offered.
type RowAction struct {
	Key       string
	Label     string
	Variant   string
	Handler   string
	Condition func(row map[string]interface{}) bool
}

// EntityConfig binds everything the dashboard needs for one entity: its
// unified fields, capability flags, API endpoints, UI defaults, and row
// actions.
type EntityConfig struct {
	Entity           string
	DisplayName      string
	EntityName       string
	EntityNamePlural string
	Fields           []Field
	Capabilities     Capabilities
	API              Endpoints
	UI               UIDefaults
	Actions          []RowAction
}

// handlerCapabilities maps action handler names to the capability each one
// requires.
var handlerCapabilities = map[string]Capability{
	"view":   CapRead,
	"edit":   CapUpdate,
	"delete": CapDelete,
}

// Validate checks the structural invariants of a config. It is called once
// at registration so malformed configs fail at startup, not at use time.
func (c *EntityConfig) Validate() error {
	if c.Entity == "" {
		return fmt.Errorf("entity machine name is required")
	}
	if len(c.Fields) == 0 {
		return fmt.Errorf("entity '%s': at least one field is required", c.Entity)
	}

	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f.Key == "" {
			return fmt.Errorf("entity '%s': field with empty key", c.Entity)
		}
		if seen[f.Key] {
			return fmt.Errorf("entity '%s': duplicate field key '%s'", c.Entity, f.Key)
		}
		seen[f.Key] = true
	}

	if c.UI.DefaultSort.Field != "" {
		if err := c.ValidateSortField(c.UI.DefaultSort.Field); err != nil {
			return fmt.Errorf("entity '%s': default sort: %w", c.Entity, err)
		}
	}

	if c.UI.AutoSearchField != "" {
		autoFields := GetAutoSearchFields(c.Fields)
		found := false
		for _, key := range autoFields {
			if key == c.UI.AutoSearchField {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("entity '%s': auto-search field '%s' is not an auto-searchable field", c.Entity, c.UI.AutoSearchField)
		}
	}

	for _, action := range c.Actions {
		required, known := handlerCapabilities[action.Handler]
		if !known {
			return fmt.Errorf("entity '%s': action '%s' has unknown handler '%s'", c.Entity, action.Key, action.Handler)
		}
		if !c.Capabilities.Can(required) {
			return fmt.Errorf("entity '%s': action '%s' requires capability '%s' which is not granted", c.Entity, action.Key, required)
		}
	}

	return nil
}

// ValidateSortField checks that a field key exists and is sortable.
func (c *EntityConfig) ValidateSortField(key string) error {
	for _, col := range GetTableColumns(c.Fields) {
		if col.Key == key {
			if !col.Sortable {
				return fmt.Errorf("field '%s' is not sortable", key)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown field '%s'", key)
}

// FieldByKey returns the field with the given key, if present.
func (c *EntityConfig) FieldByKey(key string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
