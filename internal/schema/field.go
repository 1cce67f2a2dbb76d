package schema

// FieldType is the semantic type of an entity attribute. It governs the
// default table rendering and the kind of search input offered for the field.
type FieldType string

// Supported field types
const (
	TypeText    FieldType = "text"
	TypeNumber  FieldType = "number"
	TypeEmail   FieldType = "email"
	TypeSelect  FieldType = "select"
	TypeDate    FieldType = "date"
	TypeBoolean FieldType = "boolean"
)

// Align controls horizontal alignment of a table column.
type Align string

// Column alignments
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// RenderFunc projects a raw cell value (plus its full row, for renders that
// combine attributes) into the string shown in the table. It must be a pure
// function: no state mutation, no I/O.
type RenderFunc func(value interface{}, row map[string]interface{}) string

// SelectOption is one choice of a select or boolean search field.
type SelectOption struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// FieldValidation holds the pre-submission validation rules for a field.
type FieldValidation struct {
	MinLength int
	MaxLength int
	Pattern   string
}

// TableOptions customizes how a field is displayed as a table column.
// A nil Sortable means sortable; a nil Render means "raw value, or '-' when
// the value is absent or falsy".
type TableOptions struct {
	Sortable *bool
	Render   RenderFunc
	Width    string
	Align    Align
}

// SearchOptions customizes how a field participates in search forms.
// A nil Searchable means searchable.
type SearchOptions struct {
	Searchable  *bool
	Placeholder string
	Options     []SelectOption
	Validation  *FieldValidation
}

// Field is the unified per-attribute descriptor: the single source of truth
// for how one entity attribute is displayed in tables and offered in search
// forms. Key must match a property name on the entity's records.
type Field struct {
	Key    string
	Label  string
	Type   FieldType
	Table  *TableOptions
	Search *SearchOptions
}

// Bool returns a pointer to b, for the tri-state Sortable/Searchable flags.
func Bool(b bool) *bool {
	return &b
}
