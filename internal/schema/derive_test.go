package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() []Field {
	return []Field{
		{Key: "firstName", Label: "Nombre", Type: TypeText},
		{Key: "email", Label: "Correo Electrónico", Type: TypeEmail},
		{Key: "age", Label: "Edad", Type: TypeNumber, Table: &TableOptions{Sortable: Bool(false), Align: AlignRight}},
		{
			Key:    "internalCode",
			Label:  "Código Interno",
			Type:   TypeText,
			Search: &SearchOptions{Searchable: Bool(false)},
		},
		{
			Key:   "isActive",
			Label: "Activo",
			Type:  TypeBoolean,
			Search: &SearchOptions{
				Placeholder: "Filtrar por estado",
				Options: []SelectOption{
					{Value: "true", Label: "Activo"},
					{Value: "false", Label: "Inactivo"},
				},
			},
		},
	}
}

func TestGetTableColumns_EveryFieldBecomesAColumn(t *testing.T) {
	fields := sampleFields()
	columns := GetTableColumns(fields)

	require.Len(t, columns, len(fields))
	for i, col := range columns {
		assert.Equal(t, fields[i].Key, col.Key, "column order must match field order")
	}
}

func TestGetTableColumns_Defaults(t *testing.T) {
	columns := GetTableColumns(sampleFields())

	// No table options: sortable, left-aligned.
	assert.True(t, columns[0].Sortable)
	assert.Equal(t, AlignLeft, columns[0].Align)
	assert.Nil(t, columns[0].Render)

	// Explicit options win.
	assert.False(t, columns[2].Sortable)
	assert.Equal(t, AlignRight, columns[2].Align)
}

func TestGetTableColumns_Empty(t *testing.T) {
	assert.Empty(t, GetTableColumns(nil))
	assert.Empty(t, GetTableColumns([]Field{}))
}

func TestGetSearchFields_DropsNonSearchable(t *testing.T) {
	searchFields := GetSearchFields(sampleFields())

	keys := make([]string, 0, len(searchFields))
	for _, sf := range searchFields {
		keys = append(keys, sf.Key)
	}
	assert.Equal(t, []string{"firstName", "email", "age", "isActive"}, keys)
	assert.NotContains(t, keys, "internalCode")
}

func TestGetSearchFields_PlaceholderContract(t *testing.T) {
	searchFields := GetSearchFields(sampleFields())

	// Default placeholder lowercases the label.
	assert.Equal(t, "Buscar por nombre...", searchFields[0].Placeholder)
	assert.Equal(t, "Buscar por correo electrónico...", searchFields[1].Placeholder)

	// An explicit placeholder is kept as-is.
	assert.Equal(t, "Filtrar por estado", searchFields[3].Placeholder)
}

func TestGetSearchFields_CarriesOptionsAndValidation(t *testing.T) {
	fields := []Field{
		{
			Key:   "isbnCode",
			Label: "ISBN",
			Type:  TypeText,
			Search: &SearchOptions{
				Validation: &FieldValidation{MinLength: 10, MaxLength: 13},
			},
		},
	}

	searchFields := GetSearchFields(fields)
	require.Len(t, searchFields, 1)
	require.NotNil(t, searchFields[0].Validation)
	assert.Equal(t, 10, searchFields[0].Validation.MinLength)
}

func TestGetSearchFields_Empty(t *testing.T) {
	assert.Empty(t, GetSearchFields(nil))
}

func TestGetAutoSearchFields_OnlyTextAndEmail(t *testing.T) {
	keys := GetAutoSearchFields(sampleFields())

	// age (number), isActive (boolean) and the non-searchable internalCode
	// are all excluded.
	assert.Equal(t, []string{"firstName", "email"}, keys)
}

func TestGetAutoSearchFields_Empty(t *testing.T) {
	assert.Empty(t, GetAutoSearchFields(nil))
}
