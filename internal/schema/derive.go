package schema

import "strings"

// TableColumn is the table-consumer projection of a Field.
type TableColumn struct {
	Key      string
	Label    string
	Type     FieldType
	Sortable bool
	Render   RenderFunc
	Width    string
	Align    Align
}

// SearchField is the search-form projection of a Field.
type SearchField struct {
	Key         string
	Label       string
	Type        FieldType
	Placeholder string
	Options     []SelectOption
	Validation  *FieldValidation
}

// GetTableColumns maps every field to a table column, preserving order.
// No field is filtered out; sortable defaults to true and alignment to left.
func GetTableColumns(fields []Field) []TableColumn {
	columns := make([]TableColumn, 0, len(fields))
	for _, f := range fields {
		col := TableColumn{
			Key:      f.Key,
			Label:    f.Label,
			Type:     f.Type,
			Sortable: true,
			Align:    AlignLeft,
		}
		if f.Table != nil {
			if f.Table.Sortable != nil {
				col.Sortable = *f.Table.Sortable
			}
			col.Render = f.Table.Render
			col.Width = f.Table.Width
			if f.Table.Align != "" {
				col.Align = f.Table.Align
			}
		}
		columns = append(columns, col)
	}
	return columns
}

// GetSearchFields maps searchable fields to search-form fields, preserving
// order. Fields explicitly marked non-searchable are dropped. A missing
// placeholder gets the default "Buscar por {label}..." with the label
// lowercased.
func GetSearchFields(fields []Field) []SearchField {
	searchFields := make([]SearchField, 0, len(fields))
	for _, f := range fields {
		if f.Search != nil && f.Search.Searchable != nil && !*f.Search.Searchable {
			continue
		}
		sf := SearchField{
			Key:   f.Key,
			Label: f.Label,
			Type:  f.Type,
		}
		if f.Search != nil {
			sf.Placeholder = f.Search.Placeholder
			sf.Options = f.Search.Options
			sf.Validation = f.Search.Validation
		}
		if sf.Placeholder == "" {
			sf.Placeholder = "Buscar por " + strings.ToLower(f.Label) + "..."
		}
		searchFields = append(searchFields, sf)
	}
	return searchFields
}

// GetAutoSearchFields returns the keys of the fields eligible for the quick
// auto-search box: text and email fields not marked non-searchable, in
// declaration order.
func GetAutoSearchFields(fields []Field) []string {
	keys := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Type != TypeText && f.Type != TypeEmail {
			continue
		}
		if f.Search != nil && f.Search.Searchable != nil && !*f.Search.Searchable {
			continue
		}
		keys = append(keys, f.Key)
	}
	return keys
}
