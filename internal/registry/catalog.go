package registry

import (
	"github.com/spf13/cast"

	"github.com/yavemu/bookadmin/internal/schema"
)

// Catalog entities: authors, books, genres, publishers.

func authorsConfig() *schema.EntityConfig {
	return &schema.EntityConfig{
		Entity:           "authors",
		DisplayName:      "Gestión de Autores",
		EntityName:       "autor",
		EntityNamePlural: "autores",
		Fields: []schema.Field{
			{
				Key:   "firstName",
				Label: "Nombre",
				Type:  schema.TypeText,
				Search: &schema.SearchOptions{
					Validation: &schema.FieldValidation{MinLength: 2, MaxLength: 100},
				},
			},
			{
				Key:   "lastName",
				Label: "Apellido",
				Type:  schema.TypeText,
				Search: &schema.SearchOptions{
					Validation: &schema.FieldValidation{MinLength: 2, MaxLength: 100},
				},
			},
			{
				Key:   "nationality",
				Label: "Nacionalidad",
				Type:  schema.TypeText,
			},
			{
				Key:   "birthDate",
				Label: "Fecha de Nacimiento",
				Type:  schema.TypeDate,
				Table: &schema.TableOptions{Render: renderDate, Align: schema.AlignCenter},
			},
			{
				Key:    "createdAt",
				Label:  "Fecha de Creación",
				Type:   schema.TypeDate,
				Table:  &schema.TableOptions{Render: renderDate, Align: schema.AlignCenter},
				Search: &schema.SearchOptions{Searchable: schema.Bool(false)},
			},
		},
		Capabilities: schema.Capabilities{
			CRUD:   []schema.Capability{schema.CapCreate, schema.CapRead, schema.CapUpdate, schema.CapDelete},
			Search: []schema.SearchMode{schema.SearchAuto, schema.SearchSimple, schema.SearchAdvanced},
			Export: true,
		},
		API: crudEndpoints("/api/authors"),
		UI: schema.UIDefaults{
			DefaultSort:           schema.Sort{Field: "createdAt", Direction: "DESC"},
			PageSize:              10,
			AutoSearchField:       "firstName",
			AutoSearchPlaceholder: "Buscar autores...",
			AutoSearchMinLength:   3,
			Breadcrumbs:           []string{"Inicio", "Autores"},
			ExportFilename:        "autores.csv",
		},
		Actions: defaultActions(),
	}
}

func booksConfig() *schema.EntityConfig {
	return &schema.EntityConfig{
		Entity:           "books",
		DisplayName:      "Gestión de Libros",
		EntityName:       "libro",
		EntityNamePlural: "libros",
		Fields: []schema.Field{
			{
				Key:   "title",
				Label: "Título",
				Type:  schema.TypeText,
				Search: &schema.SearchOptions{
					Validation: &schema.FieldValidation{MinLength: 2, MaxLength: 255},
				},
			},
			{
				Key:   "isbnCode",
				Label: "ISBN",
				Type:  schema.TypeText,
				Table: &schema.TableOptions{Width: "16"},
				Search: &schema.SearchOptions{
					Placeholder: "Buscar por código ISBN...",
					Validation:  &schema.FieldValidation{MinLength: 10, MaxLength: 13, Pattern: `^[0-9-]+$`},
				},
			},
			{
				Key:   "price",
				Label: "Precio",
				Type:  schema.TypeNumber,
				Table: &schema.TableOptions{Render: renderPrice, Align: schema.AlignRight, Width: "10"},
			},
			{
				Key:   "isAvailable",
				Label: "Disponible",
				Type:  schema.TypeBoolean,
				Table: &schema.TableOptions{
					Render: renderBool("Sí", "No"),
					Align:  schema.AlignCenter,
				},
				Search: &schema.SearchOptions{
					Options: []schema.SelectOption{
						{Value: "true", Label: "Disponible"},
						{Value: "false", Label: "No disponible"},
					},
				},
			},
			{
				Key:   "stockQuantity",
				Label: "Stock",
				Type:  schema.TypeNumber,
				Table: &schema.TableOptions{Align: schema.AlignRight, Width: "8"},
			},
			{
				Key:   "genreName",
				Label: "Género",
				Type:  schema.TypeText,
				Table: &schema.TableOptions{Sortable: schema.Bool(false)},
			},
			{
				Key:   "publisherName",
				Label: "Editorial",
				Type:  schema.TypeText,
				Table: &schema.TableOptions{Sortable: schema.Bool(false)},
			},
			{
				Key:    "createdAt",
				Label:  "Fecha de Creación",
				Type:   schema.TypeDate,
				Table:  &schema.TableOptions{Render: renderDate, Align: schema.AlignCenter},
				Search: &schema.SearchOptions{Searchable: schema.Bool(false)},
			},
		},
		Capabilities: schema.Capabilities{
			CRUD:   []schema.Capability{schema.CapCreate, schema.CapRead, schema.CapUpdate, schema.CapDelete},
			Search: []schema.SearchMode{schema.SearchAuto, schema.SearchSimple, schema.SearchAdvanced},
			Export: true,
		},
		API: crudEndpoints("/api/books"),
		UI: schema.UIDefaults{
			DefaultSort:           schema.Sort{Field: "createdAt", Direction: "DESC"},
			PageSize:              10,
			AutoSearchField:       "title",
			AutoSearchPlaceholder: "Buscar libros...",
			AutoSearchMinLength:   3,
			Breadcrumbs:           []string{"Inicio", "Libros"},
			ExportFilename:        "libros.csv",
		},
		Actions: []schema.RowAction{
			{Key: "view", Label: "Ver", Variant: "secondary", Handler: "view"},
			{Key: "edit", Label: "Editar", Variant: "primary", Handler: "edit"},
			{
				Key:     "delete",
				Label:   "Eliminar",
				Variant: "danger",
				Handler: "delete",
				// Books with stock on hand cannot be removed from the catalog.
				Condition: func(row map[string]interface{}) bool {
					return cast.ToInt(row["stockQuantity"]) == 0
				},
			},
		},
	}
}

func genresConfig() *schema.EntityConfig {
	return &schema.EntityConfig{
		Entity:           "genres",
		DisplayName:      "Gestión de Géneros",
		EntityName:       "género",
		EntityNamePlural: "géneros",
		Fields: []schema.Field{
			{
				Key:   "name",
				Label: "Nombre",
				Type:  schema.TypeText,
				Search: &schema.SearchOptions{
					Validation: &schema.FieldValidation{MinLength: 2, MaxLength: 100},
				},
			},
			{
				Key:   "description",
				Label: "Descripción",
				Type:  schema.TypeText,
				Table: &schema.TableOptions{Sortable: schema.Bool(false), Width: "40"},
			},
			{
				Key:    "createdAt",
				Label:  "Fecha de Creación",
				Type:   schema.TypeDate,
				Table:  &schema.TableOptions{Render: renderDate, Align: schema.AlignCenter},
				Search: &schema.SearchOptions{Searchable: schema.Bool(false)},
			},
		},
		Capabilities: schema.Capabilities{
			CRUD:   []schema.Capability{schema.CapCreate, schema.CapRead, schema.CapUpdate, schema.CapDelete},
			Search: []schema.SearchMode{schema.SearchAuto, schema.SearchSimple},
			Export: true,
		},
		API: crudEndpoints("/api/genres"),
		UI: schema.UIDefaults{
			DefaultSort:           schema.Sort{Field: "name", Direction: "ASC"},
			PageSize:              10,
			AutoSearchField:       "name",
			AutoSearchPlaceholder: "Buscar géneros...",
			AutoSearchMinLength:   3,
			Breadcrumbs:           []string{"Inicio", "Géneros"},
			ExportFilename:        "generos.csv",
		},
		Actions: defaultActions(),
	}
}

func publishersConfig() *schema.EntityConfig {
	return &schema.EntityConfig{
		Entity:           "publishers",
		DisplayName:      "Gestión de Editoriales",
		EntityName:       "editorial",
		EntityNamePlural: "editoriales",
		Fields: []schema.Field{
			{
				Key:   "name",
				Label: "Nombre",
				Type:  schema.TypeText,
				Search: &schema.SearchOptions{
					Validation: &schema.FieldValidation{MinLength: 2, MaxLength: 150},
				},
			},
			{
				Key:   "country",
				Label: "País",
				Type:  schema.TypeText,
			},
			{
				Key:   "websiteUrl",
				Label: "Sitio Web",
				Type:  schema.TypeText,
				Table: &schema.TableOptions{Sortable: schema.Bool(false)},
				Search: &schema.SearchOptions{
					Searchable: schema.Bool(false),
				},
			},
			{
				Key:    "createdAt",
				Label:  "Fecha de Creación",
				Type:   schema.TypeDate,
				Table:  &schema.TableOptions{Render: renderDate, Align: schema.AlignCenter},
				Search: &schema.SearchOptions{Searchable: schema.Bool(false)},
			},
		},
		Capabilities: schema.Capabilities{
			CRUD:   []schema.Capability{schema.CapCreate, schema.CapRead, schema.CapUpdate, schema.CapDelete},
			Search: []schema.SearchMode{schema.SearchAuto, schema.SearchSimple},
			Export: true,
		},
		API: crudEndpoints("/api/publishers"),
		UI: schema.UIDefaults{
			DefaultSort:           schema.Sort{Field: "name", Direction: "ASC"},
			PageSize:              10,
			AutoSearchField:       "name",
			AutoSearchPlaceholder: "Buscar editoriales...",
			AutoSearchMinLength:   3,
			Breadcrumbs:           []string{"Inicio", "Editoriales"},
			ExportFilename:        "editoriales.csv",
		},
		Actions: defaultActions(),
	}
}

// defaultActions returns the standard view/edit/delete row actions used by
// entities with full CRUD.
func defaultActions() []schema.RowAction {
	return []schema.RowAction{
		{Key: "view", Label: "Ver", Variant: "secondary", Handler: "view"},
		{Key: "edit", Label: "Editar", Variant: "primary", Handler: "edit"},
		{Key: "delete", Label: "Eliminar", Variant: "danger", Handler: "delete"},
	}
}
