package registry

import "github.com/yavemu/bookadmin/internal/schema"

// Administrative entities: users, inventory movements, audit logs.

func usersConfig() *schema.EntityConfig {
	return &schema.EntityConfig{
		Entity:           "users",
		DisplayName:      "Gestión de Usuarios",
		EntityName:       "usuario",
		EntityNamePlural: "usuarios",
		Fields: []schema.Field{
			{
				Key:   "username",
				Label: "Nombre de Usuario",
				Type:  schema.TypeText,
				Search: &schema.SearchOptions{
					Validation: &schema.FieldValidation{MinLength: 3, MaxLength: 50},
				},
			},
			{
				Key:   "email",
				Label: "Correo Electrónico",
				Type:  schema.TypeEmail,
			},
			{
				Key:   "role",
				Label: "Rol",
				Type:  schema.TypeSelect,
				Table: &schema.TableOptions{Align: schema.AlignCenter},
				Search: &schema.SearchOptions{
					Options: []schema.SelectOption{
						{Value: "admin", Label: "Administrador"},
						{Value: "user", Label: "Usuario"},
					},
				},
			},
			{
				Key:   "isActive",
				Label: "Activo",
				Type:  schema.TypeBoolean,
				Table: &schema.TableOptions{
					Render: renderBool("Activo", "Inactivo"),
					Align:  schema.AlignCenter,
				},
				Search: &schema.SearchOptions{
					Options: []schema.SelectOption{
						{Value: "true", Label: "Activo"},
						{Value: "false", Label: "Inactivo"},
					},
				},
			},
			{
				Key:    "createdAt",
				Label:  "Fecha de Registro",
				Type:   schema.TypeDate,
				Table:  &schema.TableOptions{Render: renderDate, Align: schema.AlignCenter},
				Search: &schema.SearchOptions{Searchable: schema.Bool(false)},
			},
		},
		Capabilities: schema.Capabilities{
			CRUD:   []schema.Capability{schema.CapCreate, schema.CapRead, schema.CapUpdate, schema.CapDelete},
			Search: []schema.SearchMode{schema.SearchAuto, schema.SearchSimple},
		},
		API: crudEndpoints("/api/users"),
		UI: schema.UIDefaults{
			DefaultSort:           schema.Sort{Field: "createdAt", Direction: "DESC"},
			PageSize:              10,
			AutoSearchField:       "username",
			AutoSearchPlaceholder: "Buscar usuarios...",
			AutoSearchMinLength:   3,
			Breadcrumbs:           []string{"Inicio", "Usuarios"},
		},
		Actions: defaultActions(),
	}
}

func inventoryMovementsConfig() *schema.EntityConfig {
	return &schema.EntityConfig{
		Entity:           "inventory-movements",
		DisplayName:      "Movimientos de Inventario",
		EntityName:       "movimiento",
		EntityNamePlural: "movimientos",
		Fields: []schema.Field{
			{
				Key:   "entityName",
				Label: "Libro",
				Type:  schema.TypeText,
				Table: &schema.TableOptions{Sortable: schema.Bool(false)},
			},
			{
				Key:   "movementType",
				Label: "Tipo de Movimiento",
				Type:  schema.TypeSelect,
				Table: &schema.TableOptions{Align: schema.AlignCenter},
				Search: &schema.SearchOptions{
					Options: []schema.SelectOption{
						{Value: "PURCHASE", Label: "Compra"},
						{Value: "SALE", Label: "Venta"},
						{Value: "INCREASE", Label: "Incremento"},
						{Value: "DECREASE", Label: "Reducción"},
					},
				},
			},
			{
				Key:   "quantityBefore",
				Label: "Cantidad Anterior",
				Type:  schema.TypeNumber,
				Table: &schema.TableOptions{Align: schema.AlignRight, Width: "10"},
			},
			{
				Key:   "quantityAfter",
				Label: "Cantidad Posterior",
				Type:  schema.TypeNumber,
				Table: &schema.TableOptions{Align: schema.AlignRight, Width: "10"},
			},
			{
				Key:   "userFullName",
				Label: "Usuario",
				Type:  schema.TypeText,
				Table: &schema.TableOptions{Sortable: schema.Bool(false)},
			},
			{
				Key:   "createdAt",
				Label: "Fecha",
				Type:  schema.TypeDate,
				Table: &schema.TableOptions{Render: renderDate, Align: schema.AlignCenter},
			},
		},
		Capabilities: schema.Capabilities{
			CRUD:   []schema.Capability{schema.CapRead},
			Search: []schema.SearchMode{schema.SearchAdvanced},
			Export: true,
		},
		API: crudEndpoints("/api/inventory-movements"),
		UI: schema.UIDefaults{
			DefaultSort:    schema.Sort{Field: "createdAt", Direction: "DESC"},
			PageSize:       20,
			Breadcrumbs:    []string{"Inicio", "Inventario"},
			ExportFilename: "movimientos_inventario.csv",
		},
		Actions: []schema.RowAction{
			{Key: "view", Label: "Ver", Variant: "secondary", Handler: "view"},
		},
	}
}

func auditConfig() *schema.EntityConfig {
	return &schema.EntityConfig{
		Entity:           "audit",
		DisplayName:      "Auditoría",
		EntityName:       "registro de auditoría",
		EntityNamePlural: "registros de auditoría",
		Fields: []schema.Field{
			{
				Key:   "action",
				Label: "Acción",
				Type:  schema.TypeSelect,
				Table: &schema.TableOptions{Align: schema.AlignCenter},
				Search: &schema.SearchOptions{
					Options: []schema.SelectOption{
						{Value: "CREATE", Label: "Creación"},
						{Value: "UPDATE", Label: "Actualización"},
						{Value: "DELETE", Label: "Eliminación"},
						{Value: "LOGIN", Label: "Inicio de sesión"},
					},
				},
			},
			{
				Key:   "entityType",
				Label: "Entidad",
				Type:  schema.TypeText,
			},
			{
				Key:   "entityId",
				Label: "ID de Entidad",
				Type:  schema.TypeText,
				Table: &schema.TableOptions{Sortable: schema.Bool(false), Width: "12"},
			},
			{
				Key:   "performedBy",
				Label: "Realizado Por",
				Type:  schema.TypeText,
			},
			{
				Key:    "details",
				Label:  "Detalles",
				Type:   schema.TypeText,
				Table:  &schema.TableOptions{Sortable: schema.Bool(false), Width: "40"},
				Search: &schema.SearchOptions{Searchable: schema.Bool(false)},
			},
			{
				Key:   "createdAt",
				Label: "Fecha",
				Type:  schema.TypeDate,
				Table: &schema.TableOptions{Render: renderDate, Align: schema.AlignCenter},
			},
		},
		Capabilities: schema.Capabilities{
			CRUD:   []schema.Capability{schema.CapRead},
			Search: []schema.SearchMode{schema.SearchAdvanced},
			Export: true,
		},
		API: crudEndpoints("/api/audit"),
		UI: schema.UIDefaults{
			DefaultSort:    schema.Sort{Field: "createdAt", Direction: "DESC"},
			PageSize:       20,
			Breadcrumbs:    []string{"Inicio", "Auditoría"},
			ExportFilename: "auditoria.csv",
		},
		Actions: []schema.RowAction{
			{Key: "view", Label: "Ver", Variant: "secondary", Handler: "view"},
		},
	}
}
