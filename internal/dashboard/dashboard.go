// Package dashboard builds the per-entity command tree from an entity
// configuration: every subcommand, flag, and affordance is derived from the
// config's fields and capability flags, never hard-coded per entity.
package dashboard

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yavemu/bookadmin/internal/api"
	"github.com/yavemu/bookadmin/internal/config"
	"github.com/yavemu/bookadmin/internal/controller"
	"github.com/yavemu/bookadmin/internal/format"
	"github.com/yavemu/bookadmin/internal/models"
	"github.com/yavemu/bookadmin/internal/registry"
	"github.com/yavemu/bookadmin/internal/schema"
	"github.com/yavemu/bookadmin/internal/utils"
)

// NewEntityCommand builds the command group for a registered entity. An
// unregistered name is a programming error and panics at startup.
func NewEntityCommand(entity string) *cobra.Command {
	cfg, err := registry.Get(entity)
	if err != nil {
		panic(err)
	}

	cmd := &cobra.Command{
		Use:   cfg.Entity,
		Short: cfg.DisplayName,
		Long: fmt.Sprintf(`%s para la librería.

Comandos de consulta y administración de %s contra la API del backend.`,
			cfg.DisplayName, cfg.EntityNamePlural),
	}

	caps := cfg.Capabilities

	if caps.CanRead() {
		cmd.AddCommand(newListCmd(cfg))
		cmd.AddCommand(newGetCmd(cfg))
		cmd.AddCommand(newBrowseCmd(cfg))
	}
	if caps.SearchEnabled(schema.SearchSimple) {
		cmd.AddCommand(newSearchCmd(cfg))
	}
	if caps.SearchEnabled(schema.SearchAdvanced) {
		cmd.AddCommand(newFilterCmd(cfg))
	}
	if caps.SearchEnabled(schema.SearchAuto) {
		cmd.AddCommand(newAutoSearchCmd(cfg))
	}
	if caps.CanCreate() {
		cmd.AddCommand(newCreateCmd(cfg))
	}
	if caps.CanUpdate() {
		cmd.AddCommand(newUpdateCmd(cfg))
	}
	if caps.CanDelete() {
		cmd.AddCommand(newDeleteCmd(cfg))
	}
	if caps.Export {
		cmd.AddCommand(newExportCmd(cfg))
	}

	return cmd
}

// newController wires a controller for one invocation, seeded with the
// pagination flags so the initial fetch already carries them.
func newController(cfg *schema.EntityConfig, page, limit int, sortBy, sortOrder string) (*controller.Controller, *api.Client, error) {
	if sortBy != "" {
		if err := cfg.ValidateSortField(sortBy); err != nil {
			return nil, nil, err
		}
	}

	client := api.NewClient(config.Get().API.URL)
	svc := api.NewEntityService(client, cfg)

	opts := []controller.Option{}
	if page > 0 {
		opts = append(opts, controller.WithPage(page))
	}
	if limit > 0 {
		opts = append(opts, controller.WithPageSize(limit))
	}
	if sortBy != "" {
		opts = append(opts, controller.WithSort(sortBy, sortOrder))
	}

	return controller.New(cfg, svc, opts...), client, nil
}

// printPage renders a fetched page as a table, or hands the raw result to
// the configured formatter for json/yaml/text output.
func printPage(cfg *schema.EntityConfig, ctrl *controller.Controller) error {
	if err := ctrl.Err(); err != nil {
		RenderError(os.Stdout, cfg, err)
		return err
	}
	if config.GetOutputFormat() != "table" {
		return format.Print(models.ListResult{Data: ctrl.Data(), Meta: derefMeta(ctrl.Meta())})
	}
	RenderPage(os.Stdout, cfg, ctrl.Data(), ctrl.Meta())
	return nil
}

func derefMeta(meta *models.PaginationMeta) models.PaginationMeta {
	if meta == nil {
		return models.PaginationMeta{}
	}
	return *meta
}

func newListCmd(cfg *schema.EntityConfig) *cobra.Command {
	var page, limit int
	var sortBy, sortOrder string

	cmd := &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("Listar %s", cfg.EntityNamePlural),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(cfg, page, limit, sortBy, sortOrder)
			if err != nil {
				return err
			}
			if err := ctrl.Refresh(); err != nil {
				RenderError(os.Stdout, cfg, err)
				return err
			}
			return printPage(cfg, ctrl)
		},
	}

	addPaginationFlags(cmd, cfg, &page, &limit, &sortBy, &sortOrder)
	return cmd
}

func newSearchCmd(cfg *schema.EntityConfig) *cobra.Command {
	var page, limit int
	var sortBy, sortOrder string

	cmd := &cobra.Command{
		Use:   "search <término>",
		Short: fmt.Sprintf("Buscar %s por término", cfg.EntityNamePlural),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(cfg, page, limit, sortBy, sortOrder)
			if err != nil {
				return err
			}
			if err := ctrl.RunSearch(strings.Join(args, " ")); err != nil {
				RenderError(os.Stdout, cfg, err)
				return err
			}
			return printPage(cfg, ctrl)
		},
	}

	addPaginationFlags(cmd, cfg, &page, &limit, &sortBy, &sortOrder)
	return cmd
}

func newFilterCmd(cfg *schema.EntityConfig) *cobra.Command {
	var page, limit int
	var sortBy, sortOrder string
	var where []string
	var advanced bool

	searchFields := schema.GetSearchFields(cfg.Fields)
	fieldHelp := make([]string, len(searchFields))
	for i, sf := range searchFields {
		fieldHelp[i] = fmt.Sprintf("  %s\t%s", sf.Key, sf.Placeholder)
	}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: fmt.Sprintf("Filtrar %s por campos", cfg.EntityNamePlural),
		Long: fmt.Sprintf(`Filtrar %s combinando condiciones por campo.

Campos disponibles:
%s`, cfg.EntityNamePlural, strings.Join(fieldHelp, "\n")),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseFieldPairs(where)
			if err != nil {
				return err
			}
			if err := validateFilters(cfg, filters); err != nil {
				return err
			}

			ctrl, _, err := newController(cfg, page, limit, sortBy, sortOrder)
			if err != nil {
				return err
			}
			if err := ctrl.RunFilter(filters, advanced); err != nil {
				RenderError(os.Stdout, cfg, err)
				return err
			}
			return printPage(cfg, ctrl)
		},
	}

	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, "condición campo=valor (repetible)")
	cmd.Flags().BoolVar(&advanced, "advanced", false, "usar el endpoint de filtro avanzado")
	addPaginationFlags(cmd, cfg, &page, &limit, &sortBy, &sortOrder)
	return cmd
}

func newAutoSearchCmd(cfg *schema.EntityConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auto <término>",
		Short: "Búsqueda rápida " + placeholderOrDefault(cfg),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, _, err := newController(cfg, 0, 0, "", "")
			if err != nil {
				return err
			}
			if err := ctrl.RunAutoFilter(args[0]); err != nil {
				RenderError(os.Stdout, cfg, err)
				return err
			}
			if ctrl.Meta() == nil {
				format.PrintWarning("Se requieren al menos %d caracteres", autoMinLength(cfg))
				return nil
			}
			return printPage(cfg, ctrl)
		},
	}
	return cmd
}

func newGetCmd(cfg *schema.EntityConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: fmt.Sprintf("Ver un %s", cfg.EntityName),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(config.Get().API.URL)
			record, err := GetRecord(client, cfg, args[0])
			if err != nil {
				return fmt.Errorf("failed to get %s: %w", cfg.EntityName, err)
			}
			if config.GetOutputFormat() != "table" {
				return format.Print(record)
			}
			RenderRecord(os.Stdout, cfg, record)
			return nil
		},
	}
}

func newCreateCmd(cfg *schema.EntityConfig) *cobra.Command {
	var data string
	var fields []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Crear un %s", cfg.EntityName),
		RunE: func(cmd *cobra.Command, args []string) error {
			dto, err := buildDTO(data, fields)
			if err != nil {
				return err
			}

			client := api.NewClient(config.Get().API.URL)
			record, err := CreateRecord(client, cfg, dto)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", cfg.EntityName, err)
			}

			format.PrintSuccess("✓ %s creado correctamente", titleFirst(cfg.EntityName))
			return format.Print(record)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "cuerpo JSON del registro")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "atributo campo=valor (repetible)")
	return cmd
}

func newUpdateCmd(cfg *schema.EntityConfig) *cobra.Command {
	var data string
	var fields []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Actualizar un %s", cfg.EntityName),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dto, err := buildDTO(data, fields)
			if err != nil {
				return err
			}

			client := api.NewClient(config.Get().API.URL)
			record, err := UpdateRecord(client, cfg, args[0], dto)
			if err != nil {
				return fmt.Errorf("failed to update %s: %w", cfg.EntityName, err)
			}

			format.PrintSuccess("✓ %s actualizado correctamente", titleFirst(cfg.EntityName))
			return format.Print(record)
		},
	}

	cmd.Flags().StringVar(&data, "data", "", "cuerpo JSON con los cambios")
	cmd.Flags().StringArrayVarP(&fields, "field", "f", nil, "atributo campo=valor (repetible)")
	return cmd
}

func newDeleteCmd(cfg *schema.EntityConfig) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Eliminar un %s", cfg.EntityName),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirmDelete(cfg) {
				format.PrintInfo("Operación cancelada")
				return nil
			}

			client := api.NewClient(config.Get().API.URL)
			result, err := DeleteRecord(client, cfg, args[0])
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", cfg.EntityName, err)
			}

			message := result.Message
			if message == "" {
				message = fmt.Sprintf("%s eliminado correctamente", titleFirst(cfg.EntityName))
			}
			format.PrintSuccess("✓ %s", message)

			// Re-fetch so the caller sees the list without the deleted row.
			ctrl, _, err := newController(cfg, 0, 0, "", "")
			if err != nil {
				return err
			}
			if err := ctrl.Refresh(); err != nil {
				RenderError(os.Stdout, cfg, err)
				return err
			}
			return printPage(cfg, ctrl)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "no pedir confirmación")
	return cmd
}

func newExportCmd(cfg *schema.EntityConfig) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: fmt.Sprintf("Exportar %s a CSV", cfg.EntityNamePlural),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := output
			if filename == "" {
				filename = cfg.UI.ExportFilename
			}
			if filename == "" {
				filename = cfg.Entity + ".csv"
			}

			ctrl, client, err := newController(cfg, 0, 0, "", "")
			if err != nil {
				return err
			}
			if err := ctrl.Refresh(); err != nil {
				return fmt.Errorf("failed to export %s: %w", cfg.EntityNamePlural, err)
			}

			file, err := os.Create(filename)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer file.Close()

			params := models.ListParams{SortBy: cfg.UI.DefaultSort.Field, SortOrder: cfg.UI.DefaultSort.Direction}
			if err := ExportRecords(client, cfg, params, ctrl.Data(), file); err != nil {
				return fmt.Errorf("failed to export %s: %w", cfg.EntityNamePlural, err)
			}

			format.PrintSuccess("✓ Exportado a %s", filename)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "O", "", "archivo de salida")
	return cmd
}

// addPaginationFlags registers the pagination and sort flags shared by every
// list-shaped subcommand.
func addPaginationFlags(cmd *cobra.Command, cfg *schema.EntityConfig, page, limit *int, sortBy, sortOrder *string) {
	cmd.Flags().IntVarP(page, "page", "p", 1, "número de página")
	cmd.Flags().IntVarP(limit, "limit", "l", cfg.UI.PageSize, "registros por página")
	cmd.Flags().StringVarP(sortBy, "sort", "s", "", "campo de ordenamiento")
	cmd.Flags().StringVar(sortOrder, "order", cfg.UI.DefaultSort.Direction, "dirección (ASC o DESC)")
}

// buildDTO merges the --data JSON body with --field pairs; pairs win.
func buildDTO(data string, fields []string) (map[string]interface{}, error) {
	dto := map[string]interface{}{}
	if data != "" {
		if err := json.Unmarshal([]byte(data), &dto); err != nil {
			return nil, fmt.Errorf("invalid --data JSON: %w", err)
		}
	}

	pairs, err := parseFieldPairs(fields)
	if err != nil {
		return nil, err
	}
	for key, value := range pairs {
		dto[key] = value
	}

	if len(dto) == 0 {
		return nil, fmt.Errorf("no attributes given: use --data or --field")
	}
	return dto, nil
}

func parseFieldPairs(pairs []string) (map[string]string, error) {
	parsed := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid pair '%s': expected campo=valor", pair)
		}
		parsed[key] = value
	}
	return parsed, nil
}

// validateFilters rejects filters on unknown or non-searchable fields and
// applies each field's validation rules.
func validateFilters(cfg *schema.EntityConfig, filters map[string]string) error {
	searchable := map[string]bool{}
	for _, sf := range schema.GetSearchFields(cfg.Fields) {
		searchable[sf.Key] = true
	}

	for key, value := range filters {
		if !searchable[key] {
			return fmt.Errorf("field '%s' is not searchable for %s", key, cfg.Entity)
		}
		field, _ := cfg.FieldByKey(key)
		if err := utils.ValidateFieldValue(field, value); err != nil {
			return err
		}
	}
	return nil
}

func confirmDelete(cfg *schema.EntityConfig) bool {
	fmt.Printf("¿Está seguro de eliminar este %s? (s/N): ", cfg.EntityName)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "s" || answer == "si" || answer == "sí"
}

func placeholderOrDefault(cfg *schema.EntityConfig) string {
	if cfg.UI.AutoSearchPlaceholder != "" {
		return "(" + cfg.UI.AutoSearchPlaceholder + ")"
	}
	return ""
}

func titleFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func autoMinLength(cfg *schema.EntityConfig) int {
	if cfg.UI.AutoSearchMinLength > 0 {
		return cfg.UI.AutoSearchMinLength
	}
	return 3
}
