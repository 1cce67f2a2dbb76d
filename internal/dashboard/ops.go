package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/spf13/cast"

	"github.com/yavemu/bookadmin/internal/models"
	"github.com/yavemu/bookadmin/internal/schema"
	"github.com/yavemu/bookadmin/internal/utils"
)

// API is the backend surface the dashboard operations use. *api.Client
// implements it; tests substitute a fake.
type API interface {
	GetByID(cfg *schema.EntityConfig, id string) (models.Record, error)
	Create(cfg *schema.EntityConfig, dto map[string]interface{}) (models.Record, error)
	Update(cfg *schema.EntityConfig, id string, dto map[string]interface{}) (models.Record, error)
	Delete(cfg *schema.EntityConfig, id string) (*models.DeleteResult, error)
	ExportCSV(cfg *schema.EntityConfig, p models.ListParams) ([]byte, error)
}

// The operations below are the single entry points for entity mutations.
// Each one checks the capability gate before touching the network, so an
// ungated call on a read-only entity fails as a CapabilityError with zero
// requests issued.

// GetRecord fetches a single record, gated by the read capability.
func GetRecord(backend API, cfg *schema.EntityConfig, id string) (models.Record, error) {
	if !cfg.Capabilities.CanRead() {
		return nil, utils.NewCapabilityError(cfg.Entity, "read")
	}
	return backend.GetByID(cfg, id)
}

// CreateRecord validates the DTO and creates a record, gated by the create
// capability.
func CreateRecord(backend API, cfg *schema.EntityConfig, dto map[string]interface{}) (models.Record, error) {
	if !cfg.Capabilities.CanCreate() {
		return nil, utils.NewCapabilityError(cfg.Entity, "create")
	}
	if err := ValidateDTO(cfg, dto); err != nil {
		return nil, err
	}
	return backend.Create(cfg, dto)
}

// UpdateRecord validates the DTO and updates a record, gated by the update
// capability.
func UpdateRecord(backend API, cfg *schema.EntityConfig, id string, dto map[string]interface{}) (models.Record, error) {
	if !cfg.Capabilities.CanUpdate() {
		return nil, utils.NewCapabilityError(cfg.Entity, "update")
	}
	if err := ValidateDTO(cfg, dto); err != nil {
		return nil, err
	}
	return backend.Update(cfg, id, dto)
}

// DeleteRecord removes a record, gated by the delete capability.
func DeleteRecord(backend API, cfg *schema.EntityConfig, id string) (*models.DeleteResult, error) {
	if !cfg.Capabilities.CanDelete() {
		return nil, utils.NewCapabilityError(cfg.Entity, "delete")
	}
	return backend.Delete(cfg, id)
}

// ExportRecords writes the entity's CSV export, gated by the export
// capability. When the backend has no export endpoint the CSV is built
// client-side from the provided page.
func ExportRecords(backend API, cfg *schema.EntityConfig, p models.ListParams, fallback []models.Record, w io.Writer) error {
	if !cfg.Capabilities.Export {
		return utils.NewCapabilityError(cfg.Entity, "export")
	}

	data, err := backend.ExportCSV(cfg, p)
	if err == nil {
		_, err = w.Write(data)
		return err
	}
	if !utils.IsNotFoundError(err) {
		return err
	}
	return WriteCSV(w, cfg, fallback)
}

// WriteCSV builds a CSV from records using the entity's table columns,
// applying the same render hooks the table uses.
func WriteCSV(w io.Writer, cfg *schema.EntityConfig, data []models.Record) error {
	columns := schema.GetTableColumns(cfg.Fields)

	writer := csv.NewWriter(w)

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Label
	}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range data {
		values := make([]string, len(columns))
		for i, col := range columns {
			values[i] = CellValue(col, row)
		}
		if err := writer.Write(values); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ValidateDTO checks every DTO value that corresponds to a configured field
// against that field's validation rules. Keys without a field config (ids,
// foreign keys) pass through untouched.
func ValidateDTO(cfg *schema.EntityConfig, dto map[string]interface{}) error {
	errs := utils.NewMultiError()
	for key, value := range dto {
		field, ok := cfg.FieldByKey(key)
		if !ok {
			continue
		}
		if err := utils.ValidateFieldValue(field, cast.ToString(value)); err != nil {
			errs.Add(err)
		}
	}
	return errs.ErrOrNil()
}

// ActionAllowed reports whether a row action is offered for a row: the
// handler's capability must be granted and the per-row condition, if any,
// must hold.
func ActionAllowed(cfg *schema.EntityConfig, action schema.RowAction, row models.Record) bool {
	switch action.Handler {
	case "view":
		if !cfg.Capabilities.CanRead() {
			return false
		}
	case "edit":
		if !cfg.Capabilities.CanUpdate() {
			return false
		}
	case "delete":
		if !cfg.Capabilities.CanDelete() {
			return false
		}
	default:
		return false
	}
	if action.Condition != nil {
		return action.Condition(row)
	}
	return true
}
