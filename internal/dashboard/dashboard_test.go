package dashboard

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavemu/bookadmin/internal/models"
	"github.com/yavemu/bookadmin/internal/registry"
	"github.com/yavemu/bookadmin/internal/schema"
	"github.com/yavemu/bookadmin/internal/utils"
)

// fakeAPI counts backend calls so capability tests can prove nothing was
// issued.
type fakeAPI struct {
	calls     int
	record    models.Record
	exportErr error
	exportCSV []byte
}

func (f *fakeAPI) GetByID(cfg *schema.EntityConfig, id string) (models.Record, error) {
	f.calls++
	return f.record, nil
}

func (f *fakeAPI) Create(cfg *schema.EntityConfig, dto map[string]interface{}) (models.Record, error) {
	f.calls++
	return f.record, nil
}

func (f *fakeAPI) Update(cfg *schema.EntityConfig, id string, dto map[string]interface{}) (models.Record, error) {
	f.calls++
	return f.record, nil
}

func (f *fakeAPI) Delete(cfg *schema.EntityConfig, id string) (*models.DeleteResult, error) {
	f.calls++
	return &models.DeleteResult{Message: "eliminado"}, nil
}

func (f *fakeAPI) ExportCSV(cfg *schema.EntityConfig, p models.ListParams) ([]byte, error) {
	f.calls++
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return f.exportCSV, nil
}

func mustConfig(t *testing.T, entity string) *schema.EntityConfig {
	t.Helper()
	cfg, err := registry.Get(entity)
	require.NoError(t, err)
	return cfg
}

func TestFooterText(t *testing.T) {
	meta := &models.PaginationMeta{CurrentPage: 1, TotalPages: 1, TotalItems: 5, ItemsPerPage: 10}
	assert.Equal(t, "Mostrando 1 - 5 de 5", FooterText(meta, 5))

	meta = &models.PaginationMeta{CurrentPage: 2, TotalPages: 3, TotalItems: 25, ItemsPerPage: 10}
	assert.Equal(t, "Mostrando 11 - 20 de 25", FooterText(meta, 10))

	meta = &models.PaginationMeta{CurrentPage: 3, TotalPages: 3, TotalItems: 25, ItemsPerPage: 10}
	assert.Equal(t, "Mostrando 21 - 25 de 25", FooterText(meta, 5))

	assert.Equal(t, "Mostrando 0 - 0 de 0", FooterText(nil, 0))
	assert.Equal(t, "Mostrando 0 - 0 de 0", FooterText(&models.PaginationMeta{}, 0))
}

func TestCellValue(t *testing.T) {
	plain := schema.TableColumn{Key: "firstName", Label: "Nombre"}
	assert.Equal(t, "Gabriel", CellValue(plain, models.Record{"firstName": "Gabriel"}))
	assert.Equal(t, "-", CellValue(plain, models.Record{}))
	assert.Equal(t, "-", CellValue(plain, models.Record{"firstName": ""}))

	rendered := schema.TableColumn{
		Key: "isAvailable",
		Render: func(value interface{}, _ map[string]interface{}) string {
			if value == true {
				return "Disponible"
			}
			return "Agotado"
		},
	}
	assert.Equal(t, "Disponible", CellValue(rendered, models.Record{"isAvailable": true}))
	// Render hooks see falsy values too; the "-" substitution is for raw cells only.
	assert.Equal(t, "Agotado", CellValue(rendered, models.Record{"isAvailable": false}))
}

func TestWriteCSV(t *testing.T) {
	cfg := &schema.EntityConfig{
		Entity: "authors",
		Fields: []schema.Field{
			{Key: "firstName", Label: "Nombre", Type: schema.TypeText},
			{Key: "nationality", Label: "Nacionalidad", Type: schema.TypeText},
		},
	}

	var buf bytes.Buffer
	err := WriteCSV(&buf, cfg, []models.Record{
		{"firstName": "Gabriel", "nationality": "Colombiana"},
		{"firstName": "Isabel", "nationality": ""},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Nombre,Nacionalidad", lines[0])
	assert.Equal(t, "Gabriel,Colombiana", lines[1])
	assert.Equal(t, "Isabel,-", lines[2])
}

func TestValidateDTO(t *testing.T) {
	cfg := mustConfig(t, "books")

	err := ValidateDTO(cfg, map[string]interface{}{
		"title":    "Cien años de soledad",
		"isbnCode": "9780307474728",
		"price":    19.99,
	})
	assert.NoError(t, err)

	err = ValidateDTO(cfg, map[string]interface{}{"price": "gratis"})
	require.Error(t, err)
	var multi *utils.MultiError
	require.True(t, errors.As(err, &multi))

	// Keys without a field config pass through untouched.
	assert.NoError(t, ValidateDTO(cfg, map[string]interface{}{"genreId": "whatever"}))
}

func TestCreateRecord_CapabilityGate(t *testing.T) {
	backend := &fakeAPI{}
	cfg := mustConfig(t, "audit")

	_, err := CreateRecord(backend, cfg, map[string]interface{}{"action": "CREATE"})
	require.Error(t, err)
	assert.True(t, utils.IsCapabilityError(err))
	assert.Equal(t, 0, backend.calls, "a gated operation must not reach the backend")
}

func TestUpdateRecord_CapabilityGate(t *testing.T) {
	backend := &fakeAPI{}
	cfg := mustConfig(t, "inventory-movements")

	_, err := UpdateRecord(backend, cfg, "1", map[string]interface{}{"quantity": "5"})
	require.Error(t, err)
	assert.True(t, utils.IsCapabilityError(err))
	assert.Equal(t, 0, backend.calls)
}

func TestDeleteRecord_CapabilityGate(t *testing.T) {
	backend := &fakeAPI{}
	cfg := mustConfig(t, "audit")

	_, err := DeleteRecord(backend, cfg, "1")
	require.Error(t, err)
	assert.True(t, utils.IsCapabilityError(err))
	assert.Equal(t, 0, backend.calls)
}

func TestDeleteRecord_Allowed(t *testing.T) {
	backend := &fakeAPI{}
	cfg := mustConfig(t, "authors")

	result, err := DeleteRecord(backend, cfg, "1")
	require.NoError(t, err)
	assert.Equal(t, "eliminado", result.Message)
	assert.Equal(t, 1, backend.calls)
}

func TestCreateRecord_InvalidDTOIssuesNoCall(t *testing.T) {
	backend := &fakeAPI{}
	cfg := mustConfig(t, "books")

	_, err := CreateRecord(backend, cfg, map[string]interface{}{"isbnCode": "abc"})
	require.Error(t, err)
	assert.Equal(t, 0, backend.calls)
}

func TestExportRecords_CapabilityGate(t *testing.T) {
	backend := &fakeAPI{}
	cfg := mustConfig(t, "users")

	var buf bytes.Buffer
	err := ExportRecords(backend, cfg, models.ListParams{}, nil, &buf)
	require.Error(t, err)
	assert.True(t, utils.IsCapabilityError(err))
	assert.Equal(t, 0, backend.calls)
}

func TestExportRecords_BackendCSV(t *testing.T) {
	backend := &fakeAPI{exportCSV: []byte("id,nombre\n1,Gabriel\n")}
	cfg := mustConfig(t, "authors")

	var buf bytes.Buffer
	require.NoError(t, ExportRecords(backend, cfg, models.ListParams{}, nil, &buf))
	assert.Equal(t, "id,nombre\n1,Gabriel\n", buf.String())
}

func TestExportRecords_FallbackOnMissingEndpoint(t *testing.T) {
	backend := &fakeAPI{exportErr: utils.NewAPIError(http.StatusNotFound, "Not Found", "")}
	cfg := mustConfig(t, "authors")

	var buf bytes.Buffer
	err := ExportRecords(backend, cfg, models.ListParams{}, []models.Record{
		{"firstName": "Gabriel", "lastName": "García Márquez"},
	}, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Nombre")
	assert.Contains(t, buf.String(), "Gabriel")
}

func TestActionAllowed_Condition(t *testing.T) {
	cfg := mustConfig(t, "books")

	var deleteAction schema.RowAction
	for _, action := range cfg.Actions {
		if action.Handler == "delete" {
			deleteAction = action
		}
	}
	require.NotEmpty(t, deleteAction.Key)

	assert.True(t, ActionAllowed(cfg, deleteAction, models.Record{"stockQuantity": float64(0)}))
	assert.False(t, ActionAllowed(cfg, deleteAction, models.Record{"stockQuantity": float64(7)}))
}

func TestActionAllowed_CapabilityWins(t *testing.T) {
	cfg := mustConfig(t, "audit")
	edit := schema.RowAction{Key: "edit", Label: "Editar", Handler: "edit"}
	assert.False(t, ActionAllowed(cfg, edit, models.Record{}))

	view := schema.RowAction{Key: "view", Label: "Ver", Handler: "view"}
	assert.True(t, ActionAllowed(cfg, view, models.Record{}))
}

func TestRenderPage(t *testing.T) {
	cfg := mustConfig(t, "authors")
	meta := &models.PaginationMeta{CurrentPage: 1, TotalPages: 1, TotalItems: 2, ItemsPerPage: 10}

	var buf bytes.Buffer
	RenderPage(&buf, cfg, []models.Record{
		{"firstName": "Gabriel", "lastName": "García Márquez", "nationality": "Colombiana"},
		{"firstName": "Isabel", "lastName": "Allende", "nationality": "Chilena"},
	}, meta)

	out := buf.String()
	assert.Contains(t, out, "Inicio > Autores")
	assert.Contains(t, out, cfg.DisplayName)
	assert.Contains(t, out, "Gabriel")
	assert.Contains(t, out, "Mostrando 1 - 2 de 2")
}

func TestRenderPage_Empty(t *testing.T) {
	cfg := mustConfig(t, "authors")

	var buf bytes.Buffer
	RenderPage(&buf, cfg, nil, nil)

	out := buf.String()
	assert.Contains(t, out, "No hay registros para mostrar")
	assert.Contains(t, out, "Mostrando 0 - 0 de 0")
}
