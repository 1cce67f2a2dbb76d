package dashboard

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavemu/bookadmin/internal/controller"
	"github.com/yavemu/bookadmin/internal/models"
)

// fakeListService serves canned pages to a controller under test.
type fakeListService struct {
	methods []string
	meta    models.PaginationMeta
}

func (f *fakeListService) page(p models.ListParams) *models.ListResult {
	meta := f.meta
	meta.CurrentPage = p.Page
	return &models.ListResult{
		Data: []models.Record{{"firstName": "Gabriel", "lastName": "García Márquez"}},
		Meta: meta,
	}
}

func (f *fakeListService) List(p models.ListParams) (*models.ListResult, error) {
	f.methods = append(f.methods, "list")
	return f.page(p), nil
}

func (f *fakeListService) Search(term string, p models.ListParams) (*models.ListResult, error) {
	f.methods = append(f.methods, "search")
	return f.page(p), nil
}

func (f *fakeListService) Filter(filters map[string]string, p models.ListParams) (*models.ListResult, error) {
	f.methods = append(f.methods, "filter")
	return f.page(p), nil
}

func (f *fakeListService) AdvancedFilter(filters map[string]string, p models.ListParams) (*models.ListResult, error) {
	f.methods = append(f.methods, "advanced-filter")
	return f.page(p), nil
}

func TestBrowseSession_Script(t *testing.T) {
	cfg := mustConfig(t, "authors")
	svc := &fakeListService{meta: models.PaginationMeta{TotalPages: 4, TotalItems: 35, ItemsPerPage: 10}}
	ctrl := controller.New(cfg, svc)

	input := strings.NewReader("n\nsort firstName asc\nsearch gabo\nclear\nq\n")
	var out bytes.Buffer

	session := NewBrowseSession(cfg, ctrl, input, &out)
	require.NoError(t, session.Run())

	// initial refresh, next page, sort, search, clear
	assert.Equal(t, []string{"list", "list", "list", "search", "list"}, svc.methods)
	assert.Equal(t, controller.ModeList, ctrl.Mode())
	assert.Equal(t, 1, ctrl.Page())

	output := out.String()
	assert.Contains(t, output, "Gestión de Autores")
	assert.Contains(t, output, "authors> ")
	assert.Contains(t, output, "Modo: search")
}

func TestBrowseSession_UnknownCommand(t *testing.T) {
	cfg := mustConfig(t, "authors")
	svc := &fakeListService{meta: models.PaginationMeta{TotalPages: 1, TotalItems: 1, ItemsPerPage: 10}}
	ctrl := controller.New(cfg, svc)

	input := strings.NewReader("frobnicate\nq\n")
	var out bytes.Buffer

	session := NewBrowseSession(cfg, ctrl, input, &out)
	require.NoError(t, session.Run())

	assert.Contains(t, out.String(), "comando desconocido 'frobnicate'")
}

func TestBrowseSession_FilterValidation(t *testing.T) {
	cfg := mustConfig(t, "authors")
	svc := &fakeListService{meta: models.PaginationMeta{TotalPages: 1, TotalItems: 1, ItemsPerPage: 10}}
	ctrl := controller.New(cfg, svc)

	// createdAt is not searchable, so the filter is rejected before any fetch.
	input := strings.NewReader("f createdAt=2024\nq\n")
	var out bytes.Buffer

	session := NewBrowseSession(cfg, ctrl, input, &out)
	require.NoError(t, session.Run())

	assert.Equal(t, []string{"list"}, svc.methods, "only the initial refresh reaches the service")
	assert.Contains(t, out.String(), "Error:")
}

func TestBrowseSession_EOFEndsSession(t *testing.T) {
	cfg := mustConfig(t, "authors")
	svc := &fakeListService{meta: models.PaginationMeta{TotalPages: 1, TotalItems: 1, ItemsPerPage: 10}}
	ctrl := controller.New(cfg, svc)

	var out bytes.Buffer
	session := NewBrowseSession(cfg, ctrl, strings.NewReader(""), &out)
	require.NoError(t, session.Run())
}
