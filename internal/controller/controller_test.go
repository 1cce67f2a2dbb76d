package controller

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yavemu/bookadmin/internal/models"
	"github.com/yavemu/bookadmin/internal/schema"
	"github.com/yavemu/bookadmin/internal/utils"
)

type call struct {
	method  string
	term    string
	filters map[string]string
	params  models.ListParams
}

// fakeService records every fetch the controller issues. listFn, when set,
// overrides the canned List response.
type fakeService struct {
	mu     sync.Mutex
	calls  []call
	result *models.ListResult
	err    error
	listFn func(p models.ListParams) (*models.ListResult, error)
}

func (f *fakeService) record(c call) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *fakeService) respond() (*models.ListResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		result := *f.result
		return &result, nil
	}
	return &models.ListResult{Meta: models.PaginationMeta{CurrentPage: 1, TotalPages: 1, ItemsPerPage: 10}}, nil
}

func (f *fakeService) List(p models.ListParams) (*models.ListResult, error) {
	f.record(call{method: "list", params: p})
	if f.listFn != nil {
		return f.listFn(p)
	}
	return f.respond()
}

func (f *fakeService) Search(term string, p models.ListParams) (*models.ListResult, error) {
	f.record(call{method: "search", term: term, params: p})
	return f.respond()
}

func (f *fakeService) Filter(filters map[string]string, p models.ListParams) (*models.ListResult, error) {
	f.record(call{method: "filter", filters: filters, params: p})
	return f.respond()
}

func (f *fakeService) AdvancedFilter(filters map[string]string, p models.ListParams) (*models.ListResult, error) {
	f.record(call{method: "advanced-filter", filters: filters, params: p})
	return f.respond()
}

func (f *fakeService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeService) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func testConfig() *schema.EntityConfig {
	return &schema.EntityConfig{
		Entity:      "authors",
		DisplayName: "Autores",
		Fields: []schema.Field{
			{Key: "firstName", Label: "Nombre", Type: schema.TypeText},
			{Key: "createdAt", Label: "Fecha de Registro", Type: schema.TypeDate},
		},
		Capabilities: schema.Capabilities{
			CRUD:   []schema.Capability{schema.CapCreate, schema.CapRead, schema.CapUpdate, schema.CapDelete},
			Search: []schema.SearchMode{schema.SearchAuto, schema.SearchSimple, schema.SearchAdvanced},
			Export: true,
		},
		UI: schema.UIDefaults{
			DefaultSort:     schema.Sort{Field: "createdAt", Direction: models.SortDesc},
			PageSize:        10,
			AutoSearchField: "firstName",
		},
	}
}

func readOnlyConfig() *schema.EntityConfig {
	cfg := testConfig()
	cfg.Entity = "audit"
	cfg.Capabilities = schema.Capabilities{
		CRUD:   []schema.Capability{schema.CapRead},
		Search: []schema.SearchMode{schema.SearchAdvanced},
	}
	return cfg
}

func TestInitialFetchUsesConfigDefaults(t *testing.T) {
	svc := &fakeService{}
	c := New(testConfig(), svc)

	require.NoError(t, c.Refresh())

	require.Equal(t, 1, svc.callCount())
	got := svc.lastCall()
	assert.Equal(t, "list", got.method)
	assert.Equal(t, models.ListParams{Page: 1, Limit: 10, SortBy: "createdAt", SortOrder: "DESC"}, got.params)
}

func TestOptionsOverrideInitialState(t *testing.T) {
	svc := &fakeService{}
	c := New(testConfig(), svc, WithPage(3), WithPageSize(25), WithSort("firstName", "asc"))

	require.NoError(t, c.Refresh())

	got := svc.lastCall()
	assert.Equal(t, models.ListParams{Page: 3, Limit: 25, SortBy: "firstName", SortOrder: "ASC"}, got.params)
}

func TestSetPageClampsToTotalPages(t *testing.T) {
	svc := &fakeService{result: &models.ListResult{
		Meta: models.PaginationMeta{CurrentPage: 1, TotalPages: 5, TotalItems: 50, ItemsPerPage: 10},
	}}
	c := New(testConfig(), svc)
	require.NoError(t, c.Refresh())

	svc.result.Meta.CurrentPage = 5
	require.NoError(t, c.SetPage(9))

	assert.Equal(t, 5, svc.lastCall().params.Page)
	assert.Equal(t, 5, c.Page())

	require.NoError(t, c.SetPage(-2))
	assert.Equal(t, 1, svc.lastCall().params.Page)
}

func TestSetSortResetsPage(t *testing.T) {
	svc := &fakeService{result: &models.ListResult{
		Meta: models.PaginationMeta{CurrentPage: 3, TotalPages: 5, TotalItems: 50, ItemsPerPage: 10},
	}}
	c := New(testConfig(), svc, WithPage(3))
	require.NoError(t, c.Refresh())
	require.Equal(t, 3, c.Page())

	svc.result.Meta.CurrentPage = 1
	require.NoError(t, c.SetSort("firstName", "asc"))

	got := svc.lastCall()
	assert.Equal(t, 1, got.params.Page)
	assert.Equal(t, "firstName", got.params.SortBy)
	assert.Equal(t, "ASC", got.params.SortOrder)
	assert.Equal(t, 1, c.Page())
}

func TestSetSortRejectsUnknownFieldWithoutFetch(t *testing.T) {
	svc := &fakeService{}
	c := New(testConfig(), svc)

	require.Error(t, c.SetSort("nope", "ASC"))
	require.Error(t, c.SetSort("firstName", "sideways"))
	assert.Equal(t, 0, svc.callCount())
}

func TestSearchOnReadOnlyEntityIssuesNoFetch(t *testing.T) {
	svc := &fakeService{}
	c := New(readOnlyConfig(), svc)

	err := c.RunSearch("garcía")
	require.Error(t, err)
	assert.True(t, utils.IsCapabilityError(err))

	err = c.RunAutoFilter("garcía")
	require.Error(t, err)
	assert.True(t, utils.IsCapabilityError(err))

	assert.Equal(t, 0, svc.callCount())
	assert.Equal(t, ModeList, c.Mode())
}

func TestAdvancedFilterAllowedOnReadOnlyEntity(t *testing.T) {
	svc := &fakeService{}
	c := New(readOnlyConfig(), svc)

	require.NoError(t, c.RunFilter(map[string]string{"action": "DELETE"}, true))

	got := svc.lastCall()
	assert.Equal(t, "advanced-filter", got.method)
	assert.Equal(t, map[string]string{"action": "DELETE"}, got.filters)
	assert.Equal(t, ModeAdvancedFilter, c.Mode())
}

func TestRunSearchSetsModeAndTerm(t *testing.T) {
	svc := &fakeService{}
	c := New(testConfig(), svc)

	require.NoError(t, c.RunSearch("cien años"))

	got := svc.lastCall()
	assert.Equal(t, "search", got.method)
	assert.Equal(t, "cien años", got.term)
	assert.Equal(t, 1, got.params.Page)
	assert.Equal(t, ModeSearch, c.Mode())
}

func TestAutoFilterThreshold(t *testing.T) {
	svc := &fakeService{}
	c := New(testConfig(), svc)

	// Below the minimum length nothing is fetched.
	require.NoError(t, c.RunAutoFilter("ga"))
	assert.Equal(t, 0, svc.callCount())
	assert.Equal(t, ModeList, c.Mode())

	require.NoError(t, c.RunAutoFilter("gab"))
	got := svc.lastCall()
	assert.Equal(t, "filter", got.method)
	assert.Equal(t, map[string]string{"firstName": "gab"}, got.filters)
	assert.Equal(t, ModeFilter, c.Mode())

	// Emptying the term after an active auto search returns to list mode.
	require.NoError(t, c.RunAutoFilter(""))
	assert.Equal(t, "list", svc.lastCall().method)
	assert.Equal(t, ModeList, c.Mode())
	assert.Empty(t, c.SearchParams())
}

func TestAutoFilterEmptyTermWithoutActiveSearch(t *testing.T) {
	svc := &fakeService{}
	c := New(testConfig(), svc)

	require.NoError(t, c.RunAutoFilter(""))
	assert.Equal(t, 0, svc.callCount())
}

func TestAutoFilterCountsRunesNotBytes(t *testing.T) {
	svc := &fakeService{}
	c := New(testConfig(), svc)

	// Two runes, four bytes: still below the threshold.
	require.NoError(t, c.RunAutoFilter("ñé"))
	assert.Equal(t, 0, svc.callCount())

	require.NoError(t, c.RunAutoFilter("ñéo"))
	assert.Equal(t, 1, svc.callCount())
}

func TestClearSearchResetsState(t *testing.T) {
	svc := &fakeService{}
	c := New(testConfig(), svc)

	require.NoError(t, c.RunFilter(map[string]string{"firstName": "gabriel"}, false))
	require.NoError(t, c.ClearSearch())

	assert.Equal(t, ModeList, c.Mode())
	assert.Equal(t, 1, c.Page())
	assert.Empty(t, c.SearchParams())
	assert.Equal(t, "list", svc.lastCall().method)
}

func TestFetchErrorKeepsPreviousData(t *testing.T) {
	svc := &fakeService{result: &models.ListResult{
		Data: []models.Record{{"id": "1", "firstName": "Gabriel"}},
		Meta: models.PaginationMeta{CurrentPage: 1, TotalPages: 1, TotalItems: 1, ItemsPerPage: 10},
	}}
	c := New(testConfig(), svc)
	require.NoError(t, c.Refresh())
	require.Len(t, c.Data(), 1)

	svc.mu.Lock()
	svc.err = errors.New("connection refused")
	svc.mu.Unlock()

	require.Error(t, c.Refresh())

	assert.Len(t, c.Data(), 1, "stale data survives a failed refresh")
	require.NotNil(t, c.Meta())
	assert.Equal(t, 1, c.Meta().TotalItems)
	assert.Error(t, c.Err())
}

func TestOverlappingFetchesLastIssuedWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	svc := &fakeService{}
	svc.listFn = func(p models.ListParams) (*models.ListResult, error) {
		if p.Page == 1 {
			// Hold the first fetch until the second has completed.
			close(started)
			<-release
			return &models.ListResult{
				Data: []models.Record{{"id": "stale"}},
				Meta: models.PaginationMeta{CurrentPage: 1, TotalPages: 3, TotalItems: 30, ItemsPerPage: 10},
			}, nil
		}
		return &models.ListResult{
			Data: []models.Record{{"id": "fresh"}},
			Meta: models.PaginationMeta{CurrentPage: 2, TotalPages: 3, TotalItems: 30, ItemsPerPage: 10},
		}, nil
	}

	c := New(testConfig(), svc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Refresh() // page 1, blocked on release
	}()

	// Wait for the first fetch to reach the service before issuing the second.
	<-started

	require.NoError(t, c.SetPage(2))
	close(release)
	wg.Wait()

	data := c.Data()
	require.Len(t, data, 1)
	assert.Equal(t, "fresh", data[0]["id"], "the slow stale response must not overwrite the newer one")
	assert.Equal(t, 2, c.Page())
}
