// Package controller holds the pagination/sort/search state machine behind
// every entity dashboard. All mutation happens through the transition
// methods; each transition re-issues a fetch in the mode it implies.
package controller

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/yavemu/bookadmin/internal/models"
	"github.com/yavemu/bookadmin/internal/schema"
	"github.com/yavemu/bookadmin/internal/utils"
)

// Mode determines which endpoint the next fetch uses.
type Mode string

// Fetch modes
const (
	ModeList           Mode = "list"
	ModeSearch         Mode = "search"
	ModeFilter         Mode = "filter"
	ModeAdvancedFilter Mode = "advanced-filter"
)

// defaultAutoSearchMinLength applies when an entity config leaves the
// auto-search threshold unset.
const defaultAutoSearchMinLength = 3

// Service is the data-access collaborator the controller fetches through.
// The controller never performs network I/O itself.
type Service interface {
	List(p models.ListParams) (*models.ListResult, error)
	Search(term string, p models.ListParams) (*models.ListResult, error)
	Filter(filters map[string]string, p models.ListParams) (*models.ListResult, error)
	AdvancedFilter(filters map[string]string, p models.ListParams) (*models.ListResult, error)
}

// Controller is the per-entity dashboard state machine.
type Controller struct {
	mu  sync.Mutex
	cfg *schema.EntityConfig
	svc Service

	page         int
	pageSize     int
	sortBy       string
	sortOrder    string
	mode         Mode
	searchParams map[string]string
	autoActive   bool

	data    []models.Record
	meta    *models.PaginationMeta
	loading bool
	lastErr error

	// seq numbers every issued fetch; a completion older than the latest
	// issued fetch is discarded so out-of-order responses never win.
	seq uint64
}

// Option adjusts the initial state of a controller before its first fetch.
type Option func(*Controller)

// WithPage sets the initial page.
func WithPage(n int) Option {
	return func(c *Controller) {
		if n >= 1 {
			c.page = n
		}
	}
}

// WithPageSize sets the initial page size.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithSort sets the initial sort. The field must already be validated
// against the entity config by the caller.
func WithSort(field, direction string) Option {
	return func(c *Controller) {
		c.sortBy = field
		c.sortOrder = strings.ToUpper(direction)
	}
}

// New creates a controller at the entity's default sort and first page.
func New(cfg *schema.EntityConfig, svc Service, opts ...Option) *Controller {
	pageSize := cfg.UI.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	c := &Controller{
		cfg:          cfg,
		svc:          svc,
		page:         1,
		pageSize:     pageSize,
		sortBy:       cfg.UI.DefaultSort.Field,
		sortOrder:    cfg.UI.DefaultSort.Direction,
		mode:         ModeList,
		searchParams: map[string]string{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetPage moves to page n, clamped to [1, totalPages] once metadata is
// known, and re-fetches in the current mode.
func (c *Controller) SetPage(n int) error {
	c.mu.Lock()
	if n < 1 {
		n = 1
	}
	if c.meta != nil && c.meta.TotalPages > 0 && n > c.meta.TotalPages {
		n = c.meta.TotalPages
	}
	c.page = n
	c.mu.Unlock()

	return c.fetch()
}

// SetSort changes the sort field and direction, resets to the first page,
// and re-fetches. The field must be sortable per the entity config.
func (c *Controller) SetSort(field, direction string) error {
	if err := c.cfg.ValidateSortField(field); err != nil {
		return err
	}

	direction = strings.ToUpper(direction)
	if direction != models.SortAsc && direction != models.SortDesc {
		return utils.NewValidationError("sortOrder", "sort direction must be ASC or DESC")
	}

	c.mu.Lock()
	c.sortBy = field
	c.sortOrder = direction
	c.page = 1
	c.mu.Unlock()

	return c.fetch()
}

// SetPageSize changes the page size, resets to the first page, and
// re-fetches.
func (c *Controller) SetPageSize(n int) error {
	if n <= 0 {
		return utils.NewValidationError("pageSize", "page size must be greater than zero")
	}

	c.mu.Lock()
	c.pageSize = n
	c.page = 1
	c.mu.Unlock()

	return c.fetch()
}

// RunSearch enters simple search mode with the given term.
func (c *Controller) RunSearch(term string) error {
	if !c.cfg.Capabilities.SearchEnabled(schema.SearchSimple) {
		return utils.NewCapabilityError(c.cfg.Entity, "search")
	}

	c.mu.Lock()
	c.mode = ModeSearch
	c.searchParams = map[string]string{"term": term}
	c.page = 1
	c.autoActive = false
	c.mu.Unlock()

	return c.fetch()
}

// RunFilter enters filter mode (or advanced-filter mode) with the given
// per-field parameters.
func (c *Controller) RunFilter(params map[string]string, advanced bool) error {
	if !c.cfg.Capabilities.SearchEnabled(schema.SearchAdvanced) {
		return utils.NewCapabilityError(c.cfg.Entity, "filter")
	}

	c.mu.Lock()
	if advanced {
		c.mode = ModeAdvancedFilter
	} else {
		c.mode = ModeFilter
	}
	c.searchParams = copyParams(params)
	c.page = 1
	c.autoActive = false
	c.mu.Unlock()

	return c.fetch()
}

// RunAutoFilter applies the quick-search term against the entity's
// auto-search field. Terms below the minimum length issue no fetch; an
// emptied term returns to list mode only when auto search was active.
func (c *Controller) RunAutoFilter(term string) error {
	if !c.cfg.Capabilities.SearchEnabled(schema.SearchAuto) {
		return utils.NewCapabilityError(c.cfg.Entity, "auto-search")
	}

	minLength := c.cfg.UI.AutoSearchMinLength
	if minLength <= 0 {
		minLength = defaultAutoSearchMinLength
	}

	if utf8.RuneCountInString(term) < minLength {
		if term == "" {
			c.mu.Lock()
			wasActive := c.autoActive
			c.mu.Unlock()
			if wasActive {
				return c.ClearSearch()
			}
		}
		return nil
	}

	c.mu.Lock()
	c.mode = ModeFilter
	c.searchParams = map[string]string{c.cfg.UI.AutoSearchField: term}
	c.page = 1
	c.autoActive = true
	c.mu.Unlock()

	return c.fetch()
}

// ClearSearch returns to list mode, drops all search parameters, resets to
// the first page, and re-fetches.
func (c *Controller) ClearSearch() error {
	c.mu.Lock()
	c.mode = ModeList
	c.searchParams = map[string]string{}
	c.page = 1
	c.autoActive = false
	c.mu.Unlock()

	return c.fetch()
}

// Refresh re-issues the fetch for the current mode with unchanged
// parameters. Used after create/update/delete.
func (c *Controller) Refresh() error {
	return c.fetch()
}

// fetch snapshots the current parameters, calls the service outside the
// lock, and applies the result only if no newer fetch was issued meanwhile.
// On failure the previous data and metadata are kept so a transient error
// does not blank the table.
func (c *Controller) fetch() error {
	c.mu.Lock()
	c.seq++
	thisSeq := c.seq
	c.loading = true
	mode := c.mode
	params := copyParams(c.searchParams)
	listParams := models.ListParams{
		Page:      c.page,
		Limit:     c.pageSize,
		SortBy:    c.sortBy,
		SortOrder: c.sortOrder,
	}
	c.mu.Unlock()

	var result *models.ListResult
	var err error

	switch mode {
	case ModeSearch:
		result, err = c.svc.Search(params["term"], listParams)
	case ModeFilter:
		result, err = c.svc.Filter(params, listParams)
	case ModeAdvancedFilter:
		result, err = c.svc.AdvancedFilter(params, listParams)
	default:
		result, err = c.svc.List(listParams)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if thisSeq != c.seq {
		// A newer fetch was issued while this one was in flight.
		return nil
	}

	c.loading = false
	if err != nil {
		c.lastErr = err
		return err
	}

	meta := result.Meta
	c.data = result.Data
	c.meta = &meta
	c.lastErr = nil
	if meta.CurrentPage > 0 {
		c.page = meta.CurrentPage
	}
	return nil
}

// Data returns the current page of records.
func (c *Controller) Data() []models.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	data := make([]models.Record, len(c.data))
	copy(data, c.data)
	return data
}

// Meta returns the current pagination metadata, or nil before the first
// successful fetch.
func (c *Controller) Meta() *models.PaginationMeta {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.meta == nil {
		return nil
	}
	meta := *c.meta
	return &meta
}

// Page returns the current page number.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// PageSize returns the current page size.
func (c *Controller) PageSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pageSize
}

// Sort returns the current sort field and direction.
func (c *Controller) Sort() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortBy, c.sortOrder
}

// Mode returns the active fetch mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SearchParams returns a copy of the active search parameters.
func (c *Controller) SearchParams() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyParams(c.searchParams)
}

// Err returns the error of the last fetch, nil after a successful one.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func copyParams(params map[string]string) map[string]string {
	copied := make(map[string]string, len(params))
	for key, value := range params {
		copied[key] = value
	}
	return copied
}
