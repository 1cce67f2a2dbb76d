package api

import (
	"github.com/yavemu/bookadmin/internal/models"
	"github.com/yavemu/bookadmin/internal/schema"
)

// EntityService binds a Client to one entity's endpoints, giving the state
// controller a service collaborator that already knows where to fetch from.
type EntityService struct {
	client *Client
	cfg    *schema.EntityConfig
}

// NewEntityService creates a service for one entity.
func NewEntityService(client *Client, cfg *schema.EntityConfig) *EntityService {
	return &EntityService{client: client, cfg: cfg}
}

// List fetches one page via the entity's list endpoint.
func (s *EntityService) List(p models.ListParams) (*models.ListResult, error) {
	return s.client.List(s.cfg, p)
}

// Search fetches one page via the entity's search endpoint.
func (s *EntityService) Search(term string, p models.ListParams) (*models.ListResult, error) {
	return s.client.Search(s.cfg, term, p)
}

// Filter fetches one page via the entity's filter endpoint.
func (s *EntityService) Filter(filters map[string]string, p models.ListParams) (*models.ListResult, error) {
	return s.client.Filter(s.cfg, filters, p)
}

// AdvancedFilter fetches one page via the entity's advanced filter endpoint.
func (s *EntityService) AdvancedFilter(filters map[string]string, p models.ListParams) (*models.ListResult, error) {
	return s.client.AdvancedFilter(s.cfg, filters, p)
}
