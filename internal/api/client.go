package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yavemu/bookadmin/internal/config"
	"github.com/yavemu/bookadmin/internal/models"
	"github.com/yavemu/bookadmin/internal/schema"
	"github.com/yavemu/bookadmin/internal/utils"
)

// Client is the HTTP client for the bookstore backend. All entity calls go
// through it; endpoint paths come from the entity configuration.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	token      string
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	cfg := config.Get()
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		token: cfg.Auth.Token,
	}
}

// errorPayload is the backend's error body shape.
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// metaPayload accepts both generations of pagination metadata: the unified
// names (currentPage/totalItems/itemsPerPage) and the legacy ones
// (page/total/limit/pages). normalize folds them into the canonical shape.
type metaPayload struct {
	CurrentPage  int   `json:"currentPage"`
	Page         int   `json:"page"`
	TotalPages   int   `json:"totalPages"`
	Pages        int   `json:"pages"`
	TotalItems   int   `json:"totalItems"`
	Total        int   `json:"total"`
	ItemsPerPage int   `json:"itemsPerPage"`
	Limit        int   `json:"limit"`
	HasNextPage  *bool `json:"hasNextPage"`
	HasPrevPage  *bool `json:"hasPrevPage"`
}

func (m *metaPayload) normalize(fallbackCount int) models.PaginationMeta {
	meta := models.PaginationMeta{
		CurrentPage:  firstPositive(m.CurrentPage, m.Page, 1),
		TotalPages:   firstPositive(m.TotalPages, m.Pages, 1),
		TotalItems:   firstPositive(m.TotalItems, m.Total, fallbackCount),
		ItemsPerPage: firstPositive(m.ItemsPerPage, m.Limit, fallbackCount),
	}
	if m.HasNextPage != nil {
		meta.HasNextPage = *m.HasNextPage
	} else {
		meta.HasNextPage = meta.CurrentPage < meta.TotalPages
	}
	if m.HasPrevPage != nil {
		meta.HasPrevPage = *m.HasPrevPage
	} else {
		meta.HasPrevPage = meta.CurrentPage > 1
	}
	return meta
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// listPayload is the backend's list response envelope.
type listPayload struct {
	Data []models.Record `json:"data"`
	Meta *metaPayload    `json:"meta"`
}

// List fetches one page of an entity's records.
func (c *Client) List(cfg *schema.EntityConfig, p models.ListParams) (*models.ListResult, error) {
	return c.fetchList(cfg, cfg.API.List, listQuery(p))
}

// Search runs the simple term search against the entity's search endpoint.
func (c *Client) Search(cfg *schema.EntityConfig, term string, p models.ListParams) (*models.ListResult, error) {
	query := listQuery(p)
	query.Set("term", term)
	return c.fetchList(cfg, cfg.API.Search, query)
}

// Filter runs the per-field filter against the entity's filter endpoint.
func (c *Client) Filter(cfg *schema.EntityConfig, filters map[string]string, p models.ListParams) (*models.ListResult, error) {
	query := listQuery(p)
	for key, value := range filters {
		query.Set(key, value)
	}
	return c.fetchList(cfg, cfg.API.Filter, query)
}

// AdvancedFilter posts a multi-field filter to the advanced endpoint.
func (c *Client) AdvancedFilter(cfg *schema.EntityConfig, filters map[string]string, p models.ListParams) (*models.ListResult, error) {
	body := map[string]interface{}{
		"filters":    filters,
		"pagination": p,
	}

	data, err := c.doRequest(http.MethodPost, cfg.API.Base+cfg.API.AdvancedFilter, listQuery(p), body)
	if err != nil {
		return nil, err
	}
	return parseListPayload(data)
}

// GetByID fetches a single record.
func (c *Client) GetByID(cfg *schema.EntityConfig, id string) (models.Record, error) {
	data, err := c.doRequest(http.MethodGet, cfg.API.Base+schema.PathWithID(cfg.API.Read, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return parseRecordPayload(data)
}

// Create creates a new record.
func (c *Client) Create(cfg *schema.EntityConfig, dto map[string]interface{}) (models.Record, error) {
	data, err := c.doRequest(http.MethodPost, cfg.API.Base+cfg.API.Create, nil, dto)
	if err != nil {
		return nil, err
	}
	return parseRecordPayload(data)
}

// Update updates an existing record.
func (c *Client) Update(cfg *schema.EntityConfig, id string, dto map[string]interface{}) (models.Record, error) {
	data, err := c.doRequest(http.MethodPut, cfg.API.Base+schema.PathWithID(cfg.API.Update, id), nil, dto)
	if err != nil {
		return nil, err
	}
	return parseRecordPayload(data)
}

// Delete removes a record.
func (c *Client) Delete(cfg *schema.EntityConfig, id string) (*models.DeleteResult, error) {
	data, err := c.doRequest(http.MethodDelete, cfg.API.Base+schema.PathWithID(cfg.API.Delete, id), nil, nil)
	if err != nil {
		return nil, err
	}

	result := &models.DeleteResult{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return result, nil
}

// ExportCSV fetches the entity's CSV export and returns the raw bytes.
func (c *Client) ExportCSV(cfg *schema.EntityConfig, p models.ListParams) ([]byte, error) {
	return c.doRequest(http.MethodGet, cfg.API.Base+cfg.API.Export, listQuery(p), nil)
}

// Login authenticates against the backend and returns the session payload.
// Persisting the token is the caller's responsibility.
func (c *Client) Login(email, password string) (*models.LoginResponse, error) {
	body := models.LoginRequest{Email: email, Password: password}

	data, err := c.doRequest(http.MethodPost, "/api/auth/login", nil, body)
	if err != nil {
		return nil, err
	}

	response := &models.LoginResponse{}
	if err := json.Unmarshal(data, response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return response, nil
}

// Health probes the backend health endpoint with a short timeout so the
// status command answers quickly when the backend is offline.
func (c *Client) Health() (*models.HealthStatus, error) {
	client := &http.Client{Timeout: config.Get().HealthCheckTimeout()}

	resp, err := client.Get(c.BaseURL + "/health")
	if err != nil {
		return nil, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, utils.NewAPIError(resp.StatusCode, "health check failed", "")
	}

	status := &models.HealthStatus{}
	if err := json.Unmarshal(body, status); err != nil {
		// Some deployments answer health checks with plain text.
		status.Status = strings.TrimSpace(string(body))
	}
	return status, nil
}

// fetchList performs a GET against a list-shaped endpoint.
func (c *Client) fetchList(cfg *schema.EntityConfig, path string, query url.Values) (*models.ListResult, error) {
	data, err := c.doRequest(http.MethodGet, cfg.API.Base+path, query, nil)
	if err != nil {
		return nil, err
	}
	return parseListPayload(data)
}

// doRequest executes one HTTP request and returns the response body, or a
// typed *utils.APIError for non-2xx statuses.
func (c *Client) doRequest(method, path string, query url.Values, body interface{}) ([]byte, error) {
	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		payload := errorPayload{}
		if err := json.Unmarshal(respBody, &payload); err == nil {
			message := payload.Message
			if message == "" {
				message = payload.Error
			}
			if message != "" {
				return nil, utils.NewAPIError(resp.StatusCode, message, payload.Code)
			}
		}
		return nil, utils.NewAPIError(resp.StatusCode, http.StatusText(resp.StatusCode), "")
	}

	return respBody, nil
}

// parseListPayload decodes a list envelope and normalizes its metadata.
func parseListPayload(data []byte) (*models.ListResult, error) {
	payload := listPayload{}
	if err := json.Unmarshal(data, &payload); err != nil {
		// Legacy list endpoints answer with a bare array.
		records := []models.Record{}
		if arrErr := json.Unmarshal(data, &records); arrErr != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		payload.Data = records
	}

	if payload.Data == nil {
		payload.Data = []models.Record{}
	}

	meta := metaPayload{}
	if payload.Meta != nil {
		meta = *payload.Meta
	}

	return &models.ListResult{
		Data: payload.Data,
		Meta: meta.normalize(len(payload.Data)),
	}, nil
}

// parseRecordPayload decodes a single-record response, enveloped or not.
func parseRecordPayload(data []byte) (models.Record, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if inner, ok := raw["data"]; ok {
		record := models.Record{}
		if err := json.Unmarshal(inner, &record); err == nil {
			return record, nil
		}
	}

	record := models.Record{}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return record, nil
}

// listQuery converts list params into the backend's query string shape.
func listQuery(p models.ListParams) url.Values {
	query := url.Values{}
	if p.Page > 0 {
		query.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SortBy != "" {
		query.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		query.Set("sortOrder", p.SortOrder)
	}
	return query
}
