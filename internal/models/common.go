package models

// PaginationMeta is the canonical pagination shape used everywhere above the
// API client. The backend has two generations of list endpoints with
// different meta field names; the client normalizes both into this one.
type PaginationMeta struct {
	CurrentPage  int  `json:"currentPage" yaml:"currentPage"`
	TotalPages   int  `json:"totalPages" yaml:"totalPages"`
	TotalItems   int  `json:"totalItems" yaml:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage" yaml:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage" yaml:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage" yaml:"hasPrevPage"`
}

// Record is one entity row as returned by the backend.
type Record = map[string]interface{}

// ListResult is a single page of records plus its pagination metadata.
type ListResult struct {
	Data []Record       `json:"data" yaml:"data"`
	Meta PaginationMeta `json:"meta" yaml:"meta"`
}

// ListParams represents the pagination and sorting parameters sent with
// every list, search, and filter request.
type ListParams struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}

// Sort order values accepted by the backend.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// DeleteResult represents the backend's delete confirmation payload.
type DeleteResult struct {
	Message string `json:"message" yaml:"message"`
}
