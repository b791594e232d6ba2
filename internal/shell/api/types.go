package api

// StatusSuccess is the status field of every successful search response.
const StatusSuccess = "success"

// =============================================================================
// Response Types
// =============================================================================

// SearchResponse is the body of a successful search. Data holds the page of
// records in list mode and a single record in single mode. The pagination
// totals are only present in list mode.
type SearchResponse struct {
	Status     string `json:"status"`
	Data       any    `json:"data"`
	Mensaje    string `json:"mensaje"`
	StatusCode int    `json:"status_code"`
	Total      *int   `json:"total,omitempty"`
	Page       *int   `json:"page,omitempty"`
	PageSize   *int   `json:"page_size,omitempty"`
}

// ErrorResponse is the body of a rejected search.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse is the response for readiness check.
type ReadyResponse struct {
	Status  string            `json:"status"`
	Records int               `json:"records"`
	Checks  map[string]string `json:"checks"`
}

// =============================================================================
// Document Types
// =============================================================================

// These types only describe responses in the OpenAPI document.

type recordDoc struct {
	CURP      string `json:"CURP" doc:"Clave Única de Registro de Población"`
	Nombres   string `json:"nombres"`
	ApPaterno string `json:"ap_paterno"`
	ApMaterno string `json:"ap_materno"`
	Apellidos string `json:"apellidos" doc:"ap_materno y ap_paterno separados por un espacio"`
}

type searchListDoc struct {
	Status     string      `json:"status"`
	Data       []recordDoc `json:"data"`
	Mensaje    string      `json:"mensaje"`
	StatusCode int         `json:"status_code"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
}

type searchSingleDoc struct {
	Status     string    `json:"status"`
	Data       recordDoc `json:"data"`
	Mensaje    string    `json:"mensaje"`
	StatusCode int       `json:"status_code"`
}
