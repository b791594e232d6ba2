package search

import "net/url"

// =============================================================================
// Query
// =============================================================================

// Query is one search request as received from a client.
type Query struct {
	// Method is the raw method name; "" requests the whole table.
	Method string
	// Value is the search value, possibly still percent-encoded; nil when
	// absent.
	Value *string
	// Value2 is the ap_paterno value for two-field apellidos
	// searches; nil when absent.
	Value2 *string
	// Page is 1-indexed.
	Page     int
	PageSize int
}

// NewQuery builds a query with default pagination.
func NewQuery(method string, value *string) Query {
	return Query{
		Method:   method,
		Value:    value,
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

// decode percent-decodes a search value. '+' is kept literally and a
// malformed escape leaves the value unchanged.
func decode(v string) string {
	out, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return out
}
