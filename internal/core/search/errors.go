package search

import (
	"fmt"
	"net/http"
	"strings"
)

// =============================================================================
// Error Types
// =============================================================================

// ErrorKind classifies a search failure.
type ErrorKind int

const (
	// KindMissingValue: a method was given without a value.
	KindMissingValue ErrorKind = iota
	// KindInvalidMethod: the method is not one of Methods.
	KindInvalidMethod
	// KindInvalidIdentifier: a curp search value is not a well-formed CURP.
	KindInvalidIdentifier
	// KindInvalidPagination: page or page size out of range.
	KindInvalidPagination
	// KindNotFound: the method matched no records.
	KindNotFound
)

// String returns a stable identifier for the kind, used in logs and metrics.
func (k ErrorKind) String() string {
	switch k {
	case KindMissingValue:
		return "missing_value"
	case KindInvalidMethod:
		return "invalid_method"
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindInvalidPagination:
		return "invalid_pagination"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is a request-scoped search failure. It is never fatal and is
// reported to the caller as a client error.
type Error struct {
	Kind ErrorKind
	// Method is the raw method requested, kept for messages like "curp no encontrado".
	Method string
}

// Error implements the error interface with an English message.
// Localized text comes from Messages.
func (e *Error) Error() string {
	return EnglishMessages().Format(e)
}

// StatusCode returns the HTTP status the error maps to.
func (e *Error) StatusCode() int {
	if e.Kind == KindNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

// Is matches errors of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of the method carried.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel errors for errors.Is checks.
var (
	ErrMissingValue      = &Error{Kind: KindMissingValue}
	ErrInvalidMethod     = &Error{Kind: KindInvalidMethod}
	ErrInvalidIdentifier = &Error{Kind: KindInvalidIdentifier}
	ErrInvalidPagination = &Error{Kind: KindInvalidPagination}
	ErrNotFound          = &Error{Kind: KindNotFound}
)

func newError(kind ErrorKind, method string) *Error {
	return &Error{Kind: kind, Method: method}
}

// =============================================================================
// Messages
// =============================================================================

// Messages holds the human-readable text for each failure kind and the
// success message placed in response envelopes.
//
// NotFound may contain one %s, replaced by the method name.
type Messages struct {
	MissingValue      string `yaml:"missing_value"`
	InvalidMethod     string `yaml:"invalid_method"`
	InvalidIdentifier string `yaml:"invalid_identifier"`
	InvalidPagination string `yaml:"invalid_pagination"`
	NotFound          string `yaml:"not_found"`
	Success           string `yaml:"success"`
}

// Supported locales.
const (
	LocaleES = "es"
	LocaleEN = "en"
)

// SpanishMessages returns the default catalog.
func SpanishMessages() Messages {
	return Messages{
		MissingValue:      "El parámetro 'valor' es obligatorio cuando se proporciona 'método'",
		InvalidMethod:     "Método de búsqueda no válido",
		InvalidIdentifier: "CURP no válido",
		InvalidPagination: "Parámetros de paginación no válidos",
		NotFound:          "%s no encontrado",
		Success:           "Query realizado con éxito",
	}
}

// EnglishMessages returns the English catalog.
func EnglishMessages() Messages {
	return Messages{
		MissingValue:      "the 'valor' parameter is required when 'metodo' is given",
		InvalidMethod:     "invalid search method",
		InvalidIdentifier: "invalid CURP",
		InvalidPagination: "invalid pagination parameters",
		NotFound:          "%s not found",
		Success:           "query completed successfully",
	}
}

// MessagesFor returns the built-in catalog for locale.
func MessagesFor(locale string) (Messages, bool) {
	switch locale {
	case LocaleES:
		return SpanishMessages(), true
	case LocaleEN:
		return EnglishMessages(), true
	default:
		return Messages{}, false
	}
}

// Merge returns m with every empty entry filled from base.
func (m Messages) Merge(base Messages) Messages {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&m.MissingValue, base.MissingValue)
	fill(&m.InvalidMethod, base.InvalidMethod)
	fill(&m.InvalidIdentifier, base.InvalidIdentifier)
	fill(&m.InvalidPagination, base.InvalidPagination)
	fill(&m.NotFound, base.NotFound)
	fill(&m.Success, base.Success)
	return m
}

// Format returns the text for err.
func (m Messages) Format(err *Error) string {
	switch err.Kind {
	case KindMissingValue:
		return m.MissingValue
	case KindInvalidMethod:
		return m.InvalidMethod
	case KindInvalidIdentifier:
		return m.InvalidIdentifier
	case KindInvalidPagination:
		return m.InvalidPagination
	case KindNotFound:
		if !strings.Contains(m.NotFound, "%s") {
			return m.NotFound
		}
		return fmt.Sprintf(m.NotFound, err.Method)
	default:
		return "search failed"
	}
}
