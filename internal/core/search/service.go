package search

import (
	"github.com/sii-nl/buscador/internal/core/curp"
	"github.com/sii-nl/buscador/internal/core/domain"
)

// =============================================================================
// Service
// =============================================================================

// Options configures a Service.
type Options struct {
	// MaxPageSize caps page_size; 0 disables the cap.
	MaxPageSize int
}

// DefaultOptions returns the options used when none are configured.
// page_size is unbounded by default.
func DefaultOptions() Options {
	return Options{}
}

// Service searches a fixed table.
type Service struct {
	table *domain.Table
	opts  Options
}

// NewService creates a service over table. The table is never modified.
func NewService(table *domain.Table, opts Options) *Service {
	if table == nil {
		table = domain.NewTable(nil)
	}
	return &Service{table: table, opts: opts}
}

// Table returns the table the service searches.
func (s *Service) Table() *domain.Table {
	return s.table
}

// Result is one page of matching records.
type Result struct {
	Method Method
	// Records is the page, in table order. Never nil.
	Records []domain.Record
	// Total is the number of matches before pagination.
	Total    int
	Page     int
	PageSize int
}

// Empty reports whether the page holds no records.
func (r Result) Empty() bool {
	return len(r.Records) == 0
}

// Search runs q against the table.
//
// Checks run in this order, and the first failure is returned:
//  1. a method without a value: ErrMissingValue
//  2. an unknown method: ErrInvalidMethod
//  3. a curp value that is not a well-formed CURP: ErrInvalidIdentifier
//  4. page or page size out of range: ErrInvalidPagination
//  5. no match for a method other than none: ErrNotFound
//
// A page past the last match is an empty Result, not an error.
func (s *Service) Search(q Query) (Result, error) {
	if q.Method != "" && q.Value == nil {
		return Result{}, newError(KindMissingValue, q.Method)
	}

	method, ok := ParseMethod(q.Method)
	if !ok {
		return Result{}, newError(KindInvalidMethod, q.Method)
	}

	var value, value2 string
	if q.Value != nil {
		value = decode(*q.Value)
	}
	twoField := method == MethodApellidos && q.Value2 != nil
	if twoField {
		value2 = decode(*q.Value2)
	}

	if method == MethodCURP && !curp.IsValid(value) {
		return Result{}, newError(KindInvalidIdentifier, q.Method)
	}

	if err := s.checkPage(q); err != nil {
		return Result{}, err
	}

	matches := s.table.Filter(predicate(method, value, value2, twoField))
	if method != MethodNone && len(matches) == 0 {
		return Result{}, newError(KindNotFound, q.Method)
	}

	page := Paginate(matches, q.Page, q.PageSize)
	for i := range page {
		page[i] = page[i].Clone()
	}

	return Result{
		Method:   method,
		Records:  page,
		Total:    len(matches),
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

func (s *Service) checkPage(q Query) error {
	if q.Page < 1 || q.PageSize < 1 {
		return newError(KindInvalidPagination, q.Method)
	}
	if s.opts.MaxPageSize > 0 && q.PageSize > s.opts.MaxPageSize {
		return newError(KindInvalidPagination, q.Method)
	}
	return nil
}

// predicate returns the filter for method. A nil predicate selects all rows.
// Empty values stand for missing fields, so they never match.
func predicate(method Method, value, value2 string, twoField bool) func(domain.Record) bool {
	if method != MethodNone && (value == "" || (twoField && value2 == "")) {
		return func(domain.Record) bool { return false }
	}
	switch method {
	case MethodCURP:
		return func(r domain.Record) bool { return r.CURP == value }
	case MethodNombres:
		return func(r domain.Record) bool { return r.Nombres == value }
	case MethodApellidos:
		if twoField {
			return func(r domain.Record) bool {
				return r.ApMaterno == value && r.ApPaterno == value2
			}
		}
		return func(r domain.Record) bool { return r.Apellidos == value }
	default:
		return nil
	}
}
