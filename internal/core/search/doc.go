// Package search implements beneficiary lookup and pagination over a
// domain.Table.
//
// This package is part of the functional core: the Service holds an
// immutable table and no other state, so Search is pure and safe for
// concurrent use without locking.
//
// # Methods
//
//   - "" (none): every record
//   - "curp": exact CURP match; the value must be a well-formed CURP
//   - "nombres": exact given-names match
//   - "apellidos": exact "maternal paternal" match, or a two-field match on
//     ap_materno and ap_paterno when a second value is supplied
//
// # Usage
//
//	svc := search.NewService(table, search.DefaultOptions())
//	result, err := svc.Search(search.Query{Method: "curp", Value: &valor, Page: 1, PageSize: 10})
//	var searchErr *search.Error
//	if errors.As(err, &searchErr) {
//	    // searchErr.StatusCode() is 400 or 404
//	}
package search
