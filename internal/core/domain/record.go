package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// =============================================================================
// Field Names
// =============================================================================

// Field names as they appear in the source dataset and in JSON responses.
const (
	FieldCURP      = "CURP"
	FieldNombres   = "nombres"
	FieldApPaterno = "ap_paterno"
	FieldApMaterno = "ap_materno"
	FieldApellidos = "apellidos"
)

// Missing is the value a missing field serializes as.
const Missing = 0

// =============================================================================
// Record
// =============================================================================

// Record is one beneficiary row.
//
// The searchable fields are promoted to struct fields; every other source
// column is kept in Extra. An empty searchable field means the source value
// was missing. Records are values: treat Extra as read-only once the record
// is part of a Table.
type Record struct {
	CURP      string
	Nombres   string
	ApPaterno string
	ApMaterno string
	// Apellidos is ApMaterno + " " + ApPaterno, derived once by NewRecord.
	Apellidos string
	Extra     map[string]any
}

// NewRecord builds a record from the raw fields of one source row.
//
// The rules are:
//   - null values become Missing
//   - Apellidos is derived from ap_materno and ap_paterno when both are
//     present; otherwise a precomputed apellidos column is kept as-is
//   - if neither is available Apellidos stays missing
//
// This is a pure function with no side effects.
//
// Example:
//
//	r := NewRecord(map[string]any{"CURP": "...", "ap_materno": "LOPEZ", "ap_paterno": "GARZA"})
//	r.Apellidos // "LOPEZ GARZA"
func NewRecord(fields map[string]any) Record {
	r := Record{Extra: make(map[string]any)}
	for k, v := range fields {
		switch k {
		case FieldCURP:
			r.CURP = asString(v)
		case FieldNombres:
			r.Nombres = asString(v)
		case FieldApPaterno:
			r.ApPaterno = asString(v)
		case FieldApMaterno:
			r.ApMaterno = asString(v)
		case FieldApellidos:
			r.Apellidos = asString(v)
		default:
			if v == nil {
				v = Missing
			}
			r.Extra[k] = v
		}
	}

	if r.ApMaterno != "" && r.ApPaterno != "" {
		r.Apellidos = r.ApMaterno + " " + r.ApPaterno
	}
	return r
}

// Fields returns the record as a flat field map, with Missing in place of
// absent searchable fields. The returned map is a fresh copy.
func (r Record) Fields() map[string]any {
	out := make(map[string]any, len(r.Extra)+5)
	for k, v := range r.Extra {
		out[k] = v
	}
	out[FieldCURP] = orMissing(r.CURP)
	out[FieldNombres] = orMissing(r.Nombres)
	out[FieldApPaterno] = orMissing(r.ApPaterno)
	out[FieldApMaterno] = orMissing(r.ApMaterno)
	out[FieldApellidos] = orMissing(r.Apellidos)
	return out
}

// MarshalJSON encodes the record as a flat JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Fields())
}

// Clone returns a copy of the record with its own Extra map.
func (r Record) Clone() Record {
	extra := make(map[string]any, len(r.Extra))
	for k, v := range r.Extra {
		extra[k] = v
	}
	r.Extra = extra
	return r
}

func orMissing(s string) any {
	if s == "" {
		return Missing
	}
	return s
}

// asString converts a scalar source value to its string form.
// Numbers keep their shortest representation ("1" not "1.000000").
func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
