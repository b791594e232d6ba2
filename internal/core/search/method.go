package search

// =============================================================================
// Methods
// =============================================================================

// Method is a lookup method accepted by Search.
type Method string

const (
	MethodNone      Method = ""
	MethodCURP      Method = "curp"
	MethodNombres   Method = "nombres"
	MethodApellidos Method = "apellidos"
)

// Methods lists the recognized lookup methods in documentation order.
var Methods = []Method{MethodCURP, MethodNombres, MethodApellidos}

// ParseMethod resolves a raw method name. Matching is case-sensitive.
// Returns false for anything other than a recognized method or "".
func ParseMethod(raw string) (Method, bool) {
	switch Method(raw) {
	case MethodNone, MethodCURP, MethodNombres, MethodApellidos:
		return Method(raw), true
	default:
		return MethodNone, false
	}
}

// String returns the method name, or "none" for MethodNone.
func (m Method) String() string {
	if m == MethodNone {
		return "none"
	}
	return string(m)
}
