// Package curp validates Mexican population registry codes (CURP).
//
// This package is part of the functional core: every function is pure
// (no I/O, no side effects) and safe for concurrent use.
//
// # Format
//
// A CURP is exactly 18 characters, position-anchored:
//
//	AAAA 999999 S EEEEE H D
//	|    |      | |     | +- check digit (0-9)
//	|    |      | |     +--- homoclave (0-9 or A-Z)
//	|    |      | +--------- state code (2) and internal consonants (3), A-Z
//	|    |      +----------- sex, H or M
//	|    +------------------ birth date, YYMMDD
//	+----------------------- initials, A-Z
//
// The grammar is matched against the whole string: leading or trailing
// characters make a code invalid.
//
// # Usage
//
//	if !curp.IsValid(valor) {
//	    // Return 400 Bad Request
//	}
package curp
