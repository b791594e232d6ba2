package curp

import (
	"errors"
	"regexp"
)

// =============================================================================
// Validation
// =============================================================================

// Length is the fixed length of a CURP.
const Length = 18

var pattern = regexp.MustCompile(`^[A-Z]{4}\d{6}[HM][A-Z]{5}[0-9A-Z]\d$`)

// ErrInvalidFormat is returned by Parse when the code does not match the grammar.
var ErrInvalidFormat = errors.New("invalid CURP format")

// IsValid reports whether code matches the CURP grammar.
//
// Only ASCII uppercase letters and digits are accepted; lowercase letters,
// a sex character other than H or M, or any length other than 18 make the
// code invalid. The check never panics.
//
// Example:
//
//	IsValid("ABCD123456HDFXYZ01") // true
//	IsValid("abcd123456HDFXYZ01") // false
//	IsValid("ABCD123456XDFXYZ01") // false
func IsValid(code string) bool {
	if len(code) != Length {
		return false
	}
	return pattern.MatchString(code)
}

// =============================================================================
// Parsing
// =============================================================================

// Sex is the sex marker at position 11 of a CURP.
type Sex string

const (
	SexMale   Sex = "H"
	SexFemale Sex = "M"
)

// CURP is a validated code split into its positional parts.
type CURP struct {
	Initials   string // positions 1-4
	BirthDate  string // positions 5-10, YYMMDD
	Sex        Sex    // position 11
	State      string // positions 12-13
	Consonants string // positions 14-16
	Homoclave  byte   // position 17
	CheckDigit byte   // position 18
}

// Parse validates code and returns its parts.
func Parse(code string) (CURP, error) {
	if !IsValid(code) {
		return CURP{}, ErrInvalidFormat
	}
	return CURP{
		Initials:   code[0:4],
		BirthDate:  code[4:10],
		Sex:        Sex(code[10:11]),
		State:      code[11:13],
		Consonants: code[13:16],
		Homoclave:  code[16],
		CheckDigit: code[17],
	}, nil
}

// String reassembles the code.
func (c CURP) String() string {
	if c.Initials == "" {
		return ""
	}
	return c.Initials + c.BirthDate + string(c.Sex) + c.State + c.Consonants +
		string([]byte{c.Homoclave, c.CheckDigit})
}
