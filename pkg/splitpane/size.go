package splitpane

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is a CSS length unit accepted in size expressions.
type Unit string

// Units accepted by ParseSize.
const (
	UnitPx      Unit = "px"
	UnitPercent Unit = "%"
	UnitRem     Unit = "rem"
	UnitEm      Unit = "em"
	UnitVh      Unit = "vh"
	UnitVw      Unit = "vw"
)

// twoCharUnits are the unit tokens recognized when inspecting the last two
// characters of an expression. % and rem are matched by suffix before this
// set is consulted.
var twoCharUnits = map[Unit]bool{
	UnitPx: true,
	UnitEm: true,
	UnitVh: true,
	UnitVw: true,
}

// Size is a parsed size expression: an integer magnitude plus a unit.
// The zero value is the empty size, meaning "no size given, flex-fill".
type Size struct {
	Magnitude int
	Unit      Unit
}

// IsEmpty reports whether no size was supplied.
func (s Size) IsEmpty() bool {
	return s.Unit == ""
}

// String formats the size as it would appear in a CSS declaration,
// e.g. "240px" or "30%". The empty size formats as "".
func (s Size) String() string {
	if s.IsEmpty() {
		return ""
	}
	return strconv.Itoa(s.Magnitude) + string(s.Unit)
}

// Px returns a pixel size with the given magnitude.
func Px(n int) Size {
	return Size{Magnitude: n, Unit: UnitPx}
}

// UnitError is returned when a size expression ends in an unsupported unit
// token.
type UnitError struct {
	Token string
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("unsupported size unit %q (allowed: px, %%, rem, em, vh, vw)", e.Token)
}

// MagnitudeError is returned when the numeric part of a size expression does
// not parse as an integer.
type MagnitudeError struct {
	Value string
}

func (e *MagnitudeError) Error() string {
	return fmt.Sprintf("invalid size magnitude %q: not an integer", e.Value)
}

// ParseSize parses a size expression such as "240px", "30%" or "2rem" into a
// Size. A blank expression parses to the empty Size with no error. Bare
// integers default to pixels. The function is pure: the same input always
// yields the same result.
func ParseSize(input string) (Size, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return Size{}, nil
	}

	switch {
	case strings.HasSuffix(s, "%"):
		return parseMagnitude(strings.TrimSuffix(s, "%"), UnitPercent)

	case strings.HasSuffix(s, "rem"):
		return parseMagnitude(strings.TrimSuffix(s, "rem"), UnitRem)

	case len(s) == 1:
		// Single character: must be a bare digit, pixels implied.
		return parseMagnitude(s, UnitPx)
	}

	// Inspect the last two characters as a candidate unit token. If the
	// token is itself numeric the whole expression is a bare integer and
	// pixels are implied.
	token := s[len(s)-2:]
	if _, err := strconv.Atoi(token); err == nil {
		return parseMagnitude(s, UnitPx)
	}

	unit := Unit(token)
	if !twoCharUnits[unit] {
		return Size{}, &UnitError{Token: token}
	}
	return parseMagnitude(s[:len(s)-2], unit)
}

// parseMagnitude parses the numeric remainder of an expression after the
// unit has been resolved and stripped.
func parseMagnitude(value string, unit Unit) (Size, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return Size{}, &MagnitudeError{Value: value}
	}
	return Size{Magnitude: n, Unit: unit}, nil
}
