package weekday

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Mask is a weekly schedule: one bit per weekday, Monday in bit 6 and
// Sunday in bit 0, so the integer value reads like the letter string.
type Mask uint8

// Everyday has all seven days set.
const Everyday Mask = 1<<DaysPerWeek - 1

// Placeholder marks an inactive day in a letter string.
const Placeholder = '_'

// Combine unions the bits of every day in days. Order and duplicates
// do not matter.
func Combine(days []Day) Mask {
	var m Mask
	for _, d := range days {
		m = m.With(d)
	}
	return m
}

// With returns m with d set.
func (m Mask) With(d Day) Mask {
	if !d.Valid() {
		return m
	}
	return (m | d.Bit()) & Everyday
}

// Has reports whether d is set in m.
func (m Mask) Has(d Day) bool {
	return d.Valid() && m&d.Bit() != 0
}

// IsEmpty reports whether no day is set.
func (m Mask) IsEmpty() bool {
	return m&Everyday == 0
}

// Days lists the set days in Monday-first order.
func (m Mask) Days() []Day {
	var out []Day
	for _, d := range Week() {
		if m.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// Int returns the packed integer value used by the JSON label format.
func (m Mask) Int() int {
	return int(m & Everyday)
}

// Letters renders m as a 7-character string such as "M_WTF__".
func (m Mask) Letters() string {
	var b [DaysPerWeek]byte
	for _, d := range Week() {
		if m.Has(d) {
			b[d] = d.Letter()
		} else {
			b[d] = Placeholder
		}
	}
	return string(b[:])
}

// Field renders m for the intermediate CSV: empty when no day is set,
// the letter string otherwise.
func (m Mask) Field() string {
	if m.IsEmpty() {
		return ""
	}
	return m.Letters()
}

// String implements fmt.Stringer.
func (m Mask) String() string {
	return m.Letters()
}

// ParseLetters packs a 7-character letter string back into a Mask. Any
// character other than the placeholder counts as an active day.
func ParseLetters(s string) (Mask, error) {
	if n := utf8.RuneCountInString(s); n != DaysPerWeek {
		return 0, fmt.Errorf("day letters %q: want %d characters, got %d", s, DaysPerWeek, n)
	}
	var bits strings.Builder
	for _, r := range s {
		if r == Placeholder {
			bits.WriteByte('0')
		} else {
			bits.WriteByte('1')
		}
	}
	v, err := strconv.ParseUint(bits.String(), 2, DaysPerWeek+1)
	if err != nil {
		return 0, fmt.Errorf("day letters %q: %w", s, err)
	}
	return Mask(v), nil
}

// LettersToInt is ParseLetters followed by Int.
func LettersToInt(s string) (int, error) {
	m, err := ParseLetters(s)
	if err != nil {
		return 0, err
	}
	return m.Int(), nil
}
