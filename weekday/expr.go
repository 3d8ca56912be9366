package weekday

import (
	"strings"
)

// Shape is the syntactic form of a day field.
type Shape int

const (
	// ShapeEmpty is a blank field: no day restriction.
	ShapeEmpty Shape = iota
	// ShapeDigits is a sequence of day numbers such as "1345".
	ShapeDigits
	// ShapeList is a comma list or a single known token such as "Mo,We,Fr".
	ShapeList
	// ShapeRange is a start-end span such as "Mo-Fr" or "Sa-Tu".
	ShapeRange
)

func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeDigits:
		return "digits"
	case ShapeList:
		return "list"
	case ShapeRange:
		return "range"
	}
	return "unknown"
}

const (
	weekendToken = "SaSu"
	listPrefix   = "1."
)

// Expr is a classified day field. Digit and list shapes carry their days in
// Days; ranges carry their endpoints in From and To.
type Expr struct {
	Shape Shape
	Raw   string
	Days  []Day
	From  Day
	To    Day
}

// Classify parses a raw EiBi day field. The forms are tried in a fixed
// order: digit sequence, list or known token, range. Anything else is an
// ExpressionError of kind ErrorKindUnrecognized.
func Classify(raw string) (Expr, error) {
	field := strings.TrimSpace(raw)
	switch {
	case field == "":
		return Expr{Shape: ShapeEmpty, Raw: raw}, nil
	case isDigits(field):
		return classifyDigits(raw, field)
	case isList(field):
		return classifyList(raw, field)
	case isRange(field):
		return classifyRange(raw, field)
	}
	return Expr{}, unrecognizedError(raw)
}

// Weekdays expands the expression into weekdays in expression order.
// Ranges are expanded from start to end, wrapping past Sunday.
func (e Expr) Weekdays() []Day {
	switch e.Shape {
	case ShapeDigits, ShapeList:
		return e.Days
	case ShapeRange:
		return expandRange(e.From, e.To)
	}
	return nil
}

// Mask folds the expression into a weekly Mask.
func (e Expr) Mask() Mask {
	return Combine(e.Weekdays())
}

// Normalize classifies raw and returns its weekdays.
func Normalize(raw string) ([]Day, error) {
	e, err := Classify(raw)
	if err != nil {
		return nil, err
	}
	return e.Weekdays(), nil
}

// ParseMask classifies raw and returns its weekly Mask.
func ParseMask(raw string) (Mask, error) {
	e, err := Classify(raw)
	if err != nil {
		return 0, err
	}
	return e.Mask(), nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

func isList(s string) bool {
	if strings.Contains(s, ",") || s == weekendToken || strings.HasPrefix(s, listPrefix) {
		return true
	}
	_, ok := ParseDay(s)
	return ok
}

// A trailing hyphen marks a truncated field rather than a range.
func isRange(s string) bool {
	return strings.Contains(s, "-") && !strings.HasSuffix(s, "-")
}

func classifyDigits(raw, field string) (Expr, error) {
	days := make([]Day, 0, len(field))
	for _, r := range field {
		d, ok := DayFromNumber(int(r - '0'))
		if !ok {
			return Expr{}, digitError(raw, r)
		}
		days = append(days, d)
	}
	return Expr{Shape: ShapeDigits, Raw: raw, Days: days}, nil
}

func classifyList(raw, field string) (Expr, error) {
	if field == weekendToken {
		field = "Sa,Su"
	}
	field = strings.TrimPrefix(field, listPrefix)
	tokens := strings.Split(field, ",")
	days := make([]Day, 0, len(tokens))
	for _, tok := range tokens {
		d, ok := ParseDay(strings.TrimSpace(tok))
		if !ok {
			return Expr{}, tokenError(raw, tok)
		}
		days = append(days, d)
	}
	return Expr{Shape: ShapeList, Raw: raw, Days: days}, nil
}

func classifyRange(raw, field string) (Expr, error) {
	parts := strings.Split(field, "-")
	if len(parts) != 2 {
		return Expr{}, &ExpressionError{Kind: ErrorKindRange, Input: raw, Message: "range must have exactly one hyphen"}
	}
	from, ok := ParseDay(parts[0])
	if !ok {
		return Expr{}, rangeError(raw, parts[0])
	}
	to, ok := ParseDay(parts[1])
	if !ok {
		return Expr{}, rangeError(raw, parts[1])
	}
	return Expr{Shape: ShapeRange, Raw: raw, From: from, To: to}, nil
}

func expandRange(from, to Day) []Day {
	week := Week()
	if from <= to {
		return week[from : to+1]
	}
	out := append([]Day{}, week[from:]...)
	return append(out, week[:to+1]...)
}
