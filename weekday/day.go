package weekday

// Day is a weekday position, Monday=0 through Sunday=6.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DaysPerWeek is the number of positions in a Mask and a letter string.
const DaysPerWeek = 7

var abbreviations = [DaysPerWeek]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

var letters = [DaysPerWeek]byte{'M', 'T', 'W', 'T', 'F', 'S', 'S'}

var byAbbreviation = map[string]Day{
	"Mo": Monday,
	"Tu": Tuesday,
	"We": Wednesday,
	"Th": Thursday,
	"Fr": Friday,
	"Sa": Saturday,
	"Su": Sunday,
}

// Valid reports whether d is one of the seven weekdays.
func (d Day) Valid() bool {
	return d >= Monday && d <= Sunday
}

// String returns the two-letter EiBi abbreviation ("Mo".."Su").
func (d Day) String() string {
	if !d.Valid() {
		return "??"
	}
	return abbreviations[d]
}

// Letter returns the single day initial used in letter strings.
func (d Day) Letter() byte {
	return letters[d]
}

// Bit returns the single-day mask for d. Monday is the most significant bit.
func (d Day) Bit() Mask {
	return Mask(1) << (DaysPerWeek - 1 - int(d))
}

// Number returns the EiBi day number (Monday=1, Sunday=7).
func (d Day) Number() int {
	return int(d) + 1
}

// ParseDay parses a two-letter abbreviation. Matching is case sensitive,
// as in the EiBi files.
func ParseDay(s string) (Day, bool) {
	d, ok := byAbbreviation[s]
	return d, ok
}

// DayFromNumber returns the weekday for an EiBi day number 1..7.
func DayFromNumber(n int) (Day, bool) {
	if n < 1 || n > DaysPerWeek {
		return 0, false
	}
	return Day(n - 1), true
}

// Week returns all weekdays in Monday-first order.
func Week() []Day {
	return []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}
