// Package calendar modela fechas de calendario (granularidad de día, sin hora ni zona)
// y la aritmética que usa la agenda de consultas.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const layout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date")
)

// Date es un día de calendario. El valor cero representa "sin fecha".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New normaliza (y, m, d) igual que time.Date (p.ej. 31/04 => 01/05).
func New(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Parse acepta solo YYYY-MM-DD.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return FromTime(t), nil
}

// FromTime toma año/mes/día de t en su propia zona; el offset local se descarta una sola vez aquí.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today devuelve la fecha local de now.
func Today(now func() time.Time) Date {
	if now == nil {
		now = time.Now
	}
	return FromTime(now())
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// AddMonths suma meses de calendario. Si el día no existe en el mes destino se
// ajusta al último día de ese mes (31/01 + 1 mes = 28/02 o 29/02).
func (d Date) AddMonths(n int) Date {
	total := int(d.Month) - 1 + n
	year := d.Year + floorDiv(total, 12)
	month := time.Month(total-floorDiv(total, 12)*12 + 1)

	day := d.Day
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Between es inclusivo en ambos extremos.
func (d Date) Between(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysIn devuelve la cantidad de días del mes.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds devuelve el primer y el último día del mes.
func MonthBounds(year int, month time.Month) (Date, Date) {
	return Date{Year: year, Month: month, Day: 1}, Date{Year: year, Month: month, Day: DaysIn(year, month)}
}

// MonthsBetween cuenta meses completos transcurridos de from a to.
// Si to es anterior a from el resultado es negativo (truncado hacia cero).
func MonthsBetween(from, to Date) int {
	months := (to.Year-from.Year)*12 + int(to.Month) - int(from.Month)
	if months > 0 && to.Day < from.Day {
		months--
	}
	if months < 0 && to.Day > from.Day {
		months++
	}
	return months
}

// NextBusinessDay corre sábado y domingo al lunes siguiente.
func NextBusinessDay(d Date) Date {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDays(2)
	case time.Sunday:
		return d.AddDays(1)
	default:
		return d
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
