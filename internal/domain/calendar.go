package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	DayLayout       = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// LocalZone é o fuso fixo da clínica: UTC-3, sem horário de verão.
// Submissão e relatórios usam sempre este mesmo fuso.
var LocalZone = time.FixedZone("America/Sao_Paulo", -3*60*60)

var ErrInvalidDay = errors.New("data inválida")

// CalendarDay representa um dia civil no fuso local
type CalendarDay struct {
	Year  int
	Month time.Month
	Day   int
}

func NewCalendarDay(year, month, day int) (CalendarDay, error) {
	if year < 1 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return CalendarDay{}, ErrInvalidDay
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, LocalZone)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return CalendarDay{}, ErrInvalidDay
	}

	return CalendarDay{Year: year, Month: time.Month(month), Day: day}, nil
}

// ParseCalendarDay aceita apenas o formato YYYY-MM-DD
func ParseCalendarDay(value string) (CalendarDay, error) {
	t, err := time.ParseInLocation(DayLayout, value, LocalZone)
	if err != nil {
		return CalendarDay{}, fmt.Errorf("%w: %q", ErrInvalidDay, value)
	}

	return CalendarDayOf(t), nil
}

// CalendarDayOf retorna o dia civil local em que o instante cai
func CalendarDayOf(t time.Time) CalendarDay {
	local := t.In(LocalZone)
	return CalendarDay{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

// Key retorna o dia no formato YYYY-MM-DD, usado como chave das despesas
func (d CalendarDay) Key() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Window retorna o intervalo semiaberto [start, end) do dia local, em UTC.
// Um registro exatamente em end pertence ao dia seguinte.
func (d CalendarDay) Window() (start, end time.Time) {
	localStart := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, LocalZone)
	return localStart.UTC(), localStart.Add(24 * time.Hour).UTC()
}

// At combina o dia com o horário local de clock e devolve o instante em UTC
func (d CalendarDay) At(clock time.Time) time.Time {
	local := clock.In(LocalZone)
	return time.Date(
		d.Year, d.Month, d.Day,
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(),
		LocalZone,
	).UTC()
}

func (d CalendarDay) String() string {
	return d.Key()
}

// FormatLocal formata um instante como YYYY-MM-DD HH:mm:ss no fuso local
func FormatLocal(t time.Time) string {
	return t.In(LocalZone).Format(TimestampLayout)
}
