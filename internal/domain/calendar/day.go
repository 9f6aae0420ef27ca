// Package calendar modela fechas civiles (día de calendario sin hora) para los filtros
// de métricas. El formato yyyy-MM-dd se usa solo en los bordes (query string, JSON);
// los rangos horarios se calculan siempre en una *time.Location explícita.
package calendar

import (
	"fmt"
	"time"
)

// Layout formato de fecha que intercambia la API remota.
const Layout = "2006-01-02"

// Day día civil. El valor cero representa "sin fecha".
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// New normaliza fechas fuera de rango (31 de abril → 1 de mayo), igual que time.Date.
func New(year int, month time.Month, day int) Day {
	return Of(time.Date(year, month, day, 12, 0, 0, 0, time.UTC))
}

// Of devuelve el día civil de t en su propia zona horaria.
func Of(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// Today día actual en loc.
func Today(now time.Time, loc *time.Location) Day {
	return Of(now.In(loc))
}

// Parse lee yyyy-MM-dd. Cadena vacía devuelve el día cero sin error.
func Parse(s string) (Day, error) {
	if s == "" {
		return Day{}, nil
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Day{}, fmt.Errorf("fecha %q: se espera formato yyyy-MM-dd", s)
	}
	return Of(t), nil
}

// IsZero indica día sin asignar.
func (d Day) IsZero() bool {
	return d == Day{}
}

// String formatea yyyy-MM-dd; el día cero se formatea vacío.
func (d Day) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Start primer instante del día en loc.
func (d Day) Start(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Range intervalo [inicio, inicio del día siguiente) en loc.
// Se construye con AddDate para que los días con cambio de horario no queden cortos.
func (d Day) Range(loc *time.Location) (start, end time.Time) {
	start = d.Start(loc)
	end = d.AddDays(1).Start(loc)
	return start, end
}

// AddDays suma n días civiles.
func (d Day) AddDays(n int) Day {
	return Of(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// Before compara cronológicamente.
func (d Day) Before(o Day) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// MarshalText serializa como yyyy-MM-dd (vacío si es cero).
func (d Day) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText acepta yyyy-MM-dd o vacío.
func (d *Day) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
