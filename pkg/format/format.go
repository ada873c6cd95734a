// Package format da formato pt-BR a valores monetarios y fechas para vistas y reportes.
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Placeholder valor mostrado cuando un dato no está disponible.
const Placeholder = "—"

var monthsShort = [...]string{
	"jan.", "fev.", "mar.", "abr.", "mai.", "jun.",
	"jul.", "ago.", "set.", "out.", "nov.", "dez.",
}

// Currency formatea en reales: 1234.5 → "R$ 1.234,50" (con espacio no separable).
func Currency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	return sign + "R$\u00a0" + groupThousands(intPart) + "," + frac
}

// Int agrupa miles: 12500 → "12.500".
func Int(n int) string {
	if n < 0 {
		return "-" + groupThousands(strconv.Itoa(-n))
	}
	return groupThousands(strconv.Itoa(n))
}

// Date "16 de out. de 2026" en la zona de t.
func Date(t time.Time) string {
	return twoDigits(t.Day()) + " de " + monthsShort[t.Month()-1] + " de " + strconv.Itoa(t.Year())
}

// DateTime "16 de out., 14:05" en la zona de t.
func DateTime(t time.Time) string {
	return twoDigits(t.Day()) + " de " + monthsShort[t.Month()-1] + ", " +
		twoDigits(t.Hour()) + ":" + twoDigits(t.Minute())
}

// groupThousands inserta puntos de miles en un string de dígitos.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func twoDigits(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
