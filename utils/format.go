package utils

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const localeDateLayout = "02/01/2006"

// FormatBRL форматирует сумму как "R$ 1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + fracPart
	if negative && !amount.Round(2).IsZero() {
		return "-" + out
	}
	return out
}

// FormatDate переводит дату API (YYYY-MM-DD) в dd/mm/yyyy.
func FormatDate(value string) string {
	if value == "" {
		return "-"
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return t.Format(localeDateLayout)
}

func FormatLocaleDate(t time.Time) string {
	return t.Format(localeDateLayout)
}

func FormatLocaleDateTime(t time.Time) string {
	return t.Format(localeDateLayout + " 15:04:05")
}

// ParseLocaleDate обратная операция к FormatLocaleDate.
func ParseLocaleDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(localeDateLayout, value, loc)
}

// ColorForDisplay добавляет '#', если его нет.
func ColorForDisplay(color string) string {
	if color == "" || strings.HasPrefix(color, "#") {
		return color
	}
	return "#" + color
}

// ColorForAPI убирает ведущий '#'.
func ColorForAPI(color string) string {
	return strings.TrimPrefix(color, "#")
}

// FormatPercent1 процент с одним знаком после точки, например "75.0".
func FormatPercent1(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(1)
}
