package utils_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"0":         "R$ 0,00",
		"5.5":       "R$ 5,50",
		"1234.56":   "R$ 1.234,56",
		"1000000":   "R$ 1.000.000,00",
		"-250.1":    "-R$ 250,10",
		"999.999":   "R$ 1.000,00",
		"-0.001":    "R$ 0,00",
		"123456.78": "R$ 123.456,78",
	}
	for in, want := range cases {
		got := utils.FormatBRL(decimal.RequireFromString(in))
		if got != want {
			t.Errorf("FormatBRL(%s) = %q, ожидалось %q", in, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := utils.FormatDate("2025-01-31"); got != "31/01/2025" {
		t.Fatalf("неожиданная дата: %s", got)
	}
	if got := utils.FormatDate(""); got != "-" {
		t.Fatalf("пустая дата должна быть '-', получено %s", got)
	}
	if got := utils.FormatDate("ontem"); got != "ontem" {
		t.Fatalf("некорректная дата должна возвращаться как есть, получено %s", got)
	}
}

func TestLocaleDateRoundTrip(t *testing.T) {
	day := time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)
	s := utils.FormatLocaleDate(day)
	if s != "09/03/2025" {
		t.Fatalf("неожиданный формат: %s", s)
	}
	back, err := utils.ParseLocaleDate(s, time.UTC)
	if err != nil || !back.Equal(day) {
		t.Fatalf("ожидалось %v, получено %v (%v)", day, back, err)
	}
}

func TestColors(t *testing.T) {
	if got := utils.ColorForDisplay("3c91e6"); got != "#3c91e6" {
		t.Fatalf("ColorForDisplay: %s", got)
	}
	if got := utils.ColorForDisplay("#3c91e6"); got != "#3c91e6" {
		t.Fatalf("ColorForDisplay не должен дублировать '#': %s", got)
	}
	if got := utils.ColorForAPI("#3c91e6"); got != "3c91e6" {
		t.Fatalf("ColorForAPI: %s", got)
	}
}

func TestFormatPercent1(t *testing.T) {
	if got := utils.FormatPercent1(75); got != "75.0" {
		t.Fatalf("FormatPercent1(75) = %s", got)
	}
	if got := utils.FormatPercent1(33.333); got != "33.3" {
		t.Fatalf("FormatPercent1(33.333) = %s", got)
	}
}
