package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestBookKeepsFirstError(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	b := &book{f: f}

	b.sheet(strings.Repeat("x", 40))
	if b.err == nil {
		t.Fatal("длинное имя листа должно давать ошибку")
	}
	first := b.err
	b.set("Sheet1", "A1", "valor")
	b.check(errors.New("другая"), "записи")
	if b.err != first {
		t.Fatalf("должна сохраняться первая ошибка, получено %v", b.err)
	}
	if v, _ := f.GetCellValue("Sheet1", "A1"); v != "" {
		t.Fatalf("после ошибки запись не выполняется, получено %q", v)
	}
}
