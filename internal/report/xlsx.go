package report

import (
	"fmt"

	"github.com/valeriaulyamaeva/ga-financas/utils"
	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary  = "Resumo"
	sheetIncome   = "Receitas"
	sheetExpenses = "Despesas"
	sheetGoals    = "Metas"
)

// book запоминает первую ошибку excelize, последующие вызовы ничего не делают.
type book struct {
	f   *excelize.File
	err error
}

func (b *book) check(err error, what string) {
	if b.err == nil && err != nil {
		b.err = fmt.Errorf("ошибка %s: %w", what, err)
	}
}

func (b *book) style(s *excelize.Style) int {
	if b.err != nil {
		return 0
	}
	id, err := b.f.NewStyle(s)
	b.check(err, "создания стиля")
	return id
}

func (b *book) set(sheet, cell string, value any) {
	if b.err == nil {
		b.check(b.f.SetCellValue(sheet, cell, value), "записи ячейки "+sheet+"!"+cell)
	}
}

func (b *book) float(sheet, cell string, value float64) {
	if b.err == nil {
		b.check(b.f.SetCellFloat(sheet, cell, value, 2, 64), "записи ячейки "+sheet+"!"+cell)
	}
}

func (b *book) paint(sheet, from, to string, style int) {
	if b.err == nil {
		b.check(b.f.SetCellStyle(sheet, from, to, style), "оформления "+sheet)
	}
}

func (b *book) merge(sheet, from, to string) {
	if b.err == nil {
		b.check(b.f.MergeCell(sheet, from, to), "объединения ячеек "+sheet)
	}
}

func (b *book) width(sheet, col string, w float64) {
	if b.err == nil {
		b.check(b.f.SetColWidth(sheet, col, col, w), "ширины столбца "+sheet)
	}
}

func (b *book) sheet(name string) {
	if b.err == nil {
		_, err := b.f.NewSheet(name)
		b.check(err, "создания листа "+name)
	}
}

func (b *book) header(sheet string, style int, titles ...string) {
	for i, title := range titles {
		name, err := excelize.CoordinatesToCellName(i+1, 1)
		b.check(err, "адреса ячейки")
		b.set(sheet, name, title)
	}
	last, err := excelize.CoordinatesToCellName(len(titles), 1)
	b.check(err, "адреса ячейки")
	b.paint(sheet, "A1", last, style)
}

// XLSX тот же отчет в виде книги Excel.
func (r Report) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	b := &book{f: f}
	b.check(f.SetSheetName("Sheet1", sheetSummary), "создания листа")

	titleStyle := b.style(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#3C91E6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headerStyle := b.style(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F2F2F2"}, Pattern: 1},
	})
	balanceStyle := b.style(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: r.BalanceColor},
	})

	b.merge(sheetSummary, "A1", "B1")
	b.set(sheetSummary, "A1", "Relatório Financeiro Detalhado")
	b.paint(sheetSummary, "A1", "B1", titleStyle)
	if b.err == nil {
		b.check(f.SetRowHeight(sheetSummary, 1, 28), "высоты строки")
	}
	b.set(sheetSummary, "A2", "Gerado em")
	b.set(sheetSummary, "B2", utils.FormatLocaleDateTime(r.GeneratedAt))
	b.set(sheetSummary, "A3", "Usuário")
	b.set(sheetSummary, "B3", r.Username)
	b.set(sheetSummary, "A5", "Receitas")
	b.set(sheetSummary, "B5", utils.FormatBRL(r.Income))
	b.set(sheetSummary, "A6", "Despesas")
	b.set(sheetSummary, "B6", utils.FormatBRL(r.Expenses))
	b.set(sheetSummary, "A7", "Saldo")
	b.set(sheetSummary, "B7", utils.FormatBRL(r.Balance))
	b.paint(sheetSummary, "B7", "B7", balanceStyle)
	b.width(sheetSummary, "A", 18)
	b.width(sheetSummary, "B", 24)

	for _, part := range []struct {
		sheet, empty string
		rows         []Row
	}{
		{sheetIncome, EmptyIncome, r.IncomeRows},
		{sheetExpenses, EmptyExpenses, r.ExpenseRows},
	} {
		b.sheet(part.sheet)
		b.header(part.sheet, headerStyle, "Data", "Descrição", "Categoria", "Valor")
		if len(part.rows) == 0 {
			b.set(part.sheet, "A2", part.empty)
		}
		for i, row := range part.rows {
			n := i + 2
			b.set(part.sheet, cell("A", n), row.Date)
			b.set(part.sheet, cell("B", n), row.Description)
			b.set(part.sheet, cell("C", n), row.Category)
			amount, _ := row.Amount.Float64()
			b.float(part.sheet, cell("D", n), amount)
		}
		b.width(part.sheet, "A", 12)
		b.width(part.sheet, "B", 36)
		b.width(part.sheet, "C", 20)
		b.width(part.sheet, "D", 14)
	}

	b.sheet(sheetGoals)
	b.header(sheetGoals, headerStyle, "Meta", "Progresso", "Valores")
	if len(r.Goals) == 0 {
		b.set(sheetGoals, "A2", EmptyGoals)
	}
	for i, g := range r.Goals {
		n := i + 2
		b.set(sheetGoals, cell("A", n), g.Name)
		b.set(sheetGoals, cell("B", n), fmt.Sprintf("%d%%", g.Percent))
		b.set(sheetGoals, cell("C", n), g.Label)
	}
	b.width(sheetGoals, "A", 28)
	b.width(sheetGoals, "C", 36)

	if b.err != nil {
		return nil, b.err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка записи XLSX: %w", err)
	}
	return buf.Bytes(), nil
}

func cell(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}
