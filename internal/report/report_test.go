package report_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/internal/dashboard"
	"github.com/valeriaulyamaeva/ga-financas/internal/gamification"
	"github.com/valeriaulyamaeva/ga-financas/internal/report"
	"github.com/valeriaulyamaeva/ga-financas/models"
	"github.com/xuri/excelize/v2"
)

var generatedAt = time.Date(2025, time.March, 5, 14, 30, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func sampleSnapshot() *dashboard.Snapshot {
	txs := []models.Transaction{
		{Description: "Salário", Amount: decimal.NewFromInt(3000), Kind: models.KindIncome, Date: "2025-03-01", CategoryName: strPtr("Trabalho")},
		{Description: "Aluguel", Amount: decimal.NewFromInt(1200), Kind: models.KindExpense, Date: "2025-03-02", CategoryName: strPtr("Moradia")},
		{Description: "Presente", Amount: decimal.NewFromInt(200), Kind: models.KindIncome, Date: "2025-03-03"},
	}
	chart := gamification.CategoryBreakdown(txs, models.KindIncome)
	return &dashboard.Snapshot{
		Transactions: txs,
		Goals: []models.Goal{
			{Name: "Viagem", Target: decimal.NewFromInt(200), Current: decimal.NewFromInt(150)},
			{Name: "Carro", Target: decimal.NewFromInt(100), Current: decimal.NewFromInt(250)},
		},
		User: models.User{Username: "ana"},
		// итоги снимка намеренно расходятся с транзакциями
		Totals: gamification.Totals{Income: decimal.NewFromInt(1)},
		Chart:  chart,
	}
}

func TestBuild(t *testing.T) {
	r := report.Build(sampleSnapshot(), generatedAt)

	if !r.Income.Equal(decimal.NewFromInt(3200)) || !r.Expenses.Equal(decimal.NewFromInt(1200)) || !r.Balance.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("отчет должен считать итоги сам: %s %s %s", r.Income, r.Expenses, r.Balance)
	}
	if r.BalanceColor != "#1565c0" {
		t.Errorf("положительный баланс синий, получено %s", r.BalanceColor)
	}
	if len(r.IncomeRows) != 2 || r.IncomeRows[1].Category != "Geral" || r.IncomeRows[0].Date != "01/03/2025" {
		t.Errorf("неожиданные строки доходов: %+v", r.IncomeRows)
	}
	if r.Goals[0].Percent != 75 || r.Goals[0].Label != "R$ 150,00 de R$ 200,00" {
		t.Errorf("неожиданная цель: %+v", r.Goals[0])
	}
	if r.Goals[1].Percent != 250 || r.Goals[1].BarPercent != 100 {
		t.Errorf("полоса цели ограничена 100: %+v", r.Goals[1])
	}
	if len(r.Chart) != 2 {
		t.Errorf("ожидалось 2 сектора: %+v", r.Chart)
	}
}

func TestBuildNegativeBalance(t *testing.T) {
	snap := &dashboard.Snapshot{Transactions: []models.Transaction{
		{Description: "Conta", Amount: decimal.NewFromInt(10), Kind: models.KindExpense, Date: "2025-01-01"},
	}, ChartEmpty: true}
	r := report.Build(snap, generatedAt)
	if r.BalanceColor != "#c62828" || len(r.Chart) != 0 {
		t.Fatalf("неожиданный отчет: %+v", r)
	}
}

func TestFilename(t *testing.T) {
	if got := report.Filename(generatedAt, "pdf"); got != "Relatorio_Detalhado_05-03-2025.pdf" {
		t.Fatalf("неожиданное имя файла: %s", got)
	}
}

func TestPDF(t *testing.T) {
	for name, snap := range map[string]*dashboard.Snapshot{
		"полный": sampleSnapshot(),
		"пустой": {ChartEmpty: true},
	} {
		data, err := report.Build(snap, generatedAt).PDF()
		if err != nil {
			t.Fatalf("%s: ошибка генерации PDF: %v", name, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF")) {
			t.Errorf("%s: результат не является PDF", name)
		}
	}
}

func TestXLSX(t *testing.T) {
	data, err := report.Build(sampleSnapshot(), generatedAt).XLSX()
	if err != nil {
		t.Fatalf("ошибка генерации XLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ошибка чтения XLSX: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("Resumo", "B7"); got != "R$ 2.000,00" {
		t.Errorf("saldo = %q", got)
	}
	if got, _ := f.GetCellValue("Despesas", "B2"); got != "Aluguel" {
		t.Errorf("первая трата = %q", got)
	}
	if got, _ := f.GetCellValue("Metas", "B2"); got != "75%" {
		t.Errorf("прогресс цели = %q", got)
	}
}

func TestXLSXEmptySections(t *testing.T) {
	data, err := report.Build(&dashboard.Snapshot{ChartEmpty: true}, generatedAt).XLSX()
	if err != nil {
		t.Fatalf("ошибка генерации XLSX: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ошибка чтения XLSX: %v", err)
	}
	defer f.Close()
	if got, _ := f.GetCellValue("Receitas", "A2"); got != report.EmptyIncome {
		t.Errorf("ожидался текст пустого раздела, получено %q", got)
	}
	if got, _ := f.GetCellValue("Metas", "A2"); got != report.EmptyGoals {
		t.Errorf("ожидался текст пустого раздела, получено %q", got)
	}
}

func hasColor(img image.Image, r, g, b uint32) bool {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, _ := img.At(x, y).RGBA()
			if pr>>8 == r && pg>>8 == g && pb>>8 == b {
				return true
			}
		}
	}
	return false
}

func TestChartPNG(t *testing.T) {
	slices := []gamification.Slice{
		{Label: "A", Total: decimal.NewFromInt(3), Color: "#3c91e6"},
		{Label: "B", Total: decimal.NewFromInt(2), Color: "38C172"},
		{Label: "C", Total: decimal.Zero, Color: "#ff0000"},
	}
	data, err := report.ChartPNG(slices, 200)
	if err != nil {
		t.Fatalf("ошибка построения графика: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("некорректный PNG: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Fatalf("неожиданный размер: %v", img.Bounds())
	}
	if !hasColor(img, 0x3c, 0x91, 0xe6) {
		t.Error("нет сектора первой категории")
	}
	if !hasColor(img, 0x38, 0xc1, 0x72) {
		t.Error("нет сектора второй категории")
	}

	if _, err := report.ChartPNG(nil, 100); err == nil {
		t.Error("пустые данные должны давать ошибку")
	}
	if _, err := report.ChartPNG(slices[2:], 100); err == nil {
		t.Error("нулевые суммы должны давать ошибку")
	}
}
