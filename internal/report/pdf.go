package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

var (
	gray      = &props.Color{Red: 119, Green: 119, Blue: 119}
	barBg     = &props.Color{Red: 230, Green: 230, Blue: 230}
	barFill   = &props.Color{Red: 60, Green: 145, Blue: 230}
	headerBg  = &props.Color{Red: 242, Green: 242, Blue: 242}
	incomeCol = &props.Color{Red: 46, Green: 125, Blue: 50}
)

func rgb(hex string) *props.Color {
	c := parseHex(hex)
	return &props.Color{Red: int(c.R), Green: int(c.G), Blue: int(c.B)}
}

// PDF отчет в формате A4.
func (r Report) PDF() ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithBottomMargin(10).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12, text.NewCol(12, "Relatório Financeiro Detalhado", props.Text{
		Size: 16, Style: fontstyle.Bold, Align: align.Center,
	}))
	m.AddRow(6, text.NewCol(12, "Gerado em: "+utils.FormatLocaleDateTime(r.GeneratedAt), props.Text{
		Size: 9, Align: align.Center, Color: gray,
	}))
	if r.Username != "" {
		m.AddRow(6, text.NewCol(12, "Usuário: "+r.Username, props.Text{Size: 9, Align: align.Center, Color: gray}))
	}
	m.AddRow(4, line.NewCol(12))

	m.AddRow(6,
		text.NewCol(4, "Receitas", props.Text{Size: 9, Align: align.Center}),
		text.NewCol(4, "Despesas", props.Text{Size: 9, Align: align.Center}),
		text.NewCol(4, "Saldo", props.Text{Size: 9, Align: align.Center}),
	)
	m.AddRow(9,
		text.NewCol(4, utils.FormatBRL(r.Income), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Center, Color: incomeCol}),
		text.NewCol(4, utils.FormatBRL(r.Expenses), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Center, Color: rgb(colorNegative)}),
		text.NewCol(4, utils.FormatBRL(r.Balance), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Center, Color: rgb(r.BalanceColor)}),
	)
	m.AddRow(4)

	addChart(m, r)
	addTable(m, "Receitas", r.IncomeRows, EmptyIncome)
	addTable(m, "Despesas", r.ExpenseRows, EmptyExpenses)
	addGoals(m, r.Goals)

	m.RegisterFooter(
		row.New(4).Add(col.New(12).Add(line.New())),
		row.New(6).Add(text.NewCol(12, "GA Finanças", props.Text{Size: 8, Align: align.Center, Color: gray})),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func sectionTitle(m core.Maroto, title string) {
	m.AddRow(10, text.NewCol(12, title, props.Text{Size: 12, Style: fontstyle.Bold, Top: 3}))
}

func addChart(m core.Maroto, r Report) {
	sectionTitle(m, "Receitas por Categoria")
	if len(r.Chart) == 0 {
		m.AddRow(8, text.NewCol(12, NoChart, props.Text{Size: 9, Align: align.Center, Color: gray}))
		return
	}
	png, err := ChartPNG(r.Chart, 400)
	if err != nil {
		m.AddRow(8, text.NewCol(12, NoChart, props.Text{Size: 9, Align: align.Center, Color: gray}))
		return
	}
	m.AddRow(50, col.New(12).Add(image.NewFromBytes(png, extension.Png, props.Rect{Center: true, Percent: 100})))
	for _, s := range r.Chart {
		m.AddRow(5,
			col.New(1).WithStyle(&props.Cell{BackgroundColor: rgb(s.Color)}),
			text.NewCol(7, s.Label, props.Text{Size: 9, Left: 2}),
			text.NewCol(4, utils.FormatBRL(s.Total), props.Text{Size: 9, Align: align.Right}),
		)
	}
}

func addTable(m core.Maroto, title string, rows []Row, empty string) {
	sectionTitle(m, title)
	header := &props.Cell{BackgroundColor: headerBg}
	m.AddRow(7,
		text.NewCol(2, "Data", props.Text{Size: 9, Style: fontstyle.Bold, Top: 1}).WithStyle(header),
		text.NewCol(5, "Descrição", props.Text{Size: 9, Style: fontstyle.Bold, Top: 1}).WithStyle(header),
		text.NewCol(3, "Categoria", props.Text{Size: 9, Style: fontstyle.Bold, Top: 1}).WithStyle(header),
		text.NewCol(2, "Valor", props.Text{Size: 9, Style: fontstyle.Bold, Top: 1, Align: align.Right}).WithStyle(header),
	)
	if len(rows) == 0 {
		m.AddRow(7, text.NewCol(12, empty, props.Text{Size: 9, Align: align.Center, Top: 1}))
		return
	}
	for _, row := range rows {
		m.AddRow(6,
			text.NewCol(2, row.Date, props.Text{Size: 9, Top: 1}),
			text.NewCol(5, row.Description, props.Text{Size: 9, Top: 1}),
			text.NewCol(3, row.Category, props.Text{Size: 9, Top: 1}),
			text.NewCol(2, utils.FormatBRL(row.Amount), props.Text{Size: 9, Top: 1, Align: align.Right}),
		)
	}
}

func addGoals(m core.Maroto, goals []GoalLine) {
	sectionTitle(m, "Metas")
	if len(goals) == 0 {
		m.AddRow(7, text.NewCol(12, EmptyGoals, props.Text{Size: 9, Align: align.Center, Color: gray}))
		return
	}
	for _, g := range goals {
		m.AddRow(6,
			text.NewCol(9, g.Name, props.Text{Size: 10, Style: fontstyle.Bold}),
			text.NewCol(3, fmt.Sprintf("%d%%", g.Percent), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
		)
		m.AddRow(5, text.NewCol(12, g.Label, props.Text{Size: 8, Color: gray}))

		filled := barColumns(g.BarPercent)
		var cols []core.Col
		if filled > 0 {
			cols = append(cols, col.New(filled).WithStyle(&props.Cell{BackgroundColor: barFill}))
		}
		if filled < 12 {
			cols = append(cols, col.New(12-filled).WithStyle(&props.Cell{BackgroundColor: barBg}))
		}
		m.AddRow(3, cols...)
		m.AddRow(3)
	}
}
