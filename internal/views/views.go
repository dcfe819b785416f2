// Package views содержит модели представления и HTML-шаблоны страниц.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"brl":      utils.FormatBRL,
	"date":     utils.FormatDate,
	"color":    utils.ColorForDisplay,
	"percent1": utils.FormatPercent1,
	"lower":    strings.ToLower,
	"bar": func(pct float64) string {
		return fmt.Sprintf("%.1f", pct)
	},
	"isNeg": func(d decimal.Decimal) bool {
		return d.IsNegative()
	},
}

// Templates разбирает все шаблоны страниц.
func Templates() (*template.Template, error) {
	return template.New("ga").Funcs(funcs).ParseFS(files, "templates/*.html")
}

type Flash struct {
	Kind    string
	Message string
}

// Page общие данные каркаса страницы.
type Page struct {
	Title            string
	Active           string
	Theme            string
	SidebarCollapsed bool
	Username         string
	Avatar           string
	Flash            Flash
	AutoReload       int
	Query            string
}

// FlashTimeout задержка автоскрытия сообщения в миллисекундах.
func (p Page) FlashTimeout() int {
	if p.Active == "perfil" {
		return 3000
	}
	return 5000
}
