package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/ga-financas/internal/dashboard"
	"github.com/valeriaulyamaeva/ga-financas/internal/report"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
	"github.com/valeriaulyamaeva/ga-financas/internal/views"
)

const chartSize = 320

// DashboardHandler показывает последний снимок панели. Страница сама
// перезагружается с периодом опроса.
func DashboardHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)
		page := basePage(c, "Dashboard", "dashboard")
		page.AutoReload = int(d.RefreshInterval.Seconds())

		snap, err := d.Registry.For(sess).View(c.Request.Context())
		switch {
		case errors.Is(err, dashboard.ErrLoggedOut):
			d.Registry.Remove(sess.ID)
			c.Redirect(http.StatusSeeOther, session.LoginPath)
			return
		case errors.Is(err, dashboard.ErrInFlight):
		case err != nil:
			logger.Error().Err(err).Str("session", sess.ID).Msg("ошибка загрузки панели")
			if page.Flash.Message == "" {
				page.Flash = views.Flash{Kind: flashError, Message: "Erro ao carregar dados."}
			}
		}
		if snap != nil && snap.User.Avatar != "" {
			page.Avatar = snap.User.Avatar
		}
		c.HTML(http.StatusOK, "dashboard_page", views.NewDashboardPage(page, snap))
	}
}

// SpendingLimitHandler сохраняет новый лимит трат.
func SpendingLimitHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp := d.Registry.For(session.FromContext(c))
		if err := comp.SetSpendingLimit(c.Request.Context(), c.PostForm("limite")); err != nil {
			logger.Warn().Err(err).Msg("неверный лимит")
			flashAndRedirect(c, dashboardPath, flashError, "Digite um valor válido maior que zero.")
			return
		}
		flashAndRedirect(c, dashboardPath, flashSuccess, "Limite de gastos atualizado!")
	}
}

// ReportHandler выгружает отчет по последнему снимку в формате ext.
func ReportHandler(d *Deps, ext string) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := d.now()
		r := report.Build(d.Registry.For(session.FromContext(c)).Snapshot(), now)

		var (
			data        []byte
			err         error
			contentType string
		)
		switch ext {
		case "pdf":
			data, err = r.PDF()
			contentType = "application/pdf"
		case "xlsx":
			data, err = r.XLSX()
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		default:
			err = fmt.Errorf("неизвестный формат отчета %q", ext)
		}
		if err != nil {
			logger.Error().Err(err).Str("format", ext).Msg("ошибка генерации отчета")
			flashAndRedirect(c, dashboardPath, flashError, "Erro ao gerar relatório.")
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, report.Filename(now, ext)))
		c.Data(http.StatusOK, contentType, data)
	}
}

// ChartHandler PNG графика доходов по категориям из последнего снимка.
func ChartHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		comp, ok := d.Registry.Lookup(session.FromContext(c).ID)
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		snap := comp.Snapshot()
		if snap == nil || snap.ChartEmpty {
			c.Status(http.StatusNotFound)
			return
		}
		png, err := report.ChartPNG(snap.Chart, chartSize)
		if err != nil {
			logger.Error().Err(err).Msg("ошибка рисования графика")
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "image/png", png)
	}
}
