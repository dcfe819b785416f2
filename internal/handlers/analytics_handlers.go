package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/ga-financas/internal/gamification"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
	"github.com/valeriaulyamaeva/ga-financas/internal/views"
)

// AnalyticsHandler страница "Meus dados" с фильтром ?mes=MM&ano=YYYY.
func AnalyticsHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := basePage(c, "Meus Dados", "meus-dados")
		filter := gamification.Filter{Month: c.Query("mes"), Year: c.Query("ano")}

		txs, err := d.API.ListTransactions(c.Request.Context(), session.TokenFromContext(c), "")
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Error().Err(err).Msg("ошибка загрузки данных аналитики")
			page := views.NewAnalyticsPage(base, gamification.Analyze(nil, filter))
			page.LoadError = "Erro ao carregar dados."
			c.HTML(http.StatusOK, "meus_dados_page", page)
			return
		}
		c.HTML(http.StatusOK, "meus_dados_page", views.NewAnalyticsPage(base, gamification.Analyze(txs, filter)))
	}
}
