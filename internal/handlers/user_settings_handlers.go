package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
)

// ThemeHandler переключает тему и возвращает на предыдущую страницу.
func ThemeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)
		if _, err := sess.ToggleTheme(c.Request.Context()); err != nil {
			logger.Error().Err(err).Str("session", sess.ID).Msg("ошибка смены темы")
		}
		c.Redirect(http.StatusSeeOther, backTo(c, dashboardPath))
	}
}

func SidebarHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)
		if err := sess.ToggleSidebar(c.Request.Context()); err != nil {
			logger.Error().Err(err).Str("session", sess.ID).Msg("ошибка переключения меню")
		}
		c.Redirect(http.StatusSeeOther, backTo(c, dashboardPath))
	}
}
