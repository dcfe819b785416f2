package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/ga-financas/internal/handlers"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
	"github.com/valeriaulyamaeva/ga-financas/internal/views"
	"github.com/valeriaulyamaeva/ga-financas/models"
)

// SetupRouter регистрирует все страницы приложения.
func SetupRouter(d *handlers.Deps, store session.Store, secureCookie bool) (*gin.Engine, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблонов: %w", err)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET("/healthz", handlers.HealthHandler(d))

	web := r.Group("/", session.Middleware(store, secureCookie))
	web.GET("/", handlers.LoginPageHandler(d))
	web.GET("/login", handlers.LoginPageHandler(d))
	web.POST("/login", handlers.LoginHandler(d))
	web.POST("/registro", handlers.RegisterHandler(d))
	web.POST("/logout", handlers.LogoutHandler(d))
	web.POST("/tema", handlers.ThemeHandler())
	web.POST("/sidebar", handlers.SidebarHandler())

	app := web.Group("/", session.Guard())
	app.GET("/dashboard", handlers.DashboardHandler(d))
	app.POST("/dashboard/limite", handlers.SpendingLimitHandler(d))
	app.GET("/dashboard/relatorio.pdf", handlers.ReportHandler(d, "pdf"))
	app.GET("/dashboard/relatorio.xlsx", handlers.ReportHandler(d, "xlsx"))
	app.GET("/dashboard/grafico.png", handlers.ChartHandler(d))

	app.GET("/categorias", handlers.CategoriesPageHandler(d))
	app.POST("/categorias", handlers.SaveCategoryHandler(d))
	app.GET("/categorias/:id/edit", handlers.EditCategoryHandler(d))
	app.POST("/categorias/:id/delete", handlers.DeleteCategoryHandler(d))

	for path, kind := range map[string]models.Kind{"/despesas": models.KindExpense, "/receitas": models.KindIncome} {
		app.GET(path, handlers.TransactionsPageHandler(d, kind))
		app.POST(path, handlers.SaveTransactionHandler(d, kind))
		app.GET(path+"/:id/edit", handlers.EditTransactionHandler(d, kind))
		app.POST(path+"/:id/delete", handlers.DeleteTransactionHandler(d, kind))
	}

	app.GET("/metas", handlers.GoalsPageHandler(d))
	app.POST("/metas", handlers.SaveGoalHandler(d))
	app.GET("/metas/:id/edit", handlers.EditGoalHandler(d))
	app.POST("/metas/:id/delete", handlers.DeleteGoalHandler(d))

	app.GET("/perfil", handlers.ProfilePageHandler(d))
	app.POST("/perfil", handlers.ProfileSaveHandler(d))
	app.POST("/perfil/avatar", handlers.AvatarHandler(d))
	app.GET("/meus-dados", handlers.AnalyticsHandler(d))

	return r, nil
}
