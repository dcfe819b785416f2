package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/ga-financas/internal/api"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
	"github.com/valeriaulyamaeva/ga-financas/internal/views"
	"github.com/valeriaulyamaeva/ga-financas/models"
)

const categoriesPath = "/categorias"

// renderCategories загружает список и показывает страницу с формой form.
func (d *Deps) renderCategories(c *gin.Context, status int, form views.CategoryForm, flash views.Flash) {
	page := views.CategoriesPage{Page: basePage(c, "Categorias", "categorias"), Form: form, Icons: views.CategoryIcons}
	if flash.Message != "" {
		page.Flash = flash
	}

	categories, err := d.API.ListCategories(c.Request.Context(), session.TokenFromContext(c))
	if err != nil {
		if d.unauthorized(c, err) {
			return
		}
		logger.Error().Err(err).Msg("ошибка загрузки категорий")
		page.LoadError = api.UserMessage(err, "falha de conexão")
	} else {
		page.Cards = views.Filter(views.CategoryCards(categories), page.Query)
	}
	c.HTML(status, "categorias_page", page)
}

func CategoriesPageHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.renderCategories(c, http.StatusOK, views.CategoryForm{}, views.Flash{})
	}
}

// EditCategoryHandler открывает форму в режиме редактирования.
func EditCategoryHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			flashAndRedirect(c, categoriesPath, flashError, "Categoria inválida.")
			return
		}
		category, err := d.API.GetCategory(c.Request.Context(), session.TokenFromContext(c), id)
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Int("id", id).Msg("ошибка загрузки категории")
			flashAndRedirect(c, categoriesPath, flashError, api.UserMessage(err, "Erro ao carregar categoria."))
			return
		}
		d.renderCategories(c, http.StatusOK, views.CategoryFormFrom(*category), views.Flash{})
	}
}

// SaveCategoryHandler создает категорию или, при заполненном id, обновляет ее.
func SaveCategoryHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := views.CategoryForm{
			ID:          views.ParseID(c.PostForm("id")),
			Name:        c.PostForm("nome"),
			Kind:        models.Kind(c.PostForm("tipo")),
			Icon:        c.PostForm("icone"),
			Color:       c.PostForm("cor"),
			Description: strings.TrimSpace(c.PostForm("descricao")),
		}
		in, err := form.Validate()
		if err != nil {
			d.renderCategories(c, http.StatusBadRequest, form, views.Flash{Kind: flashError, Message: err.Error()})
			return
		}

		ctx := c.Request.Context()
		token := session.TokenFromContext(c)
		msg := "Categoria adicionada com sucesso!"
		if form.Editing() {
			_, err = d.API.UpdateCategory(ctx, token, form.ID, in)
			msg = "Categoria atualizada com sucesso!"
		} else {
			_, err = d.API.CreateCategory(ctx, token, in)
		}
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Msg("ошибка сохранения категории")
			d.renderCategories(c, http.StatusBadRequest, form, views.Flash{Kind: flashError, Message: api.UserMessage(err, "Erro ao salvar.")})
			return
		}
		flashAndRedirect(c, categoriesPath, flashSuccess, msg)
	}
}

func DeleteCategoryHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			flashAndRedirect(c, categoriesPath, flashError, "Categoria inválida.")
			return
		}
		if err := d.API.DeleteCategory(c.Request.Context(), session.TokenFromContext(c), id); err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Int("id", id).Msg("ошибка удаления категории")
			flashAndRedirect(c, categoriesPath, flashError, api.UserMessage(err, "Erro ao excluir."))
			return
		}
		flashAndRedirect(c, categoriesPath, flashSuccess, "Categoria excluída!")
	}
}
