package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/ga-financas/internal/api"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
	"github.com/valeriaulyamaeva/ga-financas/internal/views"
)

const goalsPath = "/metas"

func (d *Deps) renderGoals(c *gin.Context, status int, form views.GoalForm, flash views.Flash) {
	page := views.GoalsPage{Page: basePage(c, "Metas", "metas"), Form: form}
	if flash.Message != "" {
		page.Flash = flash
	}
	goals, err := d.API.ListGoals(c.Request.Context(), session.TokenFromContext(c))
	if err != nil {
		if d.unauthorized(c, err) {
			return
		}
		logger.Error().Err(err).Msg("ошибка загрузки целей")
		page.LoadError = "Erro ao carregar metas."
	} else {
		page.Cards = views.Filter(views.GoalCards(goals), page.Query)
	}
	c.HTML(status, "metas_page", page)
}

func GoalsPageHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.renderGoals(c, http.StatusOK, views.GoalForm{}, views.Flash{})
	}
}

func EditGoalHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			flashAndRedirect(c, goalsPath, flashError, "Meta inválida.")
			return
		}
		goal, err := d.API.GetGoal(c.Request.Context(), session.TokenFromContext(c), id)
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Int("id", id).Msg("ошибка загрузки цели")
			flashAndRedirect(c, goalsPath, flashError, api.UserMessage(err, "Erro ao carregar metas."))
			return
		}
		d.renderGoals(c, http.StatusOK, views.GoalFormFrom(*goal), views.Flash{})
	}
}

// SaveGoalHandler создает цель (POST) или частично обновляет ее (PATCH),
// не трогая накопленную сумму.
func SaveGoalHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := views.GoalForm{
			ID:          views.ParseID(c.PostForm("id")),
			Name:        c.PostForm("nome"),
			Kind:        c.PostForm("tipo"),
			Target:      c.PostForm("valor_alvo"),
			Deadline:    c.PostForm("data_limite"),
			Description: strings.TrimSpace(c.PostForm("descricao")),
		}
		in, err := form.Validate()
		if err != nil {
			d.renderGoals(c, http.StatusBadRequest, form, views.Flash{Kind: flashError, Message: err.Error()})
			return
		}

		ctx := c.Request.Context()
		token := session.TokenFromContext(c)
		msg := "Meta criada com sucesso!"
		if form.Editing() {
			_, err = d.API.UpdateGoal(ctx, token, form.ID, in)
			msg = "Meta atualizada com sucesso!"
		} else {
			_, err = d.API.CreateGoal(ctx, token, in)
		}
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Msg("ошибка сохранения цели")
			d.renderGoals(c, http.StatusBadRequest, form, views.Flash{Kind: flashError, Message: api.UserMessage(err, "Erro ao salvar.")})
			return
		}
		flashAndRedirect(c, goalsPath, flashSuccess, msg)
	}
}

func DeleteGoalHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			flashAndRedirect(c, goalsPath, flashError, "Meta inválida.")
			return
		}
		if err := d.API.DeleteGoal(c.Request.Context(), session.TokenFromContext(c), id); err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Int("id", id).Msg("ошибка удаления цели")
			flashAndRedirect(c, goalsPath, flashError, api.UserMessage(err, "Erro ao excluir."))
			return
		}
		flashAndRedirect(c, goalsPath, flashSuccess, "Meta excluída!")
	}
}
