package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/ga-financas/internal/api"
	"github.com/valeriaulyamaeva/ga-financas/internal/gamification"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
	"github.com/valeriaulyamaeva/ga-financas/internal/views"
	"github.com/valeriaulyamaeva/ga-financas/models"
	"github.com/valeriaulyamaeva/ga-financas/utils"
)

// renderTransactions страница receitas или despesas: итог из /estatisticas/,
// категории нужного типа для формы и отфильтрованный список.
func (d *Deps) renderTransactions(c *gin.Context, status int, kind models.Kind, form views.TransactionForm, flash views.Flash) {
	text := views.TextsFor(kind)
	page := views.TransactionsPage{
		Page: basePage(c, text.Heading, strings.TrimPrefix(text.Path, "/")),
		Kind: kind,
		Text: text,
		Form: form,
	}
	if flash.Message != "" {
		page.Flash = flash
	}
	ctx := c.Request.Context()
	token := session.TokenFromContext(c)

	txs, err := d.API.ListTransactions(ctx, token, kind)
	if err != nil {
		if d.unauthorized(c, err) {
			return
		}
		logger.Error().Err(err).Str("tipo", string(kind)).Msg("ошибка загрузки транзакций")
		page.LoadError = text.LoadError
	} else {
		page.Cards = views.Filter(views.TransactionCards(txs), page.Query)
	}

	stats, err := d.API.Statistics(ctx, token)
	switch {
	case err == nil && kind == models.KindIncome:
		page.Total = utils.FormatBRL(stats.TotalIncome)
	case err == nil:
		page.Total = utils.FormatBRL(stats.TotalExpenses)
	case d.unauthorized(c, err):
		return
	default:
		logger.Warn().Err(err).Msg("ошибка загрузки статистики")
		totals := gamification.ComputeTotals(txs)
		if kind == models.KindIncome {
			page.Total = utils.FormatBRL(totals.Income)
		} else {
			page.Total = utils.FormatBRL(totals.Expenses)
		}
	}

	categories, err := d.API.ListCategories(ctx, token)
	if err != nil {
		if d.unauthorized(c, err) {
			return
		}
		logger.Warn().Err(err).Msg("ошибка загрузки категорий для формы")
	}
	page.Categories = models.FilterCategoriesByKind(categories, kind)
	c.HTML(status, "transacoes_page", page)
}

func TransactionsPageHandler(d *Deps, kind models.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.renderTransactions(c, http.StatusOK, kind, views.TransactionForm{Kind: kind}, views.Flash{})
	}
}

func EditTransactionHandler(d *Deps, kind models.Kind) gin.HandlerFunc {
	text := views.TextsFor(kind)
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			flashAndRedirect(c, text.Path, flashError, "Registro inválido.")
			return
		}
		tx, err := d.API.GetTransaction(c.Request.Context(), session.TokenFromContext(c), id)
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Int("id", id).Msg("ошибка загрузки транзакции")
			flashAndRedirect(c, text.Path, flashError, api.UserMessage(err, text.LoadError))
			return
		}
		if tx.Kind != kind {
			flashAndRedirect(c, text.Path, flashError, "Registro inválido.")
			return
		}
		d.renderTransactions(c, http.StatusOK, kind, views.TransactionFormFrom(*tx), views.Flash{})
	}
}

func SaveTransactionHandler(d *Deps, kind models.Kind) gin.HandlerFunc {
	text := views.TextsFor(kind)
	return func(c *gin.Context) {
		categoryID, _ := strconv.Atoi(c.PostForm("categoria"))
		form := views.TransactionForm{
			ID:          views.ParseID(c.PostForm("id")),
			Kind:        kind,
			Description: c.PostForm("descricao"),
			Amount:      c.PostForm("valor"),
			Date:        c.PostForm("data"),
			CategoryID:  categoryID,
			Note:        strings.TrimSpace(c.PostForm("observacao")),
		}
		in, err := form.Validate()
		if err != nil {
			d.renderTransactions(c, http.StatusBadRequest, kind, form, views.Flash{Kind: flashError, Message: err.Error()})
			return
		}

		ctx := c.Request.Context()
		token := session.TokenFromContext(c)
		msg := text.Added
		if form.Editing() {
			_, err = d.API.UpdateTransaction(ctx, token, form.ID, in)
			msg = text.Updated
		} else {
			_, err = d.API.CreateTransaction(ctx, token, in)
		}
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Str("tipo", string(kind)).Msg("ошибка сохранения транзакции")
			d.renderTransactions(c, http.StatusBadRequest, kind, form, views.Flash{Kind: flashError, Message: api.UserMessage(err, text.SaveError)})
			return
		}
		flashAndRedirect(c, text.Path, flashSuccess, msg)
	}
}

func DeleteTransactionHandler(d *Deps, kind models.Kind) gin.HandlerFunc {
	text := views.TextsFor(kind)
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			flashAndRedirect(c, text.Path, flashError, "Registro inválido.")
			return
		}
		if err := d.API.DeleteTransaction(c.Request.Context(), session.TokenFromContext(c), id); err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Int("id", id).Msg("ошибка удаления транзакции")
			flashAndRedirect(c, text.Path, flashError, api.UserMessage(err, "Erro ao excluir."))
			return
		}
		flashAndRedirect(c, text.Path, flashSuccess, text.Deleted)
	}
}
