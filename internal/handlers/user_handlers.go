package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/valeriaulyamaeva/ga-financas/internal/api"
	"github.com/valeriaulyamaeva/ga-financas/internal/gamification"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
	"github.com/valeriaulyamaeva/ga-financas/internal/views"
	"github.com/valeriaulyamaeva/ga-financas/models"
)

func loginPage(c *gin.Context, panel string) views.LoginPage {
	page := views.LoginPage{Page: basePage(c, "Entrar", ""), Panel: panel}
	if page.Flash.Message != "" {
		if page.Flash.Kind == flashError {
			page.Error = page.Flash.Message
		} else {
			page.Info = page.Flash.Message
		}
	}
	return page
}

// LoginPageHandler страница входа и регистрации. С действующим токеном
// сразу ведет на панель.
func LoginPageHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := session.FromContext(c)
		if token := sess.Token(c.Request.Context()); token != "" && !session.Expired(token, d.now()) {
			c.Redirect(http.StatusSeeOther, dashboardPath)
			return
		}
		panel := views.PanelLogin
		if c.Query("painel") == views.PanelRegister {
			panel = views.PanelRegister
		}
		page := loginPage(c, panel)
		page.Username = c.Query("usuario")
		c.HTML(http.StatusOK, "login_page", page)
	}
}

func LoginHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds := models.Credentials{
			Username: strings.TrimSpace(c.PostForm("username")),
			Password: c.PostForm("password"),
		}
		page := loginPage(c, views.PanelLogin)
		page.Username = creds.Username
		if creds.Username == "" || creds.Password == "" {
			page.Error = "Preencha usuário e senha."
			c.HTML(http.StatusBadRequest, "login_page", page)
			return
		}

		ctx := c.Request.Context()
		resp, err := d.API.Login(ctx, creds)
		if err != nil {
			logger.Warn().Err(err).Str("username", creds.Username).Msg("ошибка входа")
			page.Error = api.UserMessage(err, "Erro de conexão.")
			c.HTML(http.StatusUnauthorized, "login_page", page)
			return
		}

		username := resp.Username
		if username == "" {
			username = creds.Username
		}
		sess := session.FromContext(c)
		d.Registry.Remove(sess.ID)
		if err := sess.SignIn(ctx, resp.Access, resp.Refresh, username, resp.Email, strconv.Itoa(resp.ID)); err != nil {
			logger.Error().Err(err).Str("session", sess.ID).Msg("ошибка сохранения сессии")
			page.Error = "Erro ao iniciar sessão."
			c.HTML(http.StatusInternalServerError, "login_page", page)
			return
		}
		flashAndRedirect(c, dashboardPath, flashSuccess, "Login realizado com sucesso!")
	}
}

func RegisterHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		form := views.RegisterForm{
			Username: strings.TrimSpace(c.PostForm("username")),
			Email:    strings.TrimSpace(c.PostForm("email")),
			Password: c.PostForm("password"),
			Confirm:  c.PostForm("confirm"),
		}
		page := loginPage(c, views.PanelRegister)
		page.Username = form.Username

		reg, err := form.Validate()
		if err != nil {
			page.Error = err.Error()
			c.HTML(http.StatusBadRequest, "login_page", page)
			return
		}
		if err := d.API.Register(c.Request.Context(), reg); err != nil {
			logger.Warn().Err(err).Str("username", reg.Username).Msg("ошибка регистрации")
			page.Error = api.UserMessage(err, "Erro ao criar conta. Usuário ou E-mail já podem existir.")
			c.HTML(http.StatusBadRequest, "login_page", page)
			return
		}
		flashAndRedirect(c, "/?usuario="+url.QueryEscape(reg.Username), flashSuccess,
			"Conta criada com sucesso! Agora faça login com sua nova conta")
	}
}

func LogoutHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.logout(c)
	}
}

// ProfilePageHandler профиль со статистикой, уровнем и всеми трофеями.
func ProfilePageHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token := session.TokenFromContext(c)
		page := views.ProfilePage{Page: basePage(c, "Perfil", "perfil")}

		user, err := d.API.Me(ctx, token)
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Error().Err(err).Msg("ошибка загрузки профиля")
			page.LoadError = "Erro de conexão."
			page.Avatars = views.Avatars("")
			c.HTML(http.StatusOK, "perfil_page", page)
			return
		}
		txs, err := d.API.ListTransactions(ctx, token, "")
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Msg("ошибка загрузки транзакций профиля")
		}
		goals, err := d.API.ListGoals(ctx, token)
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Msg("ошибка загрузки целей профиля")
		}
		stats, err := d.API.Statistics(ctx, token)
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			totals := gamification.ComputeTotals(txs)
			stats = &models.Statistics{TotalIncome: totals.Income, TotalExpenses: totals.Expenses}
		}

		level := gamification.LevelFor(len(txs))
		page.User = *user
		page.Avatar = user.Avatar
		page.MemberSince = views.MemberSince(user.DateJoined, d.now().Location())
		page.Stats = views.NewProfileStats(*stats, len(goals), len(txs))
		page.Level = level
		page.Trophies = gamification.EvaluateTrophies(gamification.Stats{
			Balance:      stats.Balance(),
			Transactions: len(txs),
			Level:        level.Number,
			Goals:        len(goals),
		})
		page.Avatars = views.Avatars(user.Avatar)
		c.HTML(http.StatusOK, "perfil_page", page)
	}
}

func profileError(err error) string {
	if isNetworkError(err) {
		return "Erro de conexão."
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
		return apiErr.Message()
	}
	return "Erro ao salvar."
}

func ProfileSaveHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		bio := strings.TrimSpace(c.PostForm("bio"))
		in := models.ProfileInput{
			Username: strings.TrimSpace(c.PostForm("username")),
			Email:    strings.TrimSpace(c.PostForm("email")),
			Bio:      &bio,
		}
		user, err := d.API.UpdateMe(ctx, session.TokenFromContext(c), in)
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Msg("ошибка сохранения профиля")
			flashAndRedirect(c, "/perfil", flashError, profileError(err))
			return
		}
		sess := session.FromContext(c)
		if user.Username != "" {
			if err := sess.Set(ctx, session.KeyUsername, user.Username); err != nil {
				logger.Error().Err(err).Str("session", sess.ID).Msg("ошибка обновления имени в сессии")
			}
		}
		flashAndRedirect(c, "/perfil", flashSuccess, "Perfil salvo no banco de dados!")
	}
}

func AvatarHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seed := c.PostForm("seed")
		if !slices.Contains(views.AvatarSeeds, seed) {
			flashAndRedirect(c, "/perfil", flashError, "Avatar inválido.")
			return
		}
		_, err := d.API.UpdateMe(c.Request.Context(), session.TokenFromContext(c), models.ProfileInput{Avatar: views.AvatarURL(seed)})
		if err != nil {
			if d.unauthorized(c, err) {
				return
			}
			logger.Warn().Err(err).Msg("ошибка сохранения аватара")
			flashAndRedirect(c, "/perfil", flashError, profileError(err))
			return
		}
		flashAndRedirect(c, "/perfil", flashSuccess, "Avatar atualizado!")
	}
}
