// Package handlers содержит gin-обработчики страниц приложения.
package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/valeriaulyamaeva/ga-financas/internal/api"
	"github.com/valeriaulyamaeva/ga-financas/internal/dashboard"
	"github.com/valeriaulyamaeva/ga-financas/internal/session"
	"github.com/valeriaulyamaeva/ga-financas/internal/views"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "handlers").Logger()

const (
	flashSuccess = "success"
	flashError   = "error"

	dashboardPath = "/dashboard"
)

// Deps зависимости обработчиков.
type Deps struct {
	API             *api.Client
	Registry        *dashboard.Registry
	Location        *time.Location
	RefreshInterval time.Duration
	Now             func() time.Time
}

func (d *Deps) now() time.Time {
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

// basePage собирает общие данные каркаса и забирает flash-сообщение.
func basePage(c *gin.Context, title, active string) views.Page {
	sess := session.FromContext(c)
	ctx := c.Request.Context()
	kind, msg := sess.TakeFlash(ctx)
	return views.Page{
		Title:            title,
		Active:           active,
		Theme:            sess.Theme(ctx),
		SidebarCollapsed: sess.SidebarCollapsed(ctx),
		Username:         sess.Value(ctx, session.KeyUsername),
		Flash:            views.Flash{Kind: kind, Message: msg},
		Query:            c.Query("q"),
	}
}

func flashAndRedirect(c *gin.Context, path, kind, msg string) {
	session.FromContext(c).Flash(c.Request.Context(), kind, msg)
	c.Redirect(http.StatusSeeOther, path)
}

// logout завершает сессию и удаляет ее панель.
func (d *Deps) logout(c *gin.Context) {
	d.Registry.Remove(session.FromContext(c).ID)
	session.ForceLogout(c)
}

// unauthorized выполняет выход при 401/403 и сообщает, что ответ уже отправлен.
func (d *Deps) unauthorized(c *gin.Context, err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	logger.Info().Str("session", session.FromContext(c).ID).Str("path", c.Request.URL.Path).Msg("API отклонил токен, выход")
	d.logout(c)
	return true
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func isNetworkError(err error) bool {
	var apiErr *api.APIError
	return err != nil && !errors.As(err, &apiErr)
}

// backTo локальный путь из Referer или fallback.
func backTo(c *gin.Context, fallback string) string {
	ref, err := url.Parse(c.Request.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return fallback
	}
	if ref.Host != "" && ref.Host != c.Request.Host {
		return fallback
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

// HealthHandler проверка живости для балансировщика.
func HealthHandler(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": d.Registry.Len()})
	}
}
