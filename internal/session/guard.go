package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CookieName = "ga_session"
	contextKey = "session"
	tokenKey   = "accessToken"
	LoginPath  = "/"
)

// Middleware выдает cookie сессии и кладет *Session в контекст gin.
func Middleware(store Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CookieName)
		if _, perr := uuid.Parse(id); err != nil || perr != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CookieName, id, 0, "/", "", secure, true)
		}
		c.Set(contextKey, New(id, store))
		c.Next()
	}
}

// FromContext сессия текущего запроса.
func FromContext(c *gin.Context) *Session {
	return c.MustGet(contextKey).(*Session)
}

// TokenFromContext токен, проверенный Guard.
func TokenFromContext(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// Guard пропускает запрос только при наличии действующего токена.
func Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := FromContext(c)
		ctx := c.Request.Context()
		token := sess.Token(ctx)
		if token == "" {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		if Expired(token, time.Now()) {
			logger.Info().Str("session", sess.ID).Msg("токен истек, выход")
			ForceLogout(c)
			return
		}
		c.Set(tokenKey, token)
		c.Next()
	}
}

// ForceLogout очищает сессию и перенаправляет на страницу входа.
func ForceLogout(c *gin.Context) {
	sess := FromContext(c)
	if err := sess.Logout(c.Request.Context()); err != nil {
		logger.Error().Err(err).Str("session", sess.ID).Msg("ошибка выхода")
	}
	c.Redirect(http.StatusSeeOther, LoginPath)
	c.Abort()
}

// Expired true, если token является JWT с exp в прошлом. Подпись не проверяется:
// токен выдан внешним API, здесь важен только срок действия.
func Expired(token string, now time.Time) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time)
}
