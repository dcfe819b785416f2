package session

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Str("component", "session").Logger()

// Session привязка Store к конкретному id сессии.
type Session struct {
	ID    string
	store Store
}

func New(id string, store Store) *Session {
	return &Session{ID: id, store: store}
}

// Value возвращает значение или "" если ключа нет. Ошибки хранилища логируются.
func (s *Session) Value(ctx context.Context, key string) string {
	v, err := s.store.Get(ctx, s.ID, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Error().Err(err).Str("session", s.ID).Str("key", key).Msg("ошибка чтения сессии")
		}
		return ""
	}
	return v
}

func (s *Session) Set(ctx context.Context, key, value string) error {
	return s.store.Set(ctx, s.ID, key, value)
}

// SetMany записывает несколько ключей атомарно.
func (s *Session) SetMany(ctx context.Context, values map[string]string) error {
	return s.store.SetMany(ctx, s.ID, values)
}

func (s *Session) Delete(ctx context.Context, keys ...string) error {
	return s.store.Delete(ctx, s.ID, keys...)
}

func (s *Session) Token(ctx context.Context) string {
	return s.Value(ctx, KeyAccessToken)
}

// SignIn сохраняет данные ответа /login/.
func (s *Session) SignIn(ctx context.Context, access, refresh, username, email, userID string) error {
	return s.store.SetMany(ctx, s.ID, map[string]string{
		KeyAccessToken:  access,
		KeyRefreshToken: refresh,
		KeyUsername:     username,
		KeyUserEmail:    email,
		KeyUserID:       userID,
	})
}

// Logout удаляет токены и данные пользователя, сохраняя тему и игровые счетчики.
func (s *Session) Logout(ctx context.Context) error {
	return s.store.Clear(ctx, s.ID, preservedOnLogout...)
}

// Flash сохраняет одноразовое сообщение. kind: success, error, info.
func (s *Session) Flash(ctx context.Context, kind, message string) {
	if err := s.store.SetMany(ctx, s.ID, map[string]string{KeyFlash: message, KeyFlashKind: kind}); err != nil {
		logger.Error().Err(err).Str("session", s.ID).Msg("ошибка сохранения flash")
	}
}

// TakeFlash возвращает и удаляет сообщение.
func (s *Session) TakeFlash(ctx context.Context) (kind, message string) {
	message = s.Value(ctx, KeyFlash)
	if message == "" {
		return "", ""
	}
	kind = s.Value(ctx, KeyFlashKind)
	if err := s.store.Delete(ctx, s.ID, KeyFlash, KeyFlashKind); err != nil {
		logger.Error().Err(err).Str("session", s.ID).Msg("ошибка удаления flash")
	}
	return kind, message
}

// Theme возвращает dark или light (по умолчанию light).
func (s *Session) Theme(ctx context.Context) string {
	if s.Value(ctx, KeyTheme) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// ToggleTheme переключает тему и возвращает новую.
func (s *Session) ToggleTheme(ctx context.Context) (string, error) {
	next := ThemeDark
	if s.Theme(ctx) == ThemeDark {
		next = ThemeLight
	}
	return next, s.store.Set(ctx, s.ID, KeyTheme, next)
}

func (s *Session) SidebarCollapsed(ctx context.Context) bool {
	return s.Value(ctx, KeySidebar) == "true"
}

func (s *Session) ToggleSidebar(ctx context.Context) error {
	next := "true"
	if s.SidebarCollapsed(ctx) {
		next = "false"
	}
	return s.store.Set(ctx, s.ID, KeySidebar, next)
}
