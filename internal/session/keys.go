package session

// Ключи сессии.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUsername     = "username"
	KeyUserEmail    = "userEmail"
	KeyUserID       = "userId"

	KeyTheme           = "ga_theme"
	KeySpendingLimit   = "ga_limite_gastos"
	KeyStreakCount     = "ga_streak_count"
	KeyStreakLastLogin = "ga_streak_last_login"
	KeyOnboardingDone  = "ga_primeiros_passos_concluidos"
	KeySidebar         = "ga_sidebar"

	KeyFlash     = "flash"
	KeyFlashKind = "flash_kind"
)

// preservedOnLogout переживают выход из аккаунта.
var preservedOnLogout = []string{
	KeyTheme,
	KeySpendingLimit,
	KeyStreakCount,
	KeyStreakLastLogin,
	KeyOnboardingDone,
	KeySidebar,
}

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)
