package httpapi

// Config controls the HTTP session-cookie transport. Transport security
// flags live here, layered on top of the token contract, not inside it.
type Config struct {
	CookieName    string `env:"SESSION_COOKIE_NAME" envDefault:"session_id"`  // CookieName is the name of the session cookie.
	SecureCookies bool   `env:"SESSION_SECURE_COOKIES" envDefault:"true"`     // SecureCookies sets the Secure flag on session cookies.
}

// DefaultConfig returns the default transport configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:    "session_id",
		SecureCookies: true,
	}
}
