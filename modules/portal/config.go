package portal

import "time"

// Token store kinds accepted by Config.TokenStore.
const (
	StoreCookie = "cookie"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

type Config struct {
	LoginPath string `env:"LOGIN_PATH" envDefault:"/login"`
	HomePath  string `env:"HOME_PATH" envDefault:"/dashboard"`
	TokenKey  string `env:"TOKEN_KEY" envDefault:"token"`

	// TokenStore selects where the token slot lives: cookie, memory or redis.
	TokenStore     string        `env:"TOKEN_STORE" envDefault:"cookie"`
	RedisKeyPrefix string        `env:"REDIS_KEY_PREFIX" envDefault:"portal:slot:"`
	// SlotTTL bounds how long a stored token is kept. Zero keeps memory and
	// redis slots until logout and writes session cookies.
	SlotTTL time.Duration `env:"SLOT_TTL" envDefault:"0s"`

	// RoutesFile replaces the default route table with a YAML tree.
	RoutesFile string `env:"ROUTES_FILE"`

	// DevSigningKey enables POST /session/dev. Leave empty in production.
	DevSigningKey string        `env:"DEV_SIGNING_KEY"`
	DevTokenTTL   time.Duration `env:"DEV_TOKEN_TTL" envDefault:"1h"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		LoginPath:      "/login",
		HomePath:       "/dashboard",
		TokenKey:       "token",
		TokenStore:     StoreCookie,
		RedisKeyPrefix: "portal:slot:",
		DevTokenTTL:    time.Hour,
	}
}
