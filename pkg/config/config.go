package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App         AppConfig
	CORS        CORSConfig
	Redis       RedisConfig
	Recommend   RecommendConfig
	Loyalty     LoyaltyConfig
	GiftCard    GiftCardConfig
	IDs         IDConfig
	Idempotency IdempotencyConfig
	Sessions    SessionConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Recommend.validate(); err != nil {
		return nil, err
	}
	if err := cfg.GiftCard.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Sessions.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAFE_APP_ENV" required:"true"`
	Port         string `envconfig:"CAFE_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CAFE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAFE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CORSConfig lists the storefront origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"CAFE_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
}

// RedisConfig is optional; leaving both URL and Address empty disables the
// idempotency store.
type RedisConfig struct {
	URL          string        `envconfig:"CAFE_REDIS_URL"`
	Address      string        `envconfig:"CAFE_REDIS_ADDR"`
	Password     string        `envconfig:"CAFE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAFE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAFE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CAFE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CAFE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAFE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAFE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type RecommendConfig struct {
	Limit          int     `envconfig:"CAFE_RECOMMEND_LIMIT" default:"3"`
	WeightPurchase float64 `envconfig:"CAFE_RECOMMEND_WEIGHT_PURCHASE" default:"10"`
	WeightCategory float64 `envconfig:"CAFE_RECOMMEND_WEIGHT_CATEGORY" default:"5"`
	WeightFlavor   float64 `envconfig:"CAFE_RECOMMEND_WEIGHT_FLAVOR" default:"1"`
	WeightMilk     float64 `envconfig:"CAFE_RECOMMEND_WEIGHT_MILK" default:"1"`
	OverlapCap     float64 `envconfig:"CAFE_RECOMMEND_OVERLAP_CAP" default:"4"`
}

func (r RecommendConfig) validate() error {
	if r.Limit <= 0 {
		return fmt.Errorf("%s must be positive", EnvRecommendLimit)
	}
	if r.WeightPurchase <= 0 || r.WeightCategory <= 0 || r.WeightFlavor <= 0 || r.WeightMilk <= 0 || r.OverlapCap <= 0 {
		return fmt.Errorf("recommendation weights must be positive")
	}
	return nil
}

type LoyaltyConfig struct {
	StartingPoints  int             `envconfig:"CAFE_LOYALTY_STARTING_POINTS" default:"120"`
	PointsPerDollar decimal.Decimal `envconfig:"CAFE_LOYALTY_POINTS_PER_DOLLAR" default:"1"`
	NewItemBonus    int             `envconfig:"CAFE_LOYALTY_NEW_ITEM_BONUS" default:"5"`
}

type GiftCardConfig struct {
	DefaultAmount decimal.Decimal `envconfig:"CAFE_GIFTCARD_DEFAULT_AMOUNT" default:"25"`
	MinAmount     decimal.Decimal `envconfig:"CAFE_GIFTCARD_MIN_AMOUNT" default:"5"`
	MaxAmount     decimal.Decimal `envconfig:"CAFE_GIFTCARD_MAX_AMOUNT" default:"500"`
}

func (g GiftCardConfig) validate() error {
	if !g.MinAmount.IsPositive() {
		return fmt.Errorf("%s must be positive", EnvGiftCardMinAmount)
	}
	if g.MaxAmount.LessThan(g.MinAmount) {
		return fmt.Errorf("%s must not be below %s", EnvGiftCardMaxAmount, EnvGiftCardMinAmount)
	}
	if g.DefaultAmount.LessThan(g.MinAmount) || g.DefaultAmount.GreaterThan(g.MaxAmount) {
		return fmt.Errorf("%s must fall between the min and max amounts", EnvGiftCardDefaultAmount)
	}
	return nil
}

type IDConfig struct {
	SnowflakeNode int64 `envconfig:"CAFE_SNOWFLAKE_NODE" default:"1"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"CAFE_IDEMPOTENCY_TTL" default:"24h"`
}

// SessionConfig bounds how long an untouched storefront session is kept.
type SessionConfig struct {
	IdleTTL       time.Duration `envconfig:"CAFE_SESSION_IDLE_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"CAFE_SESSION_SWEEP_INTERVAL" default:"5m"`
}

func (s SessionConfig) validate() error {
	if s.IdleTTL <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionIdleTTL)
	}
	if s.SweepInterval <= 0 {
		return fmt.Errorf("%s must be positive", EnvSessionSweepInterval)
	}
	return nil
}
