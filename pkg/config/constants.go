package config

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv                 = "CAFE_APP_ENV"
	EnvPort                   = "CAFE_APP_PORT"
	EnvLogLevel               = "CAFE_LOG_LEVEL"
	EnvCORSAllowedOrigins     = "CAFE_CORS_ALLOWED_ORIGINS"
	EnvRedisURL               = "CAFE_REDIS_URL"
	EnvRecommendLimit         = "CAFE_RECOMMEND_LIMIT"
	EnvRecommendWeightMilk    = "CAFE_RECOMMEND_WEIGHT_MILK"
	EnvLoyaltyStartingPoints  = "CAFE_LOYALTY_STARTING_POINTS"
	EnvLoyaltyPointsPerDollar = "CAFE_LOYALTY_POINTS_PER_DOLLAR"
	EnvGiftCardDefaultAmount  = "CAFE_GIFTCARD_DEFAULT_AMOUNT"
	EnvGiftCardMinAmount      = "CAFE_GIFTCARD_MIN_AMOUNT"
	EnvGiftCardMaxAmount      = "CAFE_GIFTCARD_MAX_AMOUNT"
	EnvIdempotencyTTL         = "CAFE_IDEMPOTENCY_TTL"
	EnvSessionIdleTTL         = "CAFE_SESSION_IDLE_TTL"
	EnvSessionSweepInterval   = "CAFE_SESSION_SWEEP_INTERVAL"
)
