package config

const (
	EnvPrefix = "ART"

	AppEnvDev  = "dev"
	AppEnvTest = "test"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv          = "ART_APP_ENV"
	EnvPort            = "ART_APP_PORT"
	EnvPlatformPort    = "PORT"
	EnvLogLevel        = "ART_LOG_LEVEL"
	EnvLogFormat       = "ART_LOG_FORMAT"
	EnvCORSOrigins     = "ART_CORS_ORIGINS"
	EnvDBDSN           = "ART_DB_DSN"
	EnvRedisURL        = "ART_REDIS_URL"
	EnvJWTSecret       = "ART_JWT_SECRET"
	EnvJWTIssuer       = "ART_JWT_ISSUER"
	EnvJWTTTL          = "ART_JWT_TTL"
	EnvCookieName      = "ART_COOKIE_NAME"
	EnvAdminEmail      = "ART_ADMIN_EMAIL"
	EnvAdminPassword   = "ART_ADMIN_PASSWORD"
	EnvBarcodePrefix   = "ART_BARCODE_PREFIX"
	EnvAutoMigrate     = "ART_AUTO_MIGRATE"
	EnvTestDBDSN       = "ART_TEST_DB_DSN"
	EnvLoginEmailLimit = "ART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT"
	EnvLoginWindow     = "ART_AUTH_RATE_LIMIT_LOGIN_WINDOW"
)
