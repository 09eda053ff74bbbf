package config

// EnvPrefix is empty because every field tag already carries the full variable name.
const EnvPrefix = ""

const (
	EnvAppEnv   = "ARTESANOS_APP_ENV"
	EnvPort     = "ARTESANOS_APP_PORT"
	EnvLogLevel = "ARTESANOS_LOG_LEVEL"

	EnvDBDSN  = "ARTESANOS_DB_DSN"
	EnvDBHost = "ARTESANOS_DB_HOST"
	EnvDBUser = "ARTESANOS_DB_USER"
	EnvDBName = "ARTESANOS_DB_NAME"

	EnvRedisURL      = "ARTESANOS_REDIS_URL"
	EnvSessionSecret = "ARTESANOS_SESSION_SECRET"
	EnvUseSQLite     = "ARTESANOS_USE_SQLITE"

	EnvReviewRatingMin        = "ARTESANOS_REVIEW_RATING_MIN"
	EnvReviewRatingMax        = "ARTESANOS_REVIEW_RATING_MAX"
	EnvReviewCommentMaxLength = "ARTESANOS_REVIEW_COMMENT_MAX_LENGTH"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
