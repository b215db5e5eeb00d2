package config

const EnvPrefix = "PLANNER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv                 = "PLANNER_APP_ENV"
	EnvPort                   = "PLANNER_APP_PORT"
	EnvDBDSN                  = "PLANNER_DB_DSN"
	EnvDBHost                 = "PLANNER_DB_HOST"
	EnvDBUser                 = "PLANNER_DB_USER"
	EnvDBName                 = "PLANNER_DB_NAME"
	EnvDBPassword             = "PLANNER_DB_PASSWORD"
	EnvRedisURL               = "PLANNER_REDIS_URL"
	EnvJWTSecret              = "PLANNER_JWT_SECRET"
	EnvJWTIssuer              = "PLANNER_JWT_ISSUER"
	EnvJWTExpMins             = "PLANNER_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "PLANNER_REFRESH_TOKEN_TTL_MINUTES"
	EnvUseSQLite              = "PLANNER_USE_SQLITE"
	EnvGoogleMapsAPIKey       = "PLANNER_GOOGLE_MAPS_API_KEY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
