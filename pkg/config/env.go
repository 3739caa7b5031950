package config

const EnvPrefix = "medavail"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv                   = "MEDAVAIL_APP_ENV"
	EnvPort                     = "MEDAVAIL_APP_PORT"
	EnvDBDSN                    = "MEDAVAIL_DB_DSN"
	EnvDBHost                   = "MEDAVAIL_DB_HOST"
	EnvDBUser                   = "MEDAVAIL_DB_USER"
	EnvDBName                   = "MEDAVAIL_DB_NAME"
	EnvRedisURL                 = "MEDAVAIL_REDIS_URL"
	EnvJWTSecret                = "MEDAVAIL_JWT_SECRET"
	EnvJWTIssuer                = "MEDAVAIL_JWT_ISSUER"
	EnvJWTExpMins               = "MEDAVAIL_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes   = "MEDAVAIL_REFRESH_TOKEN_TTL_MINUTES"
	EnvUseSQLite                = "MEDAVAIL_USE_SQLITE"
	EnvFreshWithin              = "MEDAVAIL_FRESHNESS_FRESH_WITHIN"
	EnvStaleAfter               = "MEDAVAIL_FRESHNESS_STALE_AFTER"
	EnvInventoryEnforceCapacity = "MEDAVAIL_INVENTORY_ENFORCE_CAPACITY"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
