package config

const (
	EnvPrefix = "INVEN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "INVEN_DB_DSN"
	EnvDBHost = "INVEN_DB_HOST"
	EnvDBUser = "INVEN_DB_USER"
	EnvDBName = "INVEN_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
