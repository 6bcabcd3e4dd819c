package config

import (
	"net/url"
	"os"
)

// parseEnv overlays credentials from the environment.
//
// Recognized variables:
//
//	TRELLO_KEY, TRELLO_TOKEN            API credentials
//	DATABASE_DSN, ADMIN_DATABASE_DSN    full DSNs, take precedence
//	AWS_POSTGRES_HOST/_DB/_USER/_PW     run credential set, composed
//	POSTGRES_HOST/_DB/_USER/_PW         admin credential set, composed
//	S3_ROOT_USER, S3_ROOT_PASSWORD,
//	S3_BUCKET, S3_REGION, S3_BASE_ENDPOINT
func parseEnv(config *Config) {
	setIfPresent(&config.TrelloKey, "TRELLO_KEY")
	setIfPresent(&config.TrelloToken, "TRELLO_TOKEN")

	if dsn := composeDSN("AWS_POSTGRES_HOST", "AWS_POSTGRES_DB", "AWS_POSTGRES_USER", "AWS_POSTGRES_PW"); dsn != "" {
		config.DatabaseDSN = dsn
	}
	if dsn := composeDSN("POSTGRES_HOST", "POSTGRES_DB", "POSTGRES_USER", "POSTGRES_PW"); dsn != "" {
		config.AdminDatabaseDSN = dsn
	}
	setIfPresent(&config.DatabaseDSN, "DATABASE_DSN")
	setIfPresent(&config.AdminDatabaseDSN, "ADMIN_DATABASE_DSN")

	setIfPresent(&config.S3RootUser, "S3_ROOT_USER")
	setIfPresent(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	setIfPresent(&config.S3Bucket, "S3_BUCKET")
	setIfPresent(&config.S3Region, "S3_REGION")
	setIfPresent(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
}

func setIfPresent(dst *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

// composeDSN builds a pgx DSN from the historical host/db/user/password
// variable quartet. Returns "" unless db, user and password are all set;
// the host defaults to localhost.
func composeDSN(hostVar, dbVar, userVar, pwVar string) string {
	db := os.Getenv(dbVar)
	user := os.Getenv(userVar)
	pw := os.Getenv(pwVar)
	if db == "" || user == "" || pw == "" {
		return ""
	}
	host := os.Getenv(hostVar)
	if host == "" {
		host = "localhost"
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, pw),
		Host:   host,
		Path:   "/" + db,
	}
	return u.String()
}
