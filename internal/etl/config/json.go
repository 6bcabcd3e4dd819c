package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/trelloetl/internal/flagx"
)

// JsonConfig is the JSON file shape. The file is the only place the
// organization list and the board allow/deny lists come from; the
// credential fields mirror the flag/env settings for completeness.
type JsonConfig struct {
	TrelloKey     string `json:"trello_key"`
	TrelloToken   string `json:"trello_token"`
	TrelloBaseURL string `json:"trello_base_url"`

	Organizations  []Organization `json:"organizations"`
	ExcludedBoards []string       `json:"excluded_boards"`
	CommentBoards  []string       `json:"comment_boards"`

	DatabaseDSN      string `json:"database_dsn"`
	AdminDatabaseDSN string `json:"admin_database_dsn"`

	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`

	RunLogPath string `json:"run_log_path"`
}

// parseJson loads configuration values from a JSON file into the
// provided Config instance.
//
// The file path comes from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. Only fields present in the
// file override earlier layers. The function panics if the file cannot
// be read or contains invalid JSON.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.TrelloKey, c.TrelloKey)
	overlay(&config.TrelloToken, c.TrelloToken)
	overlay(&config.TrelloBaseURL, c.TrelloBaseURL)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.AdminDatabaseDSN, c.AdminDatabaseDSN)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.RunLogPath, c.RunLogPath)

	if c.Organizations != nil {
		config.Organizations = c.Organizations
	}
	if c.ExcludedBoards != nil {
		config.ExcludedBoards = c.ExcludedBoards
	}
	if c.CommentBoards != nil {
		config.CommentBoards = c.CommentBoards
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
