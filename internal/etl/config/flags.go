package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/trelloetl/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-k string   Trello API key
//	-t string   Trello API token
//	-d string   destination database DSN (load credential set)
//	-m string   admin database DSN (schema reset credential set)
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-l string   run log object path
//
// The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-k", "-t", "-d", "-m", "-u", "-p", "-b", "-g", "-e", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.TrelloKey, "k", config.TrelloKey, "Trello API key")
	fs.StringVar(&config.TrelloToken, "t", config.TrelloToken, "Trello API token")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.AdminDatabaseDSN, "m", config.AdminDatabaseDSN, "admin database DSN")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.RunLogPath, "l", config.RunLogPath, "run log object path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
