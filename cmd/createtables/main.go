// Command createtables runs only the destructive schema reset against
// the admin credential set, without touching the source API or the
// staging store.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/trelloetl/internal/etl/config"
	"github.com/dmitrijs2005/trelloetl/internal/postgres"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := postgres.Open(cfg.AdminDatabaseDSN)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.ExecScript(ctx, postgres.ResetScript()); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	log.Println("destination tables recreated")
}
