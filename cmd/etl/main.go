package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/trelloetl/internal/etl"
	"github.com/dmitrijs2005/trelloetl/internal/etl/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := etl.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

}
