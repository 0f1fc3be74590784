package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/timeflow/internal/buildinfo"
	"github.com/dmitrijs2005/timeflow/internal/client/cli"
	"github.com/dmitrijs2005/timeflow/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	app, err := cli.NewApp(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
