package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/avilov/fieldsync/internal/flagx"
	"github.com/avilov/fieldsync/internal/server"
	"github.com/avilov/fieldsync/internal/server/config"
	"github.com/avilov/fieldsync/internal/server/models"
)

func main() {

	ctx := context.Background()

	fs := flag.NewFlagSet("fieldsync", flag.ExitOnError)
	org := fs.String("org", "", "organization id to reconcile")
	mode := fs.String("mode", "preview", "preview or run")
	as := fs.String("as", "", "principal email recorded on imported artifacts")
	fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-org", "-mode", "-as"}))

	if *org == "" {
		log.Fatal("missing -org")
	}

	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	report, err := runSync(ctx, app, *org, *mode, *as)
	if err != nil {
		log.Fatalf("%v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Fatalf("%v", err)
	}

	if !report.Succeeded {
		os.Exit(1)
	}
}

func runSync(ctx context.Context, app *server.App, org, mode, as string) (*models.SyncReport, error) {
	switch mode {
	case "run":
		if as == "" {
			return nil, errors.New("missing -as: run mode records who imported")
		}
		return app.RunSync(ctx, org, as)
	case "preview":
		return app.PreviewSync(ctx, org)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
