// cookbook-server — the mock REST backend for the CookBook client.
//
// Usage:
//
//	cookbook-server [-addr :3001] [-db cookbook-db.json] [-seed]
package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/server"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("COOKBOOK_SERVER_ADDR", ":3001"), "listen address")
	dbPath := flag.String("db", envOr("COOKBOOK_SERVER_DB", "cookbook-db.json"), "path of the JSON database file")
	seed := flag.Bool("seed", true, "seed demo data when the database is empty")
	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	flag.Parse()

	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}
	log := logger.New(logLevel, os.Stderr)
	stdlog.SetOutput(os.Stderr)
	stdlog.SetFlags(stdlog.Ltime)

	store, err := server.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *seed {
		if err := store.Seed(); err != nil {
			fmt.Fprintf(os.Stderr, "error: seeding database: %v\n", err)
			os.Exit(1)
		}
	}

	srv := server.NewServer(store, log)
	log.Info("serving resource store on %s (db: %s)", *addr, *dbPath)

	if err := http.ListenAndServe(*addr, srv.Router()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
