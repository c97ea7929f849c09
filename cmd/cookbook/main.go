// CookBook — a recipe-catalog terminal client.
//
// Usage:
//
//	cookbook [-verbose] [-quiet] [-backend URL]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hammamikhairi/cookbook/internal/app"
	"github.com/hammamikhairi/cookbook/internal/auth"
	"github.com/hammamikhairi/cookbook/internal/conversation"
	"github.com/hammamikhairi/cookbook/internal/display"
	"github.com/hammamikhairi/cookbook/internal/favorites"
	"github.com/hammamikhairi/cookbook/internal/logger"
	"github.com/hammamikhairi/cookbook/internal/mealdb"
	"github.com/hammamikhairi/cookbook/internal/restapi"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".cookbook-logs/cookbook.log", "file to write logs to (use \"stderr\" to log to console)")
	backend := flag.String("backend", envOr("COOKBOOK_BACKEND", "http://localhost:3001"), "backend resource store URL")
	mealdbURL := flag.String("mealdb", envOr("COOKBOOK_MEALDB", mealdb.DefaultBaseURL), "TheMealDB API base URL")
	pageSize := flag.Int("page-size", 24, "recipes per page")
	harvestN := flag.Int("harvest", mealdb.DefaultHarvestTarget, "external recipes to harvest on startup")
	sessionFile := flag.String("session-file", "", "path of the persisted session file (default: user config dir)")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the REPL stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package to the same output so third-party
	// libraries don't spam the terminal.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	// Set up context — cancelled when the UI quits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire dependencies.
	backendClient := restapi.NewClient(*backend, log)
	catalogClient := mealdb.NewClient(*mealdbURL, log)
	harvester := mealdb.NewHarvester(catalogClient, log)

	creds, err := auth.NewFileCredentials(*sessionFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	authSvc := auth.NewService(backendClient.Users(), creds, log)
	favEngine := favorites.NewEngine(backendClient, backendClient, catalogClient, log)

	cookbook := app.New(authSvc, backendClient, catalogClient, harvester, favEngine, log,
		app.WithPageSize(*pageSize),
		app.WithHarvestTarget(*harvestN),
	)

	if err := backendClient.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprintln(os.Stderr, "hint: start the mock backend with 'cookbook-server' first")
		os.Exit(1)
	}

	ui := display.NewUI(func() display.Status {
		v := cookbook.CurrentView()
		st := display.Status{
			Page:   v.Page.Number,
			Total:  v.Page.TotalPages,
			Window: v.Window,
			Filter: v.Filter,
		}
		if u := cookbook.Current(); u != nil {
			st.User = u.Name
		}
		return st
	})

	parser := conversation.NewKeywordParser(log)

	cli := &cliApp{
		app:    cookbook,
		parser: parser,
		log:    log,
		ui:     ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	// Run app logic in a background goroutine.
	go func() {
		ui.WaitReady()
		cli.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
	}
	cancel()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
