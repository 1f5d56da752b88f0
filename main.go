package main

import (
	"log"

	"gorelate/adapters/analysis"
	"gorelate/adapters/postgres"
	"gorelate/app"
	enginepkg "gorelate/internal/analysis"
	"gorelate/internal/config"
	"gorelate/internal/session"
	"gorelate/ports"
	"gorelate/ui"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Run history is optional: without DATABASE_URL the service keeps none.
	var runs ports.RunRepository
	if appConfig.Database.URL != "" {
		db, err := sqlx.Connect("postgres", appConfig.Database.URL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := postgres.Migrate(db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		runs = postgres.NewRunRepository(db)
		log.Println("Run history enabled")
	} else {
		log.Println("DATABASE_URL not set, run history disabled")
	}

	// An analyzer URL selects the remote service; otherwise analysis runs
	// in-process.
	var analyzer ports.Analyzer
	if appConfig.Analyzer.URL != "" {
		analyzer = analysis.NewClient(appConfig.Analyzer.URL,
			analysis.WithRetry(appConfig.Analyzer.SubmitAttempts),
			analysis.WithPolling(appConfig.Analyzer.PollInterval, appConfig.Analyzer.PollTimeout),
		)
		log.Printf("Using remote analysis service at %s", appConfig.Analyzer.URL)
	} else {
		analyzer = enginepkg.NewEngine()
		log.Println("Using in-process analysis engine")
	}

	service := app.NewAnalysisService(analyzer, runs)
	store := session.NewStore()

	webApp, err := ui.NewApp(store, service, ui.Config{
		Port:        appConfig.Server.Port,
		MaxFileSize: appConfig.Upload.MaxFileSize,
	})
	if err != nil {
		log.Fatalf("Failed to initialize UI: %v", err)
	}

	log.Printf("Starting gorelate server on port %s", appConfig.Server.Port)
	log.Fatal(webApp.Run(appConfig.Server.Port))
}
