package main

import (
	"context"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"ppi/adapters/excel"
	"ppi/adapters/postgres"
	"ppi/app"
	"ppi/internal/config"
	"ppi/internal/errors"
	"ppi/internal/migration"
	"ppi/internal/registry"
	"ppi/internal/storage"
	"ppi/ports"
	"ppi/ui"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
)

// initDatabase connects to the upload catalog and migrates its schema.
func initDatabase(ctx context.Context, appConfig *config.Config) (*sqlx.DB, error) {
	db, err := postgres.Open(ctx, appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "upload catalog unavailable")
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(appConfig.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The catalog is optional; without it uploads live only in the upload directory.
	var uploads ports.UploadRepository
	if appConfig.Database.Enabled() {
		db, err := initDatabase(ctx, appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()
		uploads = postgres.NewUploadRepository(db)
		log.Println("Upload catalog enabled")
	}

	fileStorage := storage.NewLocalFileStorage(&storage.StorageConfig{
		BasePath:    appConfig.Storage.UploadDir,
		MaxFileSize: appConfig.Storage.MaxUploadBytes,
	})

	service := app.NewDatasetService(
		registry.New(),
		fileStorage,
		excel.NewDataReader(),
		excel.NewDataWriter(),
		uploads,
	)

	server := ui.NewServer(service, ui.ServerConfig{
		UploadDir:      appConfig.Storage.UploadDir,
		MaxUploadBytes: appConfig.Storage.MaxUploadBytes,
	})
	application := ui.NewApp(ui.Config{Port: appConfig.Server.Port}, server)

	// Start pprof server for performance profiling
	if appConfig.Profiling.Enabled {
		go func() {
			log.Printf("Performance profiling server starting on :%s", appConfig.Profiling.Port)
			if err := http.ListenAndServe(":"+appConfig.Profiling.Port, nil); err != nil {
				log.Printf("pprof server failed: %v", err)
			}
		}()
	}

	log.Printf("Starting server on port %s (uploads in %s)", appConfig.Server.Port, appConfig.Storage.UploadDir)
	if err := application.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
