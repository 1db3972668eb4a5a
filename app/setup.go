package app

import (
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/lexistream/api/api"
	"github.com/lexistream/api/config"
	"github.com/lexistream/api/database"
	"github.com/lexistream/api/router"
	"github.com/lexistream/api/services/cron"
	"github.com/lexistream/api/services/storage"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		print("If not running, run the following command:\n")
		print("  make docker-up   (for Docker setup)\n")
		print("  make db-up       (for local PostgreSQL)\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		print("Error running migrations:\n")
		return err
	}

	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return fmt.Errorf("failed to get GORM DB instance")
	}

	// Seed the admin account and the built-in lesson library
	if err := database.NewSeeder(db).SeedAll(); err != nil {
		log.Printf("Warning: seeding failed: %v", err)
	}

	// Pick audio storage: DigitalOcean Spaces when configured,
	// local disk otherwise
	fileStore, err := buildFileStore(getEnv)
	if err != nil {
		return err
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		cronManager = cron.NewCronManager(db, fileStore)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Serve locally stored uploads when not using Spaces
	if getEnv.SPACES_KEY == "" {
		app.Static("/uploads", getEnv.UPLOAD_DIR)
	}

	// Setup Routes (security middleware is applied inside)
	router.SetupRoutes(app, store, fileStore)

	// Get the PORT & Start the Server
	return server.Run()
}

func buildFileStore(env *config.EnviornmentVariable) (storage.Store, error) {
	if env.SPACES_KEY != "" {
		return storage.NewSpacesStore(storage.SpacesConfig{
			AccessKey: env.SPACES_KEY,
			SecretKey: env.SPACES_SECRET,
			Bucket:    env.SPACES_BUCKET,
			Region:    env.SPACES_REGION,
			Endpoint:  env.SPACES_ENDPOINT,
		})
	}
	return storage.NewLocalStore(env.UPLOAD_DIR, "/uploads")
}
