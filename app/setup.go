package app

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/campushub/portal-api/api"
	"github.com/campushub/portal-api/config"
	"github.com/campushub/portal-api/database"
	"github.com/campushub/portal-api/router"
	"github.com/campushub/portal-api/services"
	"github.com/campushub/portal-api/services/cron"
	"github.com/campushub/portal-api/services/extract"
	"github.com/campushub/portal-api/services/openrouter"
	"github.com/campushub/portal-api/services/storage"
	"github.com/campushub/portal-api/utils/auth"
	"github.com/campushub/portal-api/utils/cache"
)

// tokenLifetime is shared by the access and refresh cookies
const tokenLifetime = 30 * 24 * time.Hour

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	if getEnv.JWT_SECRET == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "campushub-portal-api"
	}
	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret:        getEnv.JWT_SECRET,
		Expiry:        tokenLifetime,
		RefreshExpiry: tokenLifetime,
		Issuer:        jwtIssuer,
	})

	// Portal database (GORM)
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}
	if err := store.Init(); err != nil {
		print("Failed to initialize portal database tables\n")
		return err
	}

	// Repository database (pgvector)
	repoStore, err := database.StartRepo(getEnv.REPO_DATABASE_URL)
	if err != nil {
		print("Check whether the repository Postgres (with pgvector) is running\n")
		return err
	}
	if err := repoStore.Init(); err != nil {
		print("Failed to initialize repository tables\n")
		return err
	}

	// Redis cache for brute force protection; the portal stays up
	// without it
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
			redisCache = nil
		}
	}

	// AI clients and the retrieval pipeline
	llm := openrouter.NewClient(openrouter.Config{
		APIKey:         getEnv.OPENROUTER_API_KEY,
		BaseURL:        getEnv.OPENROUTER_BASE_URL,
		EmbeddingURL:   getEnv.EMBEDDING_API_URL,
		ChatModel:      getEnv.CHAT_MODEL,
		EmbeddingModel: getEnv.EMBEDDING_MODEL,
	})
	extractor := extract.NewRegistry(extract.NewOCRClient())
	classifier := services.NewClassifierService(llm)
	ragService := services.NewRAGService(repoStore, llm)
	ingestService := services.NewIngestService(repoStore, extractor, classifier, ragService, getEnv.UPLOAD_ROOT)

	// Optional Spaces archive mirror
	var archive *storage.SpacesArchive
	if getEnv.SPACES_BUCKET != "" {
		archive, err = storage.NewSpacesArchive(storage.SpacesConfig{
			AccessKey: getEnv.SPACES_KEY,
			SecretKey: getEnv.SPACES_SECRET,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
		})
		if err != nil {
			log.Printf("Warning: Spaces archive unavailable: %v", err)
			archive = nil
		}
	}

	db := store.GetDB()
	intakeService := services.NewFileIntakeService(db, ingestService, archive, getEnv.UPLOAD_ROOT)
	auditService := services.NewAuditService(db)
	emailService := services.NewEmailService()

	// Cron jobs (enabled unless CRON_ENABLED=false)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		cronManager = cron.NewCronManager(db, repoStore, ingestService, ragService, auditService, getEnv.UPLOAD_ROOT)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: Failed to start cron jobs: %v", err)
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
		repoStore.Close()
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	router.SetupRoutes(app, router.Deps{
		Portal:     store,
		Repo:       repoStore,
		JWTManager: jwtManager,
		Cache:      redisCache,
		Intake:     intakeService,
		Ingest:     ingestService,
		RAG:        ragService,
		Audit:      auditService,
		Email:      emailService,
	})

	return server.Run()
}
