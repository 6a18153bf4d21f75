package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"autofill-backend/internal/applications"
	"autofill-backend/internal/automation"
	"autofill-backend/internal/documents"
	"autofill-backend/internal/extraction"
	"autofill-backend/internal/llm"
	openai "autofill-backend/internal/llm/openai"
	"autofill-backend/internal/merge"
	"autofill-backend/internal/profiles"
	"autofill-backend/internal/recognize"
	"autofill-backend/internal/reporter"
	"autofill-backend/internal/shared/config"
	"autofill-backend/internal/shared/server"
	"autofill-backend/internal/shared/storage/db"
	"autofill-backend/internal/shared/storage/object"
	localstore "autofill-backend/internal/shared/storage/object/local"
	s3store "autofill-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	ProfilesRepo     profiles.Repo
	DocumentsRepo    documents.Repo
	ApplicationsRepo applications.Repo

	ProfilesService     *profiles.Service
	DocumentsService    *documents.Service
	ExtractionService   *extraction.Service
	ApplicationsService *applications.Service
	AutomationService   *automation.Service

	Recognizer recognize.Recognizer
	LLM        llm.Client
	Reporter   reporter.Reporter
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		ProfilesHandler:    profiles.NewHandler(app.ProfilesService),
		DocumentsHandler:   documents.NewHandler(app.DocumentsService),
		ExtractionHandler:  extraction.NewHandler(app.ExtractionService),
		MergeHandler:       merge.NewHandler(app.ProfilesService, app.DocumentsService),
		ApplicationHandler: applications.NewHandler(app.ApplicationsService),
		AutomationHandler:  automation.NewHandler(app.AutomationService),
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	cfg := app.Config

	if app.DB != nil {
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
	} else {
		app.ProfilesRepo = profiles.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
	}

	app.Recognizer = recognize.NewAzureRecognizer(cfg.AzureCVEndpoint, cfg.AzureCVKey)

	app.LLM = llm.Client(llm.PlaceholderClient{})
	if cfg.OpenAIAPIKey != "" {
		llmClient, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
		if err != nil {
			return err
		}
		app.LLM = llmClient
	} else if !isDevLike(cfg.Env) {
		return fmt.Errorf("OPENAI_API_KEY is required")
	} else {
		log.Printf("bootstrap: OPENAI_API_KEY empty; extraction disabled")
	}

	app.Reporter = reporter.Reporter(reporter.Nop{})
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tg, err := reporter.NewTelegramReporter(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("bootstrap: telegram reporter disabled: %v", err)
		} else {
			app.Reporter = tg
		}
	}

	app.ProfilesService = profiles.NewService(app.ProfilesRepo)
	app.DocumentsService = documents.NewService(app.DocumentsRepo, app.ProfilesRepo, app.Store)
	app.ExtractionService = extraction.NewService(app.DocumentsRepo, app.ProfilesRepo, app.Store, app.Recognizer, app.LLM)
	app.ApplicationsService = applications.NewService(app.ApplicationsRepo)
	app.AutomationService = automation.NewService(
		app.ProfilesRepo,
		app.DocumentsRepo,
		app.ApplicationsService,
		automation.NewPlaywrightFactory(cfg.Headless),
		app.Reporter,
		automation.Config{
			PortalURL:   cfg.PortalURL,
			FormType:    cfg.FormType,
			StepTimeout: cfg.StepTimeout,
			SettleDelay: cfg.SettleDelay,
			RunBudget:   cfg.RunBudget,
		},
	)
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
