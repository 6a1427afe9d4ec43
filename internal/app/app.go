package app

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/common"
	"github.com/tanushka-102/scholarly/internal/handlers"
	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/services/assistant"
	"github.com/tanushka-102/scholarly/internal/services/challenge"
	"github.com/tanushka-102/scholarly/internal/services/evidence"
	"github.com/tanushka-102/scholarly/internal/services/export"
	"github.com/tanushka-102/scholarly/internal/services/extract"
	"github.com/tanushka-102/scholarly/internal/services/llm"
	"github.com/tanushka-102/scholarly/internal/services/scheduler"
	"github.com/tanushka-102/scholarly/internal/services/session"
	"github.com/tanushka-102/scholarly/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	LLMService       interfaces.LLMService
	ExtractService   interfaces.TextExtractor
	SessionService   interfaces.SessionService
	AssistantService interfaces.AssistantService
	ExportService    interfaces.ExportService
	Scheduler        *scheduler.Scheduler

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	DocumentHandler  *handlers.DocumentHandler
	SessionHandler   *handlers.SessionHandler
	AssistantHandler *handlers.AssistantHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := app.initServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	if err := app.Scheduler.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	logger.Info().
		Str("provider", cfg.LLM.DefaultProvider).
		Str("snippet_strategy", cfg.Assistant.SnippetStrategy).
		Str("challenge_mode", cfg.Assistant.ChallengeMode).
		Msg("Application initialization complete")

	return app, nil
}

func (a *App) initStorage() error {
	storageManager, err := badger.NewManager(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return fmt.Errorf("failed to create storage manager: %w", err)
	}

	a.StorageManager = storageManager
	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")

	return nil
}

func (a *App) initServices() error {
	a.LLMService = llm.NewService(
		&a.Config.Gemini,
		&a.Config.Claude,
		&a.Config.LLM,
		a.StorageManager.KeyValueStorage(),
		a.Logger,
	)

	a.ExtractService = extract.NewService(extract.NewPDFExtractor(a.Logger), a.Logger)

	a.SessionService = session.NewService(
		a.ExtractService,
		a.StorageManager.SessionStorage(),
		&a.Config.Sessions,
		a.Logger,
	)

	locator := evidence.NewLocator(
		evidence.Strategy(a.Config.Assistant.SnippetStrategy),
		a.Config.Assistant.SnippetWindow,
		a.Logger,
	)
	sampler := challenge.NewSampler(nil, a.Logger)

	a.AssistantService = assistant.NewService(
		a.LLMService,
		locator,
		sampler,
		&a.Config.Assistant,
		a.Logger,
	)

	a.ExportService = export.NewService(a.Logger)
	a.Scheduler = scheduler.New(a.SessionService, &a.Config.Sessions, a.Logger)

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler(a.LLMService, a.StorageManager, a.Logger)
	a.DocumentHandler = handlers.NewDocumentHandler(a.SessionService, &a.Config.Sessions, a.Logger)
	a.SessionHandler = handlers.NewSessionHandler(a.SessionService, a.ExportService, a.Logger)
	a.AssistantHandler = handlers.NewAssistantHandler(a.AssistantService, a.SessionService, a.Logger)
}

// Close shuts down application components in reverse initialization order.
func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}

	if a.LLMService != nil {
		if err := a.LLMService.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close LLM service")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	a.Logger.Info().Msg("Application shutdown complete")
	return nil
}
