package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"go.uber.org/zap"

	spiriter "github.com/nethmalgunawardhana/spiriter-ai-chat/pkg"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/audit"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/chat"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/env/dataset"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/env/gemini"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/env/server"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/handlers"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/index"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/llm"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/middleware"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/roster"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/version"
	"github.com/nethmalgunawardhana/spiriter-ai-chat/pkg/watch"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
	writeTimeout      = 2 * time.Minute
	shutdownTimeout   = 30 * time.Second

	queryTimeout = 1 * time.Minute
)

func Run(logger *zap.SugaredLogger) error {
	logger.Infof("Starting Spiriter AI Chat version: %s", version.Version())

	serverEnv := server.NewServerEnv()
	if err := serverEnv.Populate(); err != nil {
		return fmt.Errorf("unable to configure server: %w", err)
	}
	logger.Infof("Production: %t", serverEnv.Production)

	datasetEnv := dataset.NewDatasetEnv()
	if err := datasetEnv.Populate(); err != nil {
		return fmt.Errorf("unable to configure dataset: %w", err)
	}
	logger.Infof("Using dataset: %s (collection: %s)", datasetEnv.DatasetPath, datasetEnv.CollectionName)

	geminiEnv := gemini.NewGeminiEnv()
	if err := geminiEnv.Populate(); err != nil {
		return fmt.Errorf("unable to configure Gemini: %w", err)
	}

	rosterStore := roster.NewStore(datasetEnv.DatasetPath)
	if err := rosterStore.Load(); err != nil {
		return fmt.Errorf("unable to load player dataset: %w", err)
	}
	logger.Infof("Loaded players from dataset: %d", rosterStore.Count())

	var (
		client    *llm.Client
		generator chat.Generator
		embedder  index.Embedder
	)
	if geminiEnv.Enabled() {
		client = llm.NewClient(geminiEnv)
		generator = client
		embedder = client
		logger.Infof("Using Gemini model: %s", geminiEnv.Model)
	} else {
		embedder = index.NewHashingEmbedder()
		logger.Warn("GEMINI_API_KEY not found, using deterministic responses only")
	}

	idx, err := index.New(datasetEnv.IndexDBPath, datasetEnv.CollectionName, embedder)
	if err != nil {
		return fmt.Errorf("unable to open search index: %w", err)
	}
	defer func() { _ = idx.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := idx.Rebuild(ctx, rosterStore.Players()); err != nil {
		return fmt.Errorf("unable to build search index: %w", err)
	}
	logger.Debugf("Search index ready: %s", datasetEnv.IndexDBPath)

	loggerAudit := audit.NewLoggerAudit(logger)

	var webhookAudit *audit.WebhookAudit
	if serverEnv.AuditWebhookURL != "" {
		webhookAudit = audit.NewWebhookAudit(serverEnv.AuditWebhookURL)
		logger.Infof("Sending audit to collector endpoint: %s", serverEnv.AuditWebhookURL)
	}

	engine := chat.NewEngine(rosterStore, idx, generator, logger)

	cfg := &spiriter.Config{
		Roster:       rosterStore,
		Index:        idx,
		Engine:       engine,
		ServerEnv:    serverEnv,
		DatasetEnv:   datasetEnv,
		GeminiEnv:    geminiEnv,
		LoggerAudit:  loggerAudit,
		WebhookAudit: webhookAudit,
		Logger:       logger,
	}

	watcher, err := watch.New(datasetEnv.DatasetPath, logger, func() {
		if err := rosterStore.Load(); err != nil {
			logger.Errorf("Unable to reload player dataset: %s", err)
			return
		}
		if err := idx.Rebuild(context.Background(), rosterStore.Players()); err != nil {
			logger.Errorf("Unable to rebuild search index: %s", err)
			return
		}
		logger.Infof("Dataset reloaded, players: %d", rosterStore.Count())
	})
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Stop() }()

	if err := watcher.Start(ctx); err != nil {
		logger.Warnf("Dataset watching disabled: %s", err)
	}

	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !serverEnv.Production {
		healthLogOutput = defaultLogOutput
	}
	logHandler := gorillaHandlers.LoggingHandler

	queryChain := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.Timeout(queryTimeout)),
		alice.Constructor(middleware.Audit(cfg)),
	).Then(handlers.Query(cfg))

	updateChain := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
	).Then(handlers.UpdatePlayerData(cfg))

	r := mux.NewRouter()
	r.Handle("/healthcheck", logHandler(healthLogOutput, handlers.Healthcheck(cfg))).Methods("GET")
	r.Handle("/chatbot/", logHandler(defaultLogOutput, handlers.Status(cfg))).Methods("GET")
	r.Handle("/chatbot/query/", logHandler(defaultLogOutput, queryChain)).Methods("GET")
	r.Handle("/chatbot/api/update-player-data", logHandler(defaultLogOutput, updateChain)).Methods("POST")

	cors := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type"}),
	)

	logger.Infof("HTTP server starting on port: %d", serverEnv.Port)

	httpServer := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(serverEnv.Port)),
		Handler:           cors(r),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}

	errs := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- fmt.Errorf("unable to start HTTP server: %w", err)
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("unable to shut down HTTP server: %w", err)
	}

	return nil
}
