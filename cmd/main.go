package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/maaylex/maaylex-server/internal/api/http/httpcontext"
	"github.com/maaylex/maaylex-server/internal/api/http/router"
	httpServer "github.com/maaylex/maaylex-server/internal/api/http/server"
	"github.com/maaylex/maaylex-server/internal/config"
	"github.com/maaylex/maaylex-server/internal/identity"
	"github.com/maaylex/maaylex-server/internal/llm"
	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
	"github.com/maaylex/maaylex-server/internal/repository/postgres"
	"github.com/maaylex/maaylex-server/internal/server"
	"github.com/maaylex/maaylex-server/internal/service"
	storage "github.com/maaylex/maaylex-server/internal/storage/minio"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	entryRepo := postgres.NewEntryRepository(db)
	suggestionRepo := postgres.NewSuggestionRepository(db)
	gapRepo := postgres.NewGapRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	grammarRepo := postgres.NewGrammarRepository(db)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	audioStore, err := storage.NewAudioStore(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize audio store", "error", err)
	}

	identityClient := identity.NewClient(cfg.Auth.ProviderURL)
	llmClient := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)

	authService := service.NewAuth(userRepo, sessionRepo, identityClient, logger)
	dictionaryService := service.NewDictionary(entryRepo, audioStore, logger)
	suggestionService := service.NewSuggestion(suggestionRepo, entryRepo, logger)
	gapService := service.NewGap(gapRepo, entryRepo, logger)
	assistantService := service.NewAssistant(entryRepo, conversationRepo, gapService, llmClient, llmClient, logger)
	grammarService := service.NewGrammar(grammarRepo, logger)
	adminService := service.NewAdmin(userRepo, entryRepo, gapRepo, grammarRepo, logger)

	ctxMgr := httpcontext.NewManager()

	r := router.New(
		authService,
		dictionaryService,
		suggestionService,
		gapService,
		assistantService,
		grammarService,
		adminService,
		ctxMgr,
		cfg.HTTP.SecureCookies,
		logger,
	)
	apiServer := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(apiServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", apiServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
