package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/propostas-backend/internal/config"
	"github.com/ignatzorin/propostas-backend/internal/db"
	"github.com/ignatzorin/propostas-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/propostas-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/propostas-backend/internal/http/router"
	"github.com/ignatzorin/propostas-backend/internal/logger"
	"github.com/ignatzorin/propostas-backend/internal/render"
	"github.com/ignatzorin/propostas-backend/internal/repository"
	"github.com/ignatzorin/propostas-backend/internal/service"
	"github.com/ignatzorin/propostas-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: erro ao carregar configuração: %v", err)
	}

	logger.Init(cfg.LogLevel)
	if cfg.Env == "development" {
		logger.SetTextFormatter()
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("database connection failed")
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		logger.Log.WithError(err).Fatal("migrations failed")
	}

	// Репозитории.
	clientRepo := repository.NewClientRepository(dbConn)
	catalogRepo := repository.NewCatalogRepository(dbConn)
	companyRepo := repository.NewCompanyRepository(dbConn)
	proposalRepo := repository.NewProposalRepository(dbConn)
	templateRepo := repository.NewProposalTemplateRepository(dbConn)

	// Рендерер документов в часовом поясе компании.
	renderer := render.New(render.WithLocation(cfg.Location()))

	// Сервисы.
	tokenVerifier := service.NewTokenVerifier(cfg.AuthJWTSecret)
	clientService := service.NewClientService(clientRepo)
	catalogService := service.NewCatalogService(catalogRepo)
	companyService := service.NewCompanyService(companyRepo)
	templateService := service.NewProposalTemplateService(templateRepo)
	proposalService := service.NewProposalService(proposalRepo, clientRepo, catalogRepo)
	documentService := service.NewDocumentService(proposalRepo, clientRepo, companyRepo, templateService, renderer)
	signatureService := service.NewSignatureService(proposalRepo)

	// Вебсокеты.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, "ws.hub", hub.Run)
	proposalService.SetHub(hub)
	signatureService.SetHub(hub)

	// HTTP хэндлеры.
	engine := httpRouter.SetupRouter(
		cfg,
		tokenVerifier,
		httpHandlers.NewHealthHandler(dbConn),
		httpHandlers.NewWSHandler(hub, tokenVerifier, cfg.AllowedOrigins),
		httpHandlers.NewRenderHandler(documentService),
		httpHandlers.NewClientHandler(clientService),
		httpHandlers.NewServiceCatalogHandler(catalogService),
		httpHandlers.NewCompanyHandler(companyService),
		httpHandlers.NewProposalHandler(proposalService, documentService),
		httpHandlers.NewProposalTemplateHandler(templateService),
		httpHandlers.NewWebhookHandler(signatureService),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo("http.shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("http server shutdown failed")
		}
	})

	logger.Log.WithFields(logrus.Fields{
		"port":     cfg.HTTPPort,
		"env":      cfg.Env,
		"timezone": cfg.DocumentTimezone,
	}).Info("http server started")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.WithError(err).Fatal("http server stopped with error")
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Error("database close failed")
	}
}
