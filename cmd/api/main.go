package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ad-intel-api/infrastructure/database/postgres"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/apify/apifyclient"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/ad-intel-api/infrastructure/integrator/gemini/geminiclient"
	"github.com/vfg2006/ad-intel-api/infrastructure/repository"
	"github.com/vfg2006/ad-intel-api/internal/api"
	"github.com/vfg2006/ad-intel-api/internal/config"
	"github.com/vfg2006/ad-intel-api/internal/scheduler"
	"github.com/vfg2006/ad-intel-api/internal/usecases/aggregating"
	"github.com/vfg2006/ad-intel-api/internal/usecases/authenticating"
	"github.com/vfg2006/ad-intel-api/internal/usecases/branding"
	"github.com/vfg2006/ad-intel-api/internal/usecases/insighting"
	"github.com/vfg2006/ad-intel-api/internal/usecases/scanning"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	brandRepo := repository.NewBrandRepository(pgConn)
	reportRepo := repository.NewScanReportRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	apifyClient := apifyclient.NewClient(cfg)
	apifyIntegrator := apify.New(cfg, apifyClient)

	geminiClient, err := geminiclient.NewClient(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar o cliente do Gemini")
	}
	imageFetcher := gemini.NewImageFetcher(cfg)

	aggregator := aggregating.NewService(aggregating.ScorerFromName(cfg.Scan.IntensityScorer))
	insightService := insighting.NewService(cfg, geminiClient, imageFetcher)

	scanService := scanning.NewService(
		cfg,
		apifyIntegrator,
		aggregator,
		insightService,
		reportRepo,
		brandRepo,
	)

	brandService := branding.NewService(brandRepo)

	// Inicializa o agendador de varreduras recorrentes das marcas
	brandScanSyncService := scheduler.NewBrandScanSyncService(
		brandRepo,
		scanService,
		cfg,
	)

	if err := brandScanSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de varreduras de marcas")
	} else {
		logrus.Info("Agendador de varreduras de marcas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		scanService,
		brandService,
		authenticator,
		brandScanSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.PingContext(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
