package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/clinic-intake-api/infrastructure/database/postgres"
	"github.com/vfg2006/clinic-intake-api/infrastructure/repository"
	"github.com/vfg2006/clinic-intake-api/internal/api"
	"github.com/vfg2006/clinic-intake-api/internal/config"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/administering"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/authenticating"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/reporting"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/submitting"
	"github.com/vfg2006/clinic-intake-api/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Configuração inválida")
	}

	// Define o nível e o formato dos logs com base na configuração
	if err := log.Setup(cfg.App.LogLevel, cfg.App.Env); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logrus.SetLevel(logrus.InfoLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	entryRepo := repository.NewEntryRepository(pgConn)
	expenseRepo := repository.NewExpenseRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg.Auth)
	submitter := submitting.NewService(entryRepo, expenseRepo)
	reporter := reporting.NewService(entryRepo, expenseRepo)
	administrator := administering.NewService(entryRepo, expenseRepo)

	server := api.New(cfg, authenticator, submitter, reporter, administrator)

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
