package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/clinic-intake-api/infrastructure/database/postgres"
	"github.com/vfg2006/clinic-intake-api/infrastructure/repository"
	"github.com/vfg2006/clinic-intake-api/internal/config"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/authenticating"
)

// Cria as tabelas (se não existirem) e cadastra uma conta.
//
//	go run ./infrastructure/migration/script -username ana -password segredo -role admin
//
// Sem -username, apenas aplica o schema.
func main() {
	setupLogger()

	username := flag.String("username", "", "nome de usuário da conta a cadastrar")
	password := flag.String("password", "", "senha da conta")
	role := flag.String("role", string(domain.RoleReceptionist), "perfil: admin ou receptionist")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbConfig, err := config.LoadDatabase()
	if err != nil {
		logrus.WithError(err).Fatal("Configuração do banco inválida")
	}

	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	startTime := time.Now()
	if err := repository.EnsureSchema(ctx, conn); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar schema")
	}
	logrus.WithField("elapsed", time.Since(startTime).String()).Info("Schema aplicado")

	if strings.TrimSpace(*username) == "" {
		return
	}

	if err := provisionUser(ctx, conn, *username, *password, domain.Role(*role)); err != nil {
		logrus.WithError(err).Error("Erro ao cadastrar conta")
		os.Exit(1)
	}
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de provisionamento...")
}

func provisionUser(ctx context.Context, conn postgres.Conn, username, password string, role domain.Role) error {
	if !role.Valid() {
		return errors.Errorf("perfil desconhecido: %q", role)
	}

	userRepo := repository.NewUserRepository(conn)

	existing, err := userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.Errorf("usuário %q já existe", username)
	}

	hash, err := authenticating.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "senha inválida")
	}

	user, err := userRepo.CreateUser(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	}).Info("Conta cadastrada com sucesso")
	return nil
}
