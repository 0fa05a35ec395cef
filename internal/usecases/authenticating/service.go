package authenticating

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/clinic-intake-api/infrastructure/repository"
	"github.com/vfg2006/clinic-intake-api/internal/config"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Session, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	userRepo repository.UserRepository
	cfg      config.Auth
	now      func() time.Time
	compare  func(hash, password []byte) error
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknownUserHash é comparado quando o usuário não existe, para que o
// tempo de resposta não revele quais usuários estão cadastrados
func unknownUserHash() []byte {
	dummyHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("usuario-inexistente"), bcrypt.DefaultCost)
		if err != nil {
			logrus.WithError(err).Error("Erro ao gerar hash de referência")
			return
		}
		dummyHash = hash
	})
	return dummyHash
}

func NewService(userRepo repository.UserRepository, cfg config.Auth) *Service {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
		compare:  bcrypt.CompareHashAndPassword,
	}
}

// Authenticate confere usuário e senha e emite um token com userId e role.
// Usuário inexistente e senha incorreta produzem o mesmo erro.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, newInvalidCredentials()
	}

	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar usuário no banco de dados")
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro interno do servidor")
	}

	if user == nil {
		_ = s.compare(unknownUserHash(), []byte(password))
		return nil, newInvalidCredentials()
	}

	if err := s.compare([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, newInvalidCredentials()
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return &domain.Session{Token: token, Role: user.Role}, nil
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	now := s.now()
	claims := domain.Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// ValidateToken aceita apenas HS256 com exp presente
func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if tokenString == "" {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token de autenticação não fornecido")
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&domain.Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	return claims, nil
}

// HashPassword gera o hash bcrypt usado no cadastro de contas
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}
