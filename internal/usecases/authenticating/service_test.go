package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/clinic-intake-api/infrastructure/repository/mocks"
	"github.com/vfg2006/clinic-intake-api/internal/config"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var testAuthConfig = config.Auth{Secret: "segredo-de-teste", TokenTTL: time.Hour}

func hashForTest(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func TestService_Authenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testAuthConfig)

	fixedNow := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixedNow }

	maria := &domain.User{
		ID:           "usr000000001",
		Username:     "maria",
		PasswordHash: hashForTest(t, "recepcao123"),
		Role:         domain.RoleReceptionist,
	}

	tests := []struct {
		name     string
		username string
		password string
		setup    func()
		wantCode string
		wantErr  error
	}{
		{
			name:     "credenciais corretas emitem token",
			username: "maria",
			password: "recepcao123",
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "maria").Return(maria, nil)
			},
		},
		{
			name:     "senha incorreta",
			username: "maria",
			password: "errada",
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "maria").Return(maria, nil)
			},
			wantCode: apiErrors.ErrInvalidCredentials,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "usuário inexistente",
			username: "joao",
			password: "qualquer",
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "joao").Return(nil, nil)
			},
			wantCode: apiErrors.ErrInvalidCredentials,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "campos vazios não consultam o banco",
			username: "",
			password: "",
			setup:    func() {},
			wantCode: apiErrors.ErrInvalidCredentials,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "falha no banco",
			username: "maria",
			password: "recepcao123",
			setup: func() {
				mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "maria").Return(nil, errors.New("connection refused"))
			},
			wantCode: apiErrors.ErrDatabaseOperation,
			wantErr:  ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			session, err := service.Authenticate(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, session)
				assert.ErrorIs(t, err, tt.wantErr)

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, tt.wantCode, authErr.Code)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.RoleReceptionist, session.Role)

			claims, err := service.ValidateToken(session.Token)
			require.NoError(t, err)
			assert.Equal(t, "usr000000001", claims.UserID)
			assert.Equal(t, domain.RoleReceptionist, claims.Role)
			assert.Equal(t, fixedNow.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
		})
	}
}

func TestService_Authenticate_SameMessageForUnknownUserAndWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testAuthConfig)

	mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "ana").Return(&domain.User{
		ID:           "usr000000002",
		Username:     "ana",
		PasswordHash: hashForTest(t, "certa"),
		Role:         domain.RoleAdmin,
	}, nil)
	mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "ninguem").Return(nil, nil)

	_, wrongPassword := service.Authenticate(context.Background(), "ana", "errada")
	_, unknownUser := service.Authenticate(context.Background(), "ninguem", "errada")

	var a, b *AuthError
	require.True(t, errors.As(wrongPassword, &a))
	require.True(t, errors.As(unknownUser, &b))
	assert.Equal(t, a.PublicMessage(), b.PublicMessage())
	assert.Equal(t, "Usuário ou senha inválidos", a.PublicMessage())
}

func TestService_Authenticate_UnknownUserStillComparesHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, testAuthConfig)

	var compared [][]byte
	service.compare = func(hash, password []byte) error {
		compared = append(compared, hash)
		return bcrypt.CompareHashAndPassword(hash, password)
	}

	mockUserRepo.EXPECT().GetUserByUsername(gomock.Any(), "ninguem").Return(nil, nil)

	_, err := service.Authenticate(context.Background(), "ninguem", "qualquer")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, compared, 1)

	// Mesmo custo do hash gerado no cadastro de contas
	cost, err := bcrypt.Cost(compared[0])
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(nil, testAuthConfig)
	issuedAt := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	sign := func(t *testing.T, method jwt.SigningMethod, key interface{}, claims domain.Claims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	validClaims := domain.Claims{
		UserID: "usr000000001",
		Role:   domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	}

	noExpiry := validClaims
	noExpiry.RegisteredClaims = jwt.RegisteredClaims{IssuedAt: jwt.NewNumericDate(issuedAt)}

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{
			name:  "token válido",
			token: sign(t, jwt.SigningMethodHS256, []byte(testAuthConfig.Secret), validClaims),
			now:   issuedAt.Add(30 * time.Minute),
		},
		{
			name:    "token expirado",
			token:   sign(t, jwt.SigningMethodHS256, []byte(testAuthConfig.Secret), validClaims),
			now:     issuedAt.Add(2 * time.Hour),
			wantErr: ErrExpiredToken,
		},
		{
			name:    "assinatura com outro segredo",
			token:   sign(t, jwt.SigningMethodHS256, []byte("outro"), validClaims),
			now:     issuedAt,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "algoritmo diferente de HS256",
			token:   sign(t, jwt.SigningMethodHS512, []byte(testAuthConfig.Secret), validClaims),
			now:     issuedAt,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "sem exp",
			token:   sign(t, jwt.SigningMethodHS256, []byte(testAuthConfig.Secret), noExpiry),
			now:     issuedAt,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "token vazio",
			token:   "",
			now:     issuedAt,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "lixo",
			token:   "nao.e.jwt",
			now:     issuedAt,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			service.now = func() time.Time { return now }

			claims, err := service.ValidateToken(tt.token)

			if tt.wantErr != nil {
				assert.Nil(t, claims)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsTokenError(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "usr000000001", claims.UserID)
			assert.Equal(t, domain.RoleAdmin, claims.Role)
		})
	}
}

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("s3nha")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("s3nha")))

	_, err = HashPassword("")
	assert.Error(t, err)
}
