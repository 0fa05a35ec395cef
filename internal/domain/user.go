package domain

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleReceptionist Role = "receptionist"
)

// AllRoles lista todos os perfis reconhecidos pelo sistema
var AllRoles = []Role{RoleAdmin, RoleReceptionist}

var (
	ErrUnauthenticated = errors.New("usuário não autenticado")
	ErrForbidden       = errors.New("permissão insuficiente")
)

func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Claims struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// Session é o resultado de um login bem-sucedido
type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// Authorize é o único predicado de autorização da aplicação. Middlewares de rota e
// serviços de mutação chamam esta função com os perfis aceitos para a operação.
func Authorize(claims *Claims, allowed ...Role) error {
	if claims == nil || claims.UserID == "" {
		return ErrUnauthenticated
	}

	for _, role := range allowed {
		if claims.Role == role {
			return nil
		}
	}

	return ErrForbidden
}
