package authenticating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
)

// Mensagem única para usuário inexistente e senha errada
const invalidCredentialsMessage = "Usuário ou senha inválidos"

var (
	// Erros de autenticação
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrInvalidToken       = errors.New("token inválido")
	ErrExpiredToken       = errors.New("token expirado")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Mensagem exposta ao cliente
}

// Error implementa a interface error
func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *AuthError) Unwrap() error {
	return e.Err
}

func (e *AuthError) APICode() string {
	return e.Code
}

func (e *AuthError) PublicMessage() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Err.Error()
}

// IsTokenError verifica se o erro está relacionado a um token rejeitado
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}

// NewAuthError cria um novo erro de autenticação
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func newInvalidCredentials() *AuthError {
	return NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, invalidCredentialsMessage)
}
