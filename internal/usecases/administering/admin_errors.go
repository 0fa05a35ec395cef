package administering

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("registro não encontrado")
	ErrForbidden         = errors.New("apenas administradores podem realizar esta ação")
	ErrUnauthenticated   = errors.New("usuário não autenticado")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// AdminError carrega o código de API e a mensagem exibida ao cliente
type AdminError struct {
	Err     error
	Code    string
	ID      string // Registro alvo da operação
	Details string
}

func (e *AdminError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.ID)
	}
	return e.Err.Error()
}

func (e *AdminError) Unwrap() error {
	return e.Err
}

func (e *AdminError) APICode() string {
	return e.Code
}

func (e *AdminError) PublicMessage() string {
	return e.Details
}

func NewAdminError(baseErr error, code, id, details string) *AdminError {
	return &AdminError{
		Err:     baseErr,
		Code:    code,
		ID:      id,
		Details: details,
	}
}
