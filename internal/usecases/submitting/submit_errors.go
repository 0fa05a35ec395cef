package submitting

import (
	"errors"
	"fmt"
)

var (
	// Erros de validação
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrInvalidFormat       = errors.New("formato de dados inválido")
	ErrUnauthenticated     = errors.New("autor do registro não identificado")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// SubmitError carrega o código de API e a mensagem exibida ao cliente
type SubmitError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Field   string // Campo do formulário (quando aplicável)
	Details string // Mensagem exposta ao cliente
}

func (e *SubmitError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Details, e.Field)
	}
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

func (e *SubmitError) APICode() string {
	return e.Code
}

func (e *SubmitError) PublicMessage() string {
	return e.Details
}

// IsValidationError indica erro do cliente, detectado antes de qualquer escrita
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingRequiredData) || errors.Is(err, ErrInvalidFormat)
}

func NewSubmitError(baseErr error, code, field, details string) *SubmitError {
	return &SubmitError{
		Err:     baseErr,
		Code:    code,
		Field:   field,
		Details: details,
	}
}
