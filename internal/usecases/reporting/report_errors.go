package reporting

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDay        = errors.New("dia inválido")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ReportError carrega o código de API e a mensagem exibida ao cliente
type ReportError struct {
	Err     error
	Code    string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func (e *ReportError) APICode() string {
	return e.Code
}

func (e *ReportError) PublicMessage() string {
	return e.Details
}

func NewReportError(baseErr error, code, details string) *ReportError {
	return &ReportError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}
