package apiErrors

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notFoundErr struct{}

func (notFoundErr) Error() string         { return "entry xyz not found" }
func (notFoundErr) APICode() string       { return ErrNotFound }
func (notFoundErr) PublicMessage() string { return "Registro não encontrado" }

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrInvalidCredentials, "Usuário ou senha inválidos", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Usuário ou senha inválidos", body.Error)
	assert.Equal(t, ErrInvalidCredentials, body.Code)
}

func TestWriteFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "erro com código na cadeia",
			err:        fmt.Errorf("delete: %w", notFoundErr{}),
			wantStatus: http.StatusNotFound,
			wantCode:   ErrNotFound,
			wantMsg:    "Registro não encontrado",
		},
		{
			name:       "erro genérico usa fallback",
			err:        fmt.Errorf("dial tcp 10.0.0.1:5432: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrDatabaseOperation,
			wantMsg:    "Erro interno do servidor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteFromError(rec, tt.err, ErrDatabaseOperation, "Erro interno do servidor")

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.NotContains(t, rec.Body.String(), "connection refused")
		})
	}
}

func TestStatusFor_UnknownCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XYZ_999"))
}
