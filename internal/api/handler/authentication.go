package handler

import (
	"net/http"

	"github.com/vfg2006/clinic-intake-api/internal/usecases/authenticating"
	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
	"github.com/vfg2006/clinic-intake-api/pkg/log"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		session, err := service.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Falha no login")
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer, "Erro interno ao realizar login")
			return
		}

		writeJSON(w, http.StatusOK, session)
	}
}
