package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/administering"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/reporting"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/submitting"
	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
	"github.com/vfg2006/clinic-intake-api/pkg/log"
	"github.com/vfg2006/clinic-intake-api/pkg/middleware"
)

// SubmitForm grava o atendimento em nome do usuário do token
func SubmitForm(service submitting.Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input domain.EntryInput
		if !decodeJSON(w, r, &input) {
			return
		}

		claims := middleware.ClaimsFromContext(r.Context())
		id, err := service.SubmitEntry(r.Context(), claims, input)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Formulário rejeitado")
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer, "Erro ao enviar formulário")
			return
		}

		writeJSON(w, http.StatusCreated, MessageResponse{
			Message: "Formulário enviado com sucesso",
			ID:      id,
		})
	}
}

func ListForms(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, month, day, ok := dayFromQuery(w, r)
		if !ok {
			return
		}

		entries, err := service.ListEntries(r.Context(), year, month, day)
		if err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer, "Erro ao buscar formulários")
			return
		}

		writeJSON(w, http.StatusOK, domain.NewEntryResponses(entries))
	}
}

func DeleteForm(service administering.Administrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		claims := middleware.ClaimsFromContext(r.Context())

		if err := service.DeleteEntry(r.Context(), claims, id); err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer, "Erro ao remover formulário")
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Formulário removido com sucesso"})
	}
}
