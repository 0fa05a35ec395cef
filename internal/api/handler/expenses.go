package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/administering"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/reporting"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/submitting"
	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
	"github.com/vfg2006/clinic-intake-api/pkg/middleware"
)

func CreateExpense(service submitting.Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input domain.ExpenseInput
		if !decodeJSON(w, r, &input) {
			return
		}

		id, err := service.SubmitExpense(r.Context(), input)
		if err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer, "Erro ao registrar despesa")
			return
		}

		writeJSON(w, http.StatusCreated, MessageResponse{
			Message: "Despesa registrada com sucesso",
			ID:      id,
		})
	}
}

func ListExpenses(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, month, day, ok := dayFromQuery(w, r)
		if !ok {
			return
		}

		expenses, err := service.ListExpenses(r.Context(), year, month, day)
		if err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer, "Erro ao buscar despesas")
			return
		}

		if expenses == nil {
			expenses = []*domain.Expense{}
		}
		writeJSON(w, http.StatusOK, expenses)
	}
}

func DeleteExpense(service administering.Administrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		claims := middleware.ClaimsFromContext(r.Context())

		if err := service.DeleteExpense(r.Context(), claims, id); err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer, "Erro ao remover despesa")
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: "Despesa removida com sucesso"})
	}
}
