package handler

import (
	"net/http"

	"github.com/vfg2006/clinic-intake-api/internal/domain"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/reporting"
	"github.com/vfg2006/clinic-intake-api/pkg/apiErrors"
)

// GetDailyReport retorna o fechamento do dia agrupado por procedimento
func GetDailyReport(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, month, day, ok := dayFromQuery(w, r)
		if !ok {
			return
		}

		report, err := service.GetDailyReport(r.Context(), year, month, day)
		if err != nil {
			apiErrors.WriteFromError(w, err, apiErrors.ErrInternalServer, "Erro ao gerar relatório")
			return
		}

		writeJSON(w, http.StatusOK, domain.NewDailyReportResponse(report))
	}
}
