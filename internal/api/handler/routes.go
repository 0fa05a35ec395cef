package handler

import (
	"net/http"

	"github.com/vfg2006/clinic-intake-api/internal/api/handler/router"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/administering"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/authenticating"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/reporting"
	"github.com/vfg2006/clinic-intake-api/internal/usecases/submitting"
	"github.com/vfg2006/clinic-intake-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Forms(submitter submitting.Submitter, reporter reporting.Reporter, administrator administering.Administrator) []router.Route {
	return []router.Route{
		{
			Path:        "/submit-form",
			Method:      http.MethodPost,
			Handler:     SubmitForm(submitter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/admin/forms",
			Method:      http.MethodGet,
			Handler:     ListForms(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/admin/forms/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteForm(administrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Expenses(submitter submitting.Submitter, reporter reporting.Reporter, administrator administering.Administrator) []router.Route {
	return []router.Route{
		{
			Path:        "/admin/expenses",
			Method:      http.MethodPost,
			Handler:     CreateExpense(submitter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/admin/expenses",
			Method:      http.MethodGet,
			Handler:     ListExpenses(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/admin/expenses/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteExpense(administrator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Reports(reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/admin/report",
			Method:      http.MethodGet,
			Handler:     GetDailyReport(reporter),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
