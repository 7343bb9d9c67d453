package controllers

import (
	"net/http"
	"strings"

	"github.com/sirimeals/mealops-backend/api/responses"
	"github.com/sirimeals/mealops-backend/api/validators"
	"github.com/sirimeals/mealops-backend/internal/auditlog"
	"github.com/sirimeals/mealops-backend/pkg/enums"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
	"github.com/sirimeals/mealops-backend/pkg/logger"
)

func AuditLogList(svc auditlog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filters auditlog.Filters
		if raw := strings.TrimSpace(r.URL.Query().Get("event")); raw != "" {
			event := enums.AuditEvent(raw)
			if !event.Valid() {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "unknown audit event").
						WithDetails(map[string]string{"field": "event"}))
				return
			}
			filters.Event = &event
		}
		if filters.ActorID, err = validators.ParseQueryUUID(r, "actorId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.CustomerID, err = validators.ParseQueryUUID(r, "customerId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.From, err = validators.ParseQueryDate(r, "from"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.To, err = validators.ParseQueryDate(r, "to"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
