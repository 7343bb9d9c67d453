package controllers

import (
	"net/http"
	"time"

	"github.com/sirimeals/mealops-backend/api/middleware"
	"github.com/sirimeals/mealops-backend/api/responses"
	"github.com/sirimeals/mealops-backend/api/validators"
	"github.com/sirimeals/mealops-backend/internal/holidays"
	"github.com/sirimeals/mealops-backend/internal/schedule"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
	"github.com/sirimeals/mealops-backend/pkg/logger"
)

func HolidayList(svc holidays.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := validators.ParseQueryInt(r, "year", time.Now().UTC().Year(), 2000, 2100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListYear(r.Context(), year)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type updateHolidaysRequest struct {
	AddDates    []string `json:"addDates"`
	RemoveDates []string `json:"removeDates"`
}

// HolidayUpdate blocks and unblocks calendar dates in one batch. Changes only
// affect schedules materialized afterwards.
func HolidayUpdate(svc holidays.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateHolidaysRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(req.AddDates) == 0 && len(req.RemoveDates) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update"))
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		for _, raw := range req.AddDates {
			date, err := schedule.ParseDate(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, invalidHolidayDate(raw))
				return
			}
			if err := svc.Block(r.Context(), actorID, date); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		for _, raw := range req.RemoveDates {
			date, err := schedule.ParseDate(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, invalidHolidayDate(raw))
				return
			}
			if err := svc.Unblock(r.Context(), actorID, date); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		responses.WriteSuccess(w, map[string]int{
			"blocked":   len(req.AddDates),
			"unblocked": len(req.RemoveDates),
		})
	}
}

func invalidHolidayDate(raw string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "dates must use YYYY-MM-DD").
		WithDetails(map[string]string{"date": raw})
}
