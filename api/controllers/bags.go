package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sirimeals/mealops-backend/api/middleware"
	"github.com/sirimeals/mealops-backend/api/responses"
	"github.com/sirimeals/mealops-backend/api/validators"
	"github.com/sirimeals/mealops-backend/internal/bags"
	"github.com/sirimeals/mealops-backend/internal/schedule"
	"github.com/sirimeals/mealops-backend/pkg/enums"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
	"github.com/sirimeals/mealops-backend/pkg/logger"
)

func BagList(svc bags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := listParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := bagFilters(r)
		if err != nil {
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

// BagExport downloads the filtered bag listing as a packing spreadsheet.
func BagExport(svc bags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := bagFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := svc.Export(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteXLSX(w, exportFilename(filters), payload)
	}
}

func BagGet(svc bags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bagID, err := validators.ParsePathUUID(chi.URLParam(r, "bagId"), "bagId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bag, err := svc.Get(r.Context(), bagID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bag)
	}
}

// BagUpdate adjusts a single future bag's meal counts and delivery address.
func BagUpdate(svc bags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bagID, err := validators.ParsePathUUID(chi.URLParam(r, "bagId"), "bagId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input bags.UpdateBagInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		bag, err := svc.Update(r.Context(), actorID, bagID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bag)
	}
}

func BagRemove(svc bags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bagID, err := validators.ParsePathUUID(chi.URLParam(r, "bagId"), "bagId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		if err := svc.Remove(r.Context(), actorID, bagID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

type assignBasketsRequest struct {
	Assignments []bags.BasketAssignment `json:"assignments" validate:"required,min=1,dive"`
}

// BagAssignBaskets labels a batch of bags with their staging containers.
func BagAssignBaskets(svc bags.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req assignBasketsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		if err := svc.AssignBaskets(r.Context(), actorID, req.Assignments); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"assigned": len(req.Assignments)})
	}
}

func bagFilters(r *http.Request) (bags.Filters, error) {
	var filters bags.Filters
	var err error
	if filters.From, err = validators.ParseQueryDate(r, "from"); err != nil {
		return bags.Filters{}, err
	}
	if filters.To, err = validators.ParseQueryDate(r, "to"); err != nil {
		return bags.Filters{}, err
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("mealType")); raw != "" {
		mealType := enums.MealType(raw)
		if !mealType.Valid() {
			return bags.Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown meal type").
				WithDetails(map[string]string{"field": "mealType"})
		}
		filters.MealType = &mealType
	}

	filters.CustomerText = strings.TrimSpace(r.URL.Query().Get("q"))

	if raw := strings.TrimSpace(r.URL.Query().Get("code")); raw != "" {
		filters.QRCode = &raw
	}
	return filters, nil
}

func exportFilename(filters bags.Filters) string {
	from, to := "all", "all"
	if filters.From != nil {
		from = schedule.FormatDate(*filters.From)
	}
	if filters.To != nil {
		to = schedule.FormatDate(*filters.To)
	}
	if from == "all" && to == "all" {
		return fmt.Sprintf("bags-%s.xlsx", time.Now().UTC().Format(schedule.DateLayout))
	}
	return fmt.Sprintf("bags-%s-to-%s.xlsx", from, to)
}
