package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sirimeals/mealops-backend/api/middleware"
	"github.com/sirimeals/mealops-backend/api/responses"
	"github.com/sirimeals/mealops-backend/api/validators"
	"github.com/sirimeals/mealops-backend/internal/packing"
	"github.com/sirimeals/mealops-backend/pkg/logger"
)

type verifyItemRequest struct {
	BagCode string    `json:"bagCode" validate:"required"`
	ItemID  uuid.UUID `json:"itemId" validate:"required"`
}

// PackingVerifyItem records an item scan against the scanned bag code.
func PackingVerifyItem(svc packing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		if err := svc.VerifyItem(r.Context(), actorID, req.BagCode, req.ItemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"verified": true})
	}
}

type verifyBagRequest struct {
	BagCode string `json:"bagCode" validate:"required"`
	Basket  string `json:"basket" validate:"required"`
}

// PackingVerifyBag records a basket scan for the whole bag group sharing the
// scanned code.
func PackingVerifyBag(svc packing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyBagRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actorID := middleware.ActorIDFromContext(r.Context())
		if err := svc.VerifyBag(r.Context(), actorID, req.BagCode, req.Basket); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"verified": true})
	}
}
