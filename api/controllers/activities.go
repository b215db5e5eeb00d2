package controllers

import (
	"net/http"

	"github.com/lien-travel/planner-backend/api/responses"
	"github.com/lien-travel/planner-backend/api/validators"
	"github.com/lien-travel/planner-backend/internal/templates"
	"github.com/lien-travel/planner-backend/pkg/logger"
)

type activityPayload struct {
	Time               string `json:"time" validate:"required,max=50"`
	Description        string `json:"description" validate:"required,max=300"`
	LocationID         uint   `json:"location_id" validate:"required"`
	PreviousLocationID *uint  `json:"previous_location_id"`
	OrderIndex         int    `json:"order_index" validate:"gte=0"`
}

func (p activityPayload) toInput() templates.ActivityInput {
	return templates.ActivityInput{
		Time:               p.Time,
		Description:        p.Description,
		LocationID:         p.LocationID,
		PreviousLocationID: p.PreviousLocationID,
		OrderIndex:         p.OrderIndex,
	}
}

func ActivitiesCreate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, templatesUnavailable())
			return
		}
		userID, templateID, dayID, err := dayRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body activityPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.AddActivity(ctx, userID, templateID, dayID, body.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, view)
	}
}

// ActivitiesUpdate replaces the activity fields. An omitted
// previous_location_id keeps the stored reference.
func ActivitiesUpdate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, templatesUnavailable())
			return
		}
		userID, templateID, dayID, err := dayRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		activityID, err := validators.ParsePathID(r, "activityId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body activityPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.UpdateActivity(ctx, userID, templateID, dayID, activityID, body.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func ActivitiesDelete(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, templatesUnavailable())
			return
		}
		userID, templateID, dayID, err := dayRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		activityID, err := validators.ParsePathID(r, "activityId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteActivity(ctx, userID, templateID, dayID, activityID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
