package controllers

import (
	"net/http"

	"github.com/lien-travel/planner-backend/api/responses"
	"github.com/lien-travel/planner-backend/api/validators"
	"github.com/lien-travel/planner-backend/internal/templates"
	"github.com/lien-travel/planner-backend/pkg/logger"
	"github.com/lien-travel/planner-backend/pkg/types"
)

type dayPayload struct {
	DayNumber int        `json:"day_number" validate:"gte=1"`
	Date      types.Date `json:"date"`
	Title     string     `json:"title" validate:"required,max=100"`
	Color     *string    `json:"color" validate:"omitempty,max=20"`
}

func (p dayPayload) toInput() templates.DayInput {
	return templates.DayInput{
		DayNumber: p.DayNumber,
		Date:      p.Date,
		Title:     p.Title,
		Color:     p.Color,
	}
}

// dayRequest resolves the caller, template and {dayId} path parameters.
func dayRequest(r *http.Request) (userID, templateID, dayID uint, err error) {
	if userID, templateID, err = templateRequest(r); err != nil {
		return 0, 0, 0, err
	}
	if dayID, err = validators.ParsePathID(r, "dayId"); err != nil {
		return 0, 0, 0, err
	}
	return userID, templateID, dayID, nil
}

func DaysCreate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, templatesUnavailable())
			return
		}
		userID, templateID, err := templateRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body dayPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.AddDaySchedule(ctx, userID, templateID, body.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, view)
	}
}

// DaysUpdate replaces the day fields; the day's activities are kept.
func DaysUpdate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body dayPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.UpdateDaySchedule(ctx, userID, templateID, dayID, body.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func DaysDelete(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.DeleteDaySchedule(ctx, userID, templateID, dayID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
