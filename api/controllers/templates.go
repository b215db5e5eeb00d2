package controllers

import (
	"net/http"
	"strings"

	"github.com/lien-travel/planner-backend/api/responses"
	"github.com/lien-travel/planner-backend/api/validators"
	"github.com/lien-travel/planner-backend/internal/templates"
	"github.com/lien-travel/planner-backend/pkg/config"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
	"github.com/lien-travel/planner-backend/pkg/logger"
	"github.com/lien-travel/planner-backend/pkg/pagination"
	"github.com/lien-travel/planner-backend/pkg/types"
)

type templatePayload struct {
	Title          string     `json:"title" validate:"required,max=200"`
	Destination    string     `json:"destination" validate:"required,max=200"`
	StartDate      types.Date `json:"start_date"`
	EndDate        types.Date `json:"end_date"`
	TotalDays      int        `json:"total_days" validate:"gte=1"`
	Accommodation  *string    `json:"accommodation" validate:"omitempty,max=200"`
	Transportation *string    `json:"transportation" validate:"omitempty,max=200"`
}

func (p templatePayload) toInput() templates.TemplateInput {
	return templates.TemplateInput{
		Title:          p.Title,
		Destination:    p.Destination,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		TotalDays:      p.TotalDays,
		Accommodation:  p.Accommodation,
		Transportation: p.Transportation,
	}
}

func templatesUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "templates service unavailable")
}

// templateRequest resolves the caller and the {templateId} path parameter.
func templateRequest(r *http.Request) (userID, templateID uint, err error) {
	if userID, err = requireUser(r); err != nil {
		return 0, 0, err
	}
	if templateID, err = validators.ParsePathID(r, "templateId"); err != nil {
		return 0, 0, err
	}
	return userID, templateID, nil
}

func TemplatesCreate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, templatesUnavailable())
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body templatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.Create(ctx, userID, body.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, view)
	}
}

// TemplatesList returns the caller's templates newest first.
func TemplatesList(svc templates.Service, pageCfg config.PaginationConfig, logg *logger.Logger) http.HandlerFunc {
	defaultLimit := pageCfg.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = pagination.DefaultLimit
	}
	maxLimit := pageCfg.MaxLimit
	if maxLimit <= 0 || maxLimit > pagination.MaxLimit {
		maxLimit = pagination.MaxLimit
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, templatesUnavailable())
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, maxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		page, err := svc.List(ctx, userID, pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// TemplatesGet returns the full detail tree, or the flat record with ?view=summary.
func TemplatesGet(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
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
		if logg != nil {
			ctx = logg.WithTemplateID(ctx, templateID)
		}

		switch view := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("view"))); view {
		case "", "detail":
			detail, err := svc.GetDetail(ctx, userID, templateID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, detail)
		case "summary":
			summary, err := svc.Get(ctx, userID, templateID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, summary)
		default:
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "view must be detail or summary"))
		}
	}
}

// TemplatesUpdate replaces the template's own fields. Children are untouched.
func TemplatesUpdate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body templatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.Update(ctx, userID, templateID, body.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func TemplatesDelete(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(ctx, userID, templateID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
