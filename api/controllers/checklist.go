package controllers

import (
	"net/http"

	"github.com/lien-travel/planner-backend/api/responses"
	"github.com/lien-travel/planner-backend/api/validators"
	"github.com/lien-travel/planner-backend/internal/templates"
	"github.com/lien-travel/planner-backend/pkg/logger"
)

type checklistItemPayload struct {
	Label      string `json:"label" validate:"required,max=200"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

type checklistSectionPayload struct {
	Title      string                 `json:"title" validate:"required,max=100"`
	Icon       *string                `json:"icon" validate:"omitempty,max=10"`
	OrderIndex int                    `json:"order_index" validate:"gte=0"`
	Items      []checklistItemPayload `json:"items" validate:"required,min=1,dive"`
}

func (p checklistSectionPayload) toInput() templates.SectionInput {
	items := make([]templates.ItemInput, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, templates.ItemInput{Label: item.Label, OrderIndex: item.OrderIndex})
	}
	return templates.SectionInput{
		Title:      p.Title,
		Icon:       p.Icon,
		OrderIndex: p.OrderIndex,
		Items:      items,
	}
}

// ChecklistSectionsCreate adds a section with its items to a template.
func ChecklistSectionsCreate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body checklistSectionPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.AddChecklistSection(ctx, userID, templateID, body.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, view)
	}
}

// ChecklistSectionsUpdate replaces the section fields and recreates its items.
func ChecklistSectionsUpdate(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
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
		sectionID, err := validators.ParsePathID(r, "sectionId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body checklistSectionPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.UpdateChecklistSection(ctx, userID, templateID, sectionID, body.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func ChecklistSectionsDelete(svc templates.Service, logg *logger.Logger) http.HandlerFunc {
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
		sectionID, err := validators.ParsePathID(r, "sectionId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.DeleteChecklistSection(ctx, userID, templateID, sectionID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
