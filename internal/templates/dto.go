package templates

import (
	"strings"

	"github.com/lien-travel/planner-backend/pkg/db/models"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
	"github.com/lien-travel/planner-backend/pkg/types"
)

// TemplateInput carries every mutable template field. Updates replace all of them.
type TemplateInput struct {
	Title          string
	Destination    string
	StartDate      types.Date
	EndDate        types.Date
	TotalDays      int
	Accommodation  *string
	Transportation *string
}

// SectionInput describes a checklist section and its complete item list.
type SectionInput struct {
	Title      string
	Icon       *string
	OrderIndex int
	Items      []ItemInput
}

// ItemInput is one checklist line. Items are recreated in slice order.
type ItemInput struct {
	Label      string
	OrderIndex int
}

// DayInput carries the day schedule fields. Activities are managed separately.
type DayInput struct {
	DayNumber int
	Date      types.Date
	Title     string
	Color     *string
}

// ActivityInput carries the activity fields and location references.
// A nil PreviousLocationID leaves the reference unset on add and unchanged on update.
type ActivityInput struct {
	Time               string
	Description        string
	LocationID         uint
	PreviousLocationID *uint
	OrderIndex         int
}

func validationError(message string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, message)
}

func (in TemplateInput) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return validationError("title is required")
	case strings.TrimSpace(in.Destination) == "":
		return validationError("destination is required")
	case in.StartDate.IsZero() || in.EndDate.IsZero():
		return validationError("start_date and end_date are required")
	case in.EndDate.Before(in.StartDate.Time):
		return validationError("end_date must not be before start_date")
	case in.TotalDays < 1:
		return validationError("total_days must be at least 1")
	}
	return nil
}

func (in TemplateInput) applyTo(m *models.Template) {
	m.Title = strings.TrimSpace(in.Title)
	m.Destination = strings.TrimSpace(in.Destination)
	m.StartDate = in.StartDate.Time
	m.EndDate = in.EndDate.Time
	m.TotalDays = in.TotalDays
	m.Accommodation = in.Accommodation
	m.Transportation = in.Transportation
}

func (in SectionInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return validationError("section title is required")
	}
	if in.OrderIndex < 0 {
		return validationError("section order_index must be non-negative")
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.Label) == "" {
			return validationError("item label is required")
		}
		if item.OrderIndex < 0 {
			return validationError("item order_index must be non-negative")
		}
	}
	return nil
}

func (in SectionInput) applyTo(m *models.ChecklistSection) {
	m.Title = strings.TrimSpace(in.Title)
	m.Icon = in.Icon
	m.OrderIndex = in.OrderIndex
}

func (in SectionInput) items() []models.ChecklistItem {
	out := make([]models.ChecklistItem, 0, len(in.Items))
	for _, item := range in.Items {
		out = append(out, models.ChecklistItem{
			Label:      strings.TrimSpace(item.Label),
			OrderIndex: item.OrderIndex,
		})
	}
	return out
}

func (in DayInput) validate() error {
	switch {
	case in.DayNumber < 1:
		return validationError("day_number must be at least 1")
	case in.Date.IsZero():
		return validationError("date is required")
	case strings.TrimSpace(in.Title) == "":
		return validationError("day title is required")
	}
	return nil
}

func (in DayInput) applyTo(m *models.DaySchedule) {
	m.DayNumber = in.DayNumber
	m.Date = in.Date.Time
	m.Title = strings.TrimSpace(in.Title)
	m.Color = in.Color
}

func (in ActivityInput) validate() error {
	switch {
	case strings.TrimSpace(in.Time) == "":
		return validationError("time is required")
	case strings.TrimSpace(in.Description) == "":
		return validationError("description is required")
	case in.LocationID == 0:
		return validationError("location_id is required")
	case in.OrderIndex < 0:
		return validationError("order_index must be non-negative")
	}
	return nil
}
