package templates

import (
	"sort"
	"time"

	"github.com/lien-travel/planner-backend/pkg/db/models"
	"github.com/lien-travel/planner-backend/pkg/enums"
	"github.com/lien-travel/planner-backend/pkg/types"
)

// TemplateView is the flat template record.
type TemplateView struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Destination    string     `json:"destination"`
	StartDate      types.Date `json:"start_date"`
	EndDate        types.Date `json:"end_date"`
	TotalDays      int        `json:"total_days"`
	Accommodation  *string    `json:"accommodation,omitempty"`
	Transportation *string    `json:"transportation,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TemplateDetailView is the composed tree returned by GetDetail.
type TemplateDetailView struct {
	Template          TemplateView  `json:"template"`
	ChecklistSections []SectionView `json:"checklist_sections"`
	DaySchedules      []DayView     `json:"day_schedules"`
}

type SectionView struct {
	ID         uint       `json:"id"`
	Title      string     `json:"title"`
	Icon       *string    `json:"icon,omitempty"`
	OrderIndex int        `json:"order_index"`
	Items      []ItemView `json:"items"`
}

type ItemView struct {
	ID         uint   `json:"id"`
	Label      string `json:"label"`
	OrderIndex int    `json:"order_index"`
}

type DayView struct {
	ID         uint           `json:"id"`
	DayNumber  int            `json:"day_number"`
	Date       types.Date     `json:"date"`
	Title      string         `json:"title"`
	Color      *string        `json:"color,omitempty"`
	Activities []ActivityView `json:"activities"`
}

// ActivityView embeds copies of the referenced locations. A location that was
// deleted after the activity was written renders as nil.
type ActivityView struct {
	ID               uint          `json:"id"`
	Time             string        `json:"time"`
	Description      string        `json:"description"`
	Location         *LocationView `json:"location"`
	PreviousLocation *LocationView `json:"previous_location"`
	OrderIndex       int           `json:"order_index"`
}

// LocationView is the public subset of a location embedded in activities.
type LocationView struct {
	ID          uint                   `json:"id"`
	Name        string                 `json:"name"`
	Category    enums.LocationCategory `json:"category"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	Address     string                 `json:"address"`
	Description *string                `json:"description,omitempty"`
	IsPublic    bool                   `json:"is_public"`
}

// locationIndex resolves location ids while assembling activity views.
type locationIndex map[uint]*models.Location

func newLocationIndex(rows []models.Location) locationIndex {
	idx := make(locationIndex, len(rows))
	for i := range rows {
		idx[rows[i].ID] = &rows[i]
	}
	return idx
}

func (idx locationIndex) view(id *uint) *LocationView {
	if id == nil {
		return nil
	}
	return newLocationView(idx[*id])
}

func newTemplateView(m *models.Template) TemplateView {
	return TemplateView{
		ID:             m.ID,
		Title:          m.Title,
		Destination:    m.Destination,
		StartDate:      types.NewDate(m.StartDate),
		EndDate:        types.NewDate(m.EndDate),
		TotalDays:      m.TotalDays,
		Accommodation:  m.Accommodation,
		Transportation: m.Transportation,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func newLocationView(m *models.Location) *LocationView {
	if m == nil {
		return nil
	}
	return &LocationView{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Address:     m.Address,
		Description: m.Description,
		IsPublic:    m.IsPublic,
	}
}

func newItemViews(items []models.ChecklistItem) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		out = append(out, ItemView{ID: item.ID, Label: item.Label, OrderIndex: item.OrderIndex})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

func newSectionView(m *models.ChecklistSection) SectionView {
	return SectionView{
		ID:         m.ID,
		Title:      m.Title,
		Icon:       m.Icon,
		OrderIndex: m.OrderIndex,
		Items:      newItemViews(m.Items),
	}
}

func newActivityView(m *models.Activity, locations locationIndex) ActivityView {
	return ActivityView{
		ID:               m.ID,
		Time:             m.Time,
		Description:      m.Description,
		Location:         locations.view(&m.LocationID),
		PreviousLocation: locations.view(m.PreviousLocationID),
		OrderIndex:       m.OrderIndex,
	}
}

func newDayView(m *models.DaySchedule, locations locationIndex) DayView {
	activities := make([]ActivityView, 0, len(m.Activities))
	for i := range m.Activities {
		activities = append(activities, newActivityView(&m.Activities[i], locations))
	}
	sort.SliceStable(activities, func(i, j int) bool { return activities[i].OrderIndex < activities[j].OrderIndex })
	return DayView{
		ID:         m.ID,
		DayNumber:  m.DayNumber,
		Date:       types.NewDate(m.Date),
		Title:      m.Title,
		Color:      m.Color,
		Activities: activities,
	}
}

// newTemplateDetailView composes the tree bottom-up. Sections and activities
// are ordered by order_index; days by day_number.
func newTemplateDetailView(m *models.Template, locations locationIndex) TemplateDetailView {
	sections := make([]SectionView, 0, len(m.ChecklistSections))
	for i := range m.ChecklistSections {
		sections = append(sections, newSectionView(&m.ChecklistSections[i]))
	}
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].OrderIndex < sections[j].OrderIndex })

	days := make([]DayView, 0, len(m.DaySchedules))
	for i := range m.DaySchedules {
		days = append(days, newDayView(&m.DaySchedules[i], locations))
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].DayNumber < days[j].DayNumber })

	return TemplateDetailView{
		Template:          newTemplateView(m),
		ChecklistSections: sections,
		DaySchedules:      days,
	}
}

// referencedLocationIDs collects every location id used by the activities of days.
func referencedLocationIDs(days []models.DaySchedule) []uint {
	seen := map[uint]struct{}{}
	var ids []uint
	add := func(id uint) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, day := range days {
		for _, activity := range day.Activities {
			add(activity.LocationID)
			if activity.PreviousLocationID != nil {
				add(*activity.PreviousLocationID)
			}
		}
	}
	return ids
}
