package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lien-travel/planner-backend/internal/locations"
	"github.com/lien-travel/planner-backend/pkg/db/models"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
	"github.com/lien-travel/planner-backend/pkg/metrics"
	"github.com/lien-travel/planner-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages templates and their checklist and day-schedule collections.
// Every call re-verifies the ownership chain inside its own transaction.
type Service interface {
	Create(ctx context.Context, userID uint, input TemplateInput) (*TemplateView, error)
	List(ctx context.Context, userID uint, params pagination.Params) (*pagination.Page[TemplateView], error)
	Get(ctx context.Context, userID, templateID uint) (*TemplateView, error)
	GetDetail(ctx context.Context, userID, templateID uint) (*TemplateDetailView, error)
	Update(ctx context.Context, userID, templateID uint, input TemplateInput) (*TemplateView, error)
	Delete(ctx context.Context, userID, templateID uint) error

	AddChecklistSection(ctx context.Context, userID, templateID uint, input SectionInput) (*SectionView, error)
	UpdateChecklistSection(ctx context.Context, userID, templateID, sectionID uint, input SectionInput) (*SectionView, error)
	DeleteChecklistSection(ctx context.Context, userID, templateID, sectionID uint) error

	AddDaySchedule(ctx context.Context, userID, templateID uint, input DayInput) (*DayView, error)
	UpdateDaySchedule(ctx context.Context, userID, templateID, dayID uint, input DayInput) (*DayView, error)
	DeleteDaySchedule(ctx context.Context, userID, templateID, dayID uint) error

	AddActivity(ctx context.Context, userID, templateID, dayID uint, input ActivityInput) (*ActivityView, error)
	UpdateActivity(ctx context.Context, userID, templateID, dayID, activityID uint, input ActivityInput) (*ActivityView, error)
	DeleteActivity(ctx context.Context, userID, templateID, dayID, activityID uint) error
}

// ServiceParams wires the aggregate manager dependencies.
type ServiceParams struct {
	Repo      Repository
	Locations locations.Repository
	Tx        txRunner
	Metrics   *metrics.OperationMetrics
}

type service struct {
	repo      Repository
	locations locations.Repository
	tx        txRunner
	metrics   *metrics.OperationMetrics
}

// NewService builds the template aggregate manager.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("templates repository required")
	}
	if params.Locations == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      params.Repo,
		locations: params.Locations,
		tx:        params.Tx,
		metrics:   params.Metrics,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uint, input TemplateInput) (view *TemplateView, err error) {
	defer s.observe("template.create", time.Now(), &err)
	if userID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	template := &models.Template{OwnerID: userID}
	input.applyTo(template)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).CreateTemplate(ctx, template); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create template")
		}
		v := newTemplateView(template)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) List(ctx context.Context, userID uint, params pagination.Params) (*pagination.Page[TemplateView], error) {
	if userID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	cursor, err := pagination.ParseCursor(strings.TrimSpace(params.Cursor))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	var page pagination.Page[TemplateView]
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.repo.WithTx(tx).ListByOwner(ctx, userID, cursor, params.Limit)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list templates")
		}
		trimmed := pagination.Trim(rows, params.Limit, func(t models.Template) uint { return t.ID })
		page.NextCursor = trimmed.NextCursor
		page.Items = make([]TemplateView, 0, len(trimmed.Items))
		for i := range trimmed.Items {
			page.Items = append(page.Items, newTemplateView(&trimmed.Items[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *service) Get(ctx context.Context, userID, templateID uint) (*TemplateView, error) {
	var view *TemplateView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		chain, err := ResolveChain(ctx, s.repo.WithTx(tx), userID, ChainIDs{TemplateID: templateID})
		if err != nil {
			return err
		}
		v := newTemplateView(chain.Template)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) GetDetail(ctx context.Context, userID, templateID uint) (*TemplateDetailView, error) {
	var view *TemplateDetailView
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID}); err != nil {
			return err
		}
		tree, err := repo.LoadTree(ctx, templateID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load template tree")
		}
		rows, err := s.locations.WithTx(tx).FindByIDs(ctx, referencedLocationIDs(tree.DaySchedules))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load activity locations")
		}
		v := newTemplateDetailView(tree, newLocationIndex(rows))
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) Update(ctx context.Context, userID, templateID uint, input TemplateInput) (view *TemplateView, err error) {
	defer s.observe("template.update", time.Now(), &err)
	if err := input.validate(); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		chain, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID})
		if err != nil {
			return err
		}
		input.applyTo(chain.Template)
		if err := repo.UpdateTemplate(ctx, chain.Template); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update template")
		}
		v := newTemplateView(chain.Template)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) Delete(ctx context.Context, userID, templateID uint) (err error) {
	defer s.observe("template.delete", time.Now(), &err)
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID}); err != nil {
			return err
		}
		if err := repo.DeleteTemplate(ctx, templateID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete template")
		}
		return nil
	})
}

func (s *service) AddChecklistSection(ctx context.Context, userID, templateID uint, input SectionInput) (view *SectionView, err error) {
	defer s.observe("checklist_section.add", time.Now(), &err)
	if err := input.validate(); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		chain, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID})
		if err != nil {
			return err
		}
		section := &models.ChecklistSection{TemplateID: chain.Template.ID}
		input.applyTo(section)
		if err := repo.CreateSection(ctx, section); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create checklist section")
		}
		items, err := repo.ReplaceItems(ctx, section.ID, input.items())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create checklist items")
		}
		section.Items = items
		v := newSectionView(section)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateChecklistSection replaces the section fields and discards every prior
// item; the new items always receive fresh ids.
func (s *service) UpdateChecklistSection(ctx context.Context, userID, templateID, sectionID uint, input SectionInput) (view *SectionView, err error) {
	defer s.observe("checklist_section.update", time.Now(), &err)
	if err := input.validate(); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		chain, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID, SectionID: sectionID})
		if err != nil {
			return err
		}
		section := chain.Section
		input.applyTo(section)
		if err := repo.UpdateSection(ctx, section); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update checklist section")
		}
		items, err := repo.ReplaceItems(ctx, section.ID, input.items())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace checklist items")
		}
		section.Items = items
		v := newSectionView(section)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) DeleteChecklistSection(ctx context.Context, userID, templateID, sectionID uint) (err error) {
	defer s.observe("checklist_section.delete", time.Now(), &err)
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID, SectionID: sectionID}); err != nil {
			return err
		}
		if err := repo.DeleteSection(ctx, sectionID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete checklist section")
		}
		return nil
	})
}

func (s *service) AddDaySchedule(ctx context.Context, userID, templateID uint, input DayInput) (view *DayView, err error) {
	defer s.observe("day_schedule.add", time.Now(), &err)
	if err := input.validate(); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		chain, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID})
		if err != nil {
			return err
		}
		day := &models.DaySchedule{TemplateID: chain.Template.ID}
		input.applyTo(day)
		if err := repo.CreateDay(ctx, day); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create day schedule")
		}
		v := newDayView(day, nil)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateDaySchedule replaces the day fields only; its activities are untouched.
func (s *service) UpdateDaySchedule(ctx context.Context, userID, templateID, dayID uint, input DayInput) (view *DayView, err error) {
	defer s.observe("day_schedule.update", time.Now(), &err)
	if err := input.validate(); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		chain, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID, DayID: dayID})
		if err != nil {
			return err
		}
		day := chain.Day
		input.applyTo(day)
		if err := repo.UpdateDay(ctx, day); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update day schedule")
		}
		index, err := s.indexLocations(ctx, tx, []models.DaySchedule{*day})
		if err != nil {
			return err
		}
		v := newDayView(day, index)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) DeleteDaySchedule(ctx context.Context, userID, templateID, dayID uint) (err error) {
	defer s.observe("day_schedule.delete", time.Now(), &err)
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID, DayID: dayID}); err != nil {
			return err
		}
		if err := repo.DeleteDay(ctx, dayID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete day schedule")
		}
		return nil
	})
}

func (s *service) AddActivity(ctx context.Context, userID, templateID, dayID uint, input ActivityInput) (view *ActivityView, err error) {
	defer s.observe("activity.add", time.Now(), &err)
	if err := input.validate(); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		chain, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID, DayID: dayID})
		if err != nil {
			return err
		}
		location, err := s.resolveLocation(ctx, tx, input.LocationID, "location")
		if err != nil {
			return err
		}
		var previous *models.Location
		if input.PreviousLocationID != nil {
			previous, err = s.resolveLocation(ctx, tx, *input.PreviousLocationID, "previous location")
			if err != nil {
				return err
			}
		}

		activity := &models.Activity{
			DayScheduleID: chain.Day.ID,
			Time:          strings.TrimSpace(input.Time),
			Description:   strings.TrimSpace(input.Description),
			LocationID:    location.ID,
			OrderIndex:    input.OrderIndex,
		}
		if previous != nil {
			activity.PreviousLocationID = &previous.ID
		}
		if err := repo.CreateActivity(ctx, activity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create activity")
		}
		v := newActivityView(activity, indexOf(location, previous))
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateActivity always re-resolves the location. The previous location is
// replaced only when a non-zero id is supplied; otherwise the stored reference
// is kept. Any failed resolution aborts before a field is written.
func (s *service) UpdateActivity(ctx context.Context, userID, templateID, dayID, activityID uint, input ActivityInput) (view *ActivityView, err error) {
	defer s.observe("activity.update", time.Now(), &err)
	if err := input.validate(); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		chain, err := ResolveChain(ctx, repo, userID, ChainIDs{TemplateID: templateID, DayID: dayID, ActivityID: activityID})
		if err != nil {
			return err
		}
		activity := chain.Activity

		location, err := s.resolveLocation(ctx, tx, input.LocationID, "location")
		if err != nil {
			return err
		}
		previousID := activity.PreviousLocationID
		if input.PreviousLocationID != nil && *input.PreviousLocationID != 0 {
			previous, err := s.resolveLocation(ctx, tx, *input.PreviousLocationID, "previous location")
			if err != nil {
				return err
			}
			previousID = &previous.ID
		}

		activity.Time = strings.TrimSpace(input.Time)
		activity.Description = strings.TrimSpace(input.Description)
		activity.LocationID = location.ID
		activity.PreviousLocationID = previousID
		activity.OrderIndex = input.OrderIndex
		if err := repo.UpdateActivity(ctx, activity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update activity")
		}

		index, err := s.indexLocations(ctx, tx, []models.DaySchedule{{Activities: []models.Activity{*activity}}})
		if err != nil {
			return err
		}
		v := newActivityView(activity, index)
		view = &v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *service) DeleteActivity(ctx context.Context, userID, templateID, dayID, activityID uint) (err error) {
	defer s.observe("activity.delete", time.Now(), &err)
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ids := ChainIDs{TemplateID: templateID, DayID: dayID, ActivityID: activityID}
		if _, err := ResolveChain(ctx, repo, userID, ids); err != nil {
			return err
		}
		if err := repo.DeleteActivity(ctx, activityID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete activity")
		}
		return nil
	})
}

// resolveLocation loads a referenced location regardless of its visibility.
func (s *service) resolveLocation(ctx context.Context, tx *gorm.DB, id uint, kind string) (*models.Location, error) {
	if id == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, kind+" not found")
	}
	location, err := s.locations.WithTx(tx).FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, kind+" not found").
				WithDetails(map[string]any{"location_id": id})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+kind)
	}
	return location, nil
}

func (s *service) indexLocations(ctx context.Context, tx *gorm.DB, days []models.DaySchedule) (locationIndex, error) {
	ids := referencedLocationIDs(days)
	if len(ids) == 0 {
		return locationIndex{}, nil
	}
	rows, err := s.locations.WithTx(tx).FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load activity locations")
	}
	return newLocationIndex(rows), nil
}

func indexOf(locations ...*models.Location) locationIndex {
	idx := locationIndex{}
	for _, location := range locations {
		if location != nil {
			idx[location.ID] = location
		}
	}
	return idx
}

func (s *service) observe(operation string, started time.Time, err *error) {
	s.metrics.Observe(operation, started, *err)
}
