package templates

import (
	"context"
	"errors"

	"github.com/lien-travel/planner-backend/pkg/db/models"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
	"github.com/lien-travel/planner-backend/pkg/visibility"
	"gorm.io/gorm"
)

// ChainIDs names a path through the aggregate. Zero means "not part of the path".
type ChainIDs struct {
	TemplateID uint
	SectionID  uint
	DayID      uint
	ActivityID uint
}

// ResolvedChain holds every node of a verified path, from the template down.
type ResolvedChain struct {
	Template *models.Template
	Section  *models.ChecklistSection
	Day      *models.DaySchedule
	Activity *models.Activity
}

type chainLoader interface {
	FindTemplate(ctx context.Context, id uint) (*models.Template, error)
	FindSection(ctx context.Context, id uint) (*models.ChecklistSection, error)
	FindDay(ctx context.Context, id uint) (*models.DaySchedule, error)
	FindActivity(ctx context.Context, id uint) (*models.Activity, error)
}

// ResolveChain walks the path top-down for userID. The template must exist and
// be owned by the user; each child must exist and point at the parent named in
// the path. A child whose stored parent differs reports CodeInconsistent.
func ResolveChain(ctx context.Context, loader chainLoader, userID uint, ids ChainIDs) (*ResolvedChain, error) {
	if ids.ActivityID != 0 && ids.DayID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "activity path requires a day id")
	}

	template, err := find(ctx, ids.TemplateID, "template", loader.FindTemplate)
	if err != nil {
		return nil, err
	}
	if err := visibility.EnsureTemplateOwned(template, userID); err != nil {
		return nil, err
	}
	chain := &ResolvedChain{Template: template}

	if ids.SectionID != 0 {
		section, err := find(ctx, ids.SectionID, "checklist section", loader.FindSection)
		if err != nil {
			return nil, err
		}
		if section.TemplateID != template.ID {
			return nil, inconsistent("checklist section does not belong to template", ids)
		}
		chain.Section = section
	}

	if ids.DayID != 0 {
		day, err := find(ctx, ids.DayID, "day schedule", loader.FindDay)
		if err != nil {
			return nil, err
		}
		if day.TemplateID != template.ID {
			return nil, inconsistent("day schedule does not belong to template", ids)
		}
		chain.Day = day
	}

	if ids.ActivityID != 0 {
		activity, err := find(ctx, ids.ActivityID, "activity", loader.FindActivity)
		if err != nil {
			return nil, err
		}
		if activity.DayScheduleID != chain.Day.ID {
			return nil, inconsistent("activity does not belong to day schedule", ids)
		}
		chain.Activity = activity
	}

	return chain, nil
}

func find[T any](ctx context.Context, id uint, kind string, load func(context.Context, uint) (*T, error)) (*T, error) {
	if id == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, kind+" not found")
	}
	row, err := load(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, kind+" not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+kind)
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, kind+" not found")
	}
	return row, nil
}

func inconsistent(message string, ids ChainIDs) error {
	return pkgerrors.New(pkgerrors.CodeInconsistent, message).WithDetails(map[string]any{
		"template_id": ids.TemplateID,
		"section_id":  ids.SectionID,
		"day_id":      ids.DayID,
		"activity_id": ids.ActivityID,
	})
}
