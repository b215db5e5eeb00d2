package templates

import (
	"context"

	"github.com/lien-travel/planner-backend/pkg/db/models"
	"github.com/lien-travel/planner-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines persistence for templates and their child collections.
// Deletes remove children explicitly so behavior does not depend on the
// database enforcing ON DELETE CASCADE.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateTemplate(ctx context.Context, template *models.Template) error
	FindTemplate(ctx context.Context, id uint) (*models.Template, error)
	ListByOwner(ctx context.Context, ownerID uint, cursor *pagination.Cursor, limit int) ([]models.Template, error)
	UpdateTemplate(ctx context.Context, template *models.Template) error
	DeleteTemplate(ctx context.Context, id uint) error
	LoadTree(ctx context.Context, id uint) (*models.Template, error)

	CreateSection(ctx context.Context, section *models.ChecklistSection) error
	FindSection(ctx context.Context, id uint) (*models.ChecklistSection, error)
	UpdateSection(ctx context.Context, section *models.ChecklistSection) error
	ReplaceItems(ctx context.Context, sectionID uint, items []models.ChecklistItem) ([]models.ChecklistItem, error)
	DeleteSection(ctx context.Context, id uint) error

	CreateDay(ctx context.Context, day *models.DaySchedule) error
	FindDay(ctx context.Context, id uint) (*models.DaySchedule, error)
	UpdateDay(ctx context.Context, day *models.DaySchedule) error
	DeleteDay(ctx context.Context, id uint) error

	CreateActivity(ctx context.Context, activity *models.Activity) error
	FindActivity(ctx context.Context, id uint) (*models.Activity, error)
	UpdateActivity(ctx context.Context, activity *models.Activity) error
	DeleteActivity(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a templates repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateTemplate(ctx context.Context, template *models.Template) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(template).Error
}

func (r *repository) FindTemplate(ctx context.Context, id uint) (*models.Template, error) {
	var template models.Template
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

// ListByOwner returns up to LimitWithBuffer(limit) templates, newest first,
// starting after cursor.
func (r *repository) ListByOwner(ctx context.Context, ownerID uint, cursor *pagination.Cursor, limit int) ([]models.Template, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Template{}).
		Where("owner_id = ?", ownerID)
	if cursor != nil {
		query = query.Where("id < ?", cursor.ID)
	}

	var rows []models.Template
	if err := query.Order("id DESC").Limit(pagination.LimitWithBuffer(limit)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateTemplate(ctx context.Context, template *models.Template) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(template).Error
}

func (r *repository) DeleteTemplate(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	days := r.db.Model(&models.DaySchedule{}).Select("id").Where("template_id = ?", id)
	sections := r.db.Model(&models.ChecklistSection{}).Select("id").Where("template_id = ?", id)

	if err := db.Where("day_schedule_id IN (?)", days).Delete(&models.Activity{}).Error; err != nil {
		return err
	}
	if err := db.Where("template_id = ?", id).Delete(&models.DaySchedule{}).Error; err != nil {
		return err
	}
	if err := db.Where("section_id IN (?)", sections).Delete(&models.ChecklistItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("template_id = ?", id).Delete(&models.ChecklistSection{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&models.Template{}).Error
}

// LoadTree loads the template with both child collections. Children come back
// in display order; ties keep insertion order.
func (r *repository) LoadTree(ctx context.Context, id uint) (*models.Template, error) {
	var template models.Template
	err := r.db.WithContext(ctx).
		Preload("ChecklistSections", orderBy("order_index ASC, id ASC")).
		Preload("ChecklistSections.Items", orderBy("order_index ASC, id ASC")).
		Preload("DaySchedules", orderBy("day_number ASC, id ASC")).
		Preload("DaySchedules.Activities", orderBy("order_index ASC, id ASC")).
		Where("id = ?", id).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *repository) CreateSection(ctx context.Context, section *models.ChecklistSection) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(section).Error
}

func (r *repository) FindSection(ctx context.Context, id uint) (*models.ChecklistSection, error) {
	var section models.ChecklistSection
	err := r.db.WithContext(ctx).
		Preload("Items", orderBy("order_index ASC, id ASC")).
		Where("id = ?", id).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *repository) UpdateSection(ctx context.Context, section *models.ChecklistSection) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(section).Error
}

// ReplaceItems discards every item of the section and inserts items fresh, so
// each call issues new ids.
func (r *repository) ReplaceItems(ctx context.Context, sectionID uint, items []models.ChecklistItem) ([]models.ChecklistItem, error) {
	db := r.db.WithContext(ctx)
	if err := db.Where("section_id = ?", sectionID).Delete(&models.ChecklistItem{}).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []models.ChecklistItem{}, nil
	}
	fresh := make([]models.ChecklistItem, len(items))
	for i, item := range items {
		fresh[i] = models.ChecklistItem{
			SectionID:  sectionID,
			Label:      item.Label,
			OrderIndex: item.OrderIndex,
		}
	}
	if err := db.Create(&fresh).Error; err != nil {
		return nil, err
	}
	return fresh, nil
}

func (r *repository) DeleteSection(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("section_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&models.ChecklistSection{}).Error
}

func (r *repository) CreateDay(ctx context.Context, day *models.DaySchedule) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(day).Error
}

func (r *repository) FindDay(ctx context.Context, id uint) (*models.DaySchedule, error) {
	var day models.DaySchedule
	err := r.db.WithContext(ctx).
		Preload("Activities", orderBy("order_index ASC, id ASC")).
		Where("id = ?", id).
		First(&day).Error
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (r *repository) UpdateDay(ctx context.Context, day *models.DaySchedule) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(day).Error
}

func (r *repository) DeleteDay(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("day_schedule_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&models.DaySchedule{}).Error
}

func (r *repository) CreateActivity(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *repository) FindActivity(ctx context.Context, id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *repository) UpdateActivity(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Save(activity).Error
}

func (r *repository) DeleteActivity(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Activity{}).Error
}

func orderBy(order string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}
