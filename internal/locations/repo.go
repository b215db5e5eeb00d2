package locations

import (
	"context"
	"strings"

	"github.com/lien-travel/planner-backend/pkg/db/models"
	"github.com/lien-travel/planner-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the locations table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, location *models.Location) (*models.Location, error)
	FindByID(ctx context.Context, id uint) (*models.Location, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Location, error)
	ListVisible(ctx context.Context, userID uint, filter ListFilter) ([]models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uint) error
}

// ListFilter narrows the visible set. Zero values mean "no filter".
type ListFilter struct {
	Category *enums.LocationCategory
	Keyword  string
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a locations repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, location *models.Location) (*models.Location, error) {
	if err := r.db.WithContext(ctx).Create(location).Error; err != nil {
		return nil, err
	}
	return location, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// FindByIDs loads every existing location among ids. Missing ids are skipped.
func (r *repository) FindByIDs(ctx context.Context, ids []uint) ([]models.Location, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Location
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListVisible returns public locations plus the user's own, in storage order.
func (r *repository) ListVisible(ctx context.Context, userID uint, filter ListFilter) ([]models.Location, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Location{}).
		Where("(is_public = ? OR owner_id = ?)", true, userID)

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(keyword))+"%")
	}

	var rows []models.Location
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Update(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Location{}).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
