package models

import (
	"time"

	"github.com/lien-travel/planner-backend/pkg/enums"
)

// Location is a reusable place record. A nil OwnerID marks a shared system record.
type Location struct {
	ID          uint                   `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID     *uint                  `gorm:"column:owner_id;index:locations_owner_id_idx"`
	Name        string                 `gorm:"column:name;not null"`
	Category    enums.LocationCategory `gorm:"column:category;type:text;not null;index:locations_category_idx"`
	Latitude    float64                `gorm:"column:latitude;not null"`
	Longitude   float64                `gorm:"column:longitude;not null"`
	Address     string                 `gorm:"column:address;not null"`
	Description *string                `gorm:"column:description"`
	IsPublic    bool                   `gorm:"column:is_public;not null;default:false"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
}

// OwnedBy reports whether userID is the location's owner.
func (l *Location) OwnedBy(userID uint) bool {
	return l != nil && l.OwnerID != nil && *l.OwnerID == userID
}
