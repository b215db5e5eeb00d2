package models

import "time"

// Template is a user-owned itinerary plan.
type Template struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID        uint      `gorm:"column:owner_id;not null;index:templates_owner_id_idx"`
	Title          string    `gorm:"column:title;not null"`
	Destination    string    `gorm:"column:destination;not null"`
	StartDate      time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate        time.Time `gorm:"column:end_date;type:date;not null"`
	TotalDays      int       `gorm:"column:total_days;not null"`
	Accommodation  *string   `gorm:"column:accommodation"`
	Transportation *string   `gorm:"column:transportation"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`

	ChecklistSections []ChecklistSection `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
	DaySchedules      []DaySchedule      `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}
